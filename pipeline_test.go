package bwtzip

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/colinbeck/bwtzip/bwt"
	"github.com/colinbeck/bwtzip/huffman"
	"github.com/colinbeck/bwtzip/mtf"
)

// mtfCoder adapts the mtf package's functions to the Coder interface for
// table-driven testing alongside bwt.Codec and huffman (which are adapted
// the same way below).
type mtfCoder struct{}

func (mtfCoder) Encode(input []byte) ([]byte, error) { return mtf.Encode(input) }
func (mtfCoder) Decode(input []byte) ([]byte, error) { return mtf.Decode(input) }

type huffmanCoder struct{}

func (huffmanCoder) Encode(input []byte) ([]byte, error) { return huffman.Encode(input) }
func (huffmanCoder) Decode(input []byte) ([]byte, error) { return huffman.Decode(input) }

func allCoders(t *testing.T) []Coder {
	t.Helper()
	bwtCodec, err := bwt.New(bwt.DefaultBlockPow)
	if err != nil {
		t.Fatalf("bwt.New: %v", err)
	}
	pipeline, err := NewPipeline(bwt.DefaultBlockPow)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return []Coder{bwtCodec, mtfCoder{}, huffmanCoder{}, pipeline}
}

func TestAllCodersRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte("ab"), 500),
	}
	for _, c := range allCoders(t) {
		for _, in := range inputs {
			enc, err := c.Encode(in)
			if err != nil {
				t.Fatalf("%T.Encode: %v", c, err)
			}
			dec, err := c.Decode(enc)
			if err != nil {
				t.Fatalf("%T.Decode: %v", c, err)
			}
			if !bytes.Equal(dec, in) && !(len(dec) == 0 && len(in) == 0) {
				t.Errorf("%T round trip of %v: got %v", c, in, dec)
			}
		}
	}
}

func TestPipelineRoundTripRandom32KiB(t *testing.T) {
	input := make([]byte, 32*1024)
	if _, err := rand.Read(input); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	enc, err := EncodePipeline(input)
	if err != nil {
		t.Fatalf("EncodePipeline: %v", err)
	}
	dec, err := DecodePipeline(enc)
	if err != nil {
		t.Fatalf("DecodePipeline: %v", err)
	}
	if !bytes.Equal(dec, input) {
		t.Fatalf("pipeline round trip mismatch on random 32KiB buffer")
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	enc, err := EncodePipeline(nil)
	if err != nil {
		t.Fatalf("EncodePipeline: %v", err)
	}
	dec, err := DecodePipeline(enc)
	if err != nil {
		t.Fatalf("DecodePipeline: %v", err)
	}
	if len(dec) != 0 {
		t.Fatalf("got %v, want empty", dec)
	}
}

func TestNewPipelineRejectsOversizedBlockPow(t *testing.T) {
	if _, err := NewPipeline(33); err == nil {
		t.Fatalf("expected error for block_pow=33")
	}
}
