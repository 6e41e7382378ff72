package bwtzip

import (
	"github.com/colinbeck/bwtzip/bwt"
	"github.com/colinbeck/bwtzip/huffman"
	"github.com/colinbeck/bwtzip/mtf"
)

// Pipeline composes the three transforms in the fixed order
// Huffman(MTF(BWT(x))) and its inverse. It satisfies Coder, so it can be
// used anywhere a single codec is expected (e.g. the CLI's batch subcommand
// uses its --bwt flag to select between huffman.{Encode,Decode} and a
// Pipeline).
type Pipeline struct {
	bwtCodec *bwt.Codec
}

// NewPipeline returns a Pipeline whose BWT stage uses the given block-size
// exponent. blockPow must be in [0, 32].
func NewPipeline(blockPow uint) (*Pipeline, error) {
	c, err := bwt.New(blockPow)
	if err != nil {
		return nil, err
	}
	return &Pipeline{bwtCodec: c}, nil
}

// defaultPipeline uses bwt.DefaultBlockPow (2^20-byte blocks).
var defaultPipeline = func() *Pipeline {
	p, err := NewPipeline(bwt.DefaultBlockPow)
	if err != nil {
		panic(err)
	}
	return p
}()

// EncodePipeline runs Huffman(MTF(BWT(input))) with the default BWT block
// size. It is equivalent to NewPipeline(bwt.DefaultBlockPow).Encode(input).
func EncodePipeline(input []byte) ([]byte, error) {
	return defaultPipeline.Encode(input)
}

// DecodePipeline inverts EncodePipeline.
func DecodePipeline(input []byte) ([]byte, error) {
	return defaultPipeline.Decode(input)
}

// Encode implements Coder.
func (p *Pipeline) Encode(input []byte) ([]byte, error) {
	bwtOut, err := p.bwtCodec.Encode(input)
	if err != nil {
		return nil, err
	}
	mtfOut, err := mtf.Encode(bwtOut)
	if err != nil {
		return nil, err
	}
	return huffman.Encode(mtfOut)
}

// Decode implements Coder, inverting Encode by running the stages in
// reverse order.
func (p *Pipeline) Decode(input []byte) ([]byte, error) {
	huffOut, err := huffman.Decode(input)
	if err != nil {
		return nil, err
	}
	mtfOut, err := mtf.Decode(huffOut)
	if err != nil {
		return nil, err
	}
	return p.bwtCodec.Decode(mtfOut)
}

var (
	_ Coder = (*Pipeline)(nil)
)
