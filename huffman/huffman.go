// Package huffman implements a canonical, static Huffman entropy coder over
// bytes. The encoded stream begins with a 256-entry little-endian 32-bit
// frequency table (the sole header) followed by the bit-packed codes,
// MSB-first. Every one of the 256 possible byte values has a tree leaf,
// even if its frequency is zero, so the decoder can rebuild an identical
// tree from the header alone.
package huffman

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/colinbeck/bwtzip/internal/bitio"
)

// ErrMalformedInput is returned by Decode for any input that could not have
// been produced by Encode.
var ErrMalformedInput = errors.New("huffman: malformed input")

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, reason)
}

// headerSize is the size, in bytes, of the frequency table header: 256
// little-endian uint32 counts.
const headerSize = 256 * 4

// Encode computes a saturating frequency count per byte value, emits it as
// the 1024-byte header, builds the canonical tree, and appends the
// MSB-first bit-packed codes with zero-padding on the final byte.
func Encode(input []byte) ([]byte, error) {
	var counts [256]uint32
	for _, b := range input {
		if counts[b] != math.MaxUint32 {
			counts[b]++
		}
	}

	out := make([]byte, headerSize, headerSize+len(input)/2+1)
	for b, c := range counts {
		binary.LittleEndian.PutUint32(out[b*4:], c)
	}

	var freqs [256]uint64
	for b, c := range counts {
		freqs[b] = uint64(c)
	}
	t := buildTree(&freqs)

	w := bitio.NewWriter(len(input) / 2)
	for _, b := range input {
		leaf := t.leaf(b)
		w.WriteBits(leaf.mask, uint(leaf.length))
	}
	out = append(out, w.Bytes()...)
	return out, nil
}

// PeekFrequencies reads just the 1024-byte frequency header and returns the
// per-byte-value counts, without building a tree or touching the payload.
// It lets callers (such as an inspector) report what Encode recorded
// without paying for a full Decode.
func PeekFrequencies(input []byte) ([256]uint64, error) {
	var freqs [256]uint64
	if len(input) < headerSize {
		return freqs, malformed("input shorter than 1024-byte frequency header")
	}
	for b := 0; b < 256; b++ {
		freqs[b] = uint64(binary.LittleEndian.Uint32(input[b*4:]))
	}
	return freqs, nil
}

// Decode inverts Encode: it rebuilds the canonical tree from the header and
// walks the payload bit-by-bit, emitting one byte per leaf reached, until
// the header's frequency sum has been satisfied.
func Decode(input []byte) ([]byte, error) {
	if len(input) < headerSize {
		return nil, malformed("input shorter than 1024-byte frequency header")
	}

	var freqs [256]uint64
	var count uint64
	for b := 0; b < 256; b++ {
		c := uint64(binary.LittleEndian.Uint32(input[b*4:]))
		freqs[b] = c
		count += c
	}

	// Every symbol takes at least one payload bit, so the header's count
	// cannot exceed the payload's bit length on valid input; capping the
	// preallocation keeps a forged header from forcing a huge allocation.
	capHint := count
	if maxSymbols := uint64(len(input)-headerSize) * 8; capHint > maxSymbols {
		capHint = maxSymbols
	}
	out := make([]byte, 0, capHint)
	if count == 0 {
		return out, nil
	}

	t := buildTree(&freqs)
	r := bitio.NewReader(input[headerSize:])

	cur := t.root
	for count > 0 {
		n := &t.nodes[cur]
		if n.isLeaf {
			out = append(out, n.symbol)
			count--
			cur = t.root
			continue
		}
		bit, ok := r.ReadBit()
		if !ok {
			return nil, malformed("payload exhausted before frequency count was satisfied")
		}
		if bit == 0 {
			cur = n.left
		} else {
			cur = n.right
		}
		if cur == noChild {
			return nil, malformed("tree walk reached a missing child")
		}
	}
	return out, nil
}
