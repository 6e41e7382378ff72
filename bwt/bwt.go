// Package bwt implements the Burrows-Wheeler Transform as a reversible,
// block-framed byte codec. Encoding partitions the input into fixed-size
// blocks (the last of which may be short), sorts each block's rotations,
// and emits the original row index plus the last column of the sorted
// rotations. Decoding inverts that with a counting-sort LF-mapping.
package bwt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedInput is returned by Decode for any input that could not
// have been produced by Encode.
var ErrMalformedInput = errors.New("bwt: malformed input")

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, reason)
}

// DefaultBlockPow is the block-size exponent used by the package-level
// Encode/Decode functions: 2^20 bytes, i.e. 1 MiB blocks.
const DefaultBlockPow = 20

// MaxBlockPow is the largest block-size exponent Codec accepts.
const MaxBlockPow = 32

// Codec is a BWT transform configured with a fixed block size. The zero
// value is not valid; use New.
type Codec struct {
	blockPow  uint
	blockSize uint64 // 1 << blockPow, kept as 64-bit since blockPow may be 32
}

// New returns a Codec that partitions input into blocks of up to 2^blockPow
// bytes. blockPow must be in [0, 32]; values outside that range are a
// programmer/configuration error and are rejected rather than panicking,
// since blockPow is often derived from a CLI flag.
func New(blockPow uint) (*Codec, error) {
	if blockPow > MaxBlockPow {
		return nil, fmt.Errorf("bwt: block_pow %d exceeds maximum %d", blockPow, MaxBlockPow)
	}
	return &Codec{blockPow: blockPow, blockSize: uint64(1) << blockPow}, nil
}

// mustNew is New without the error return, for package-level defaults that
// are known-valid at compile time.
func mustNew(blockPow uint) *Codec {
	c, err := New(blockPow)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultCodec = mustNew(DefaultBlockPow)

// Encode runs the BWT with the default block size (2^20 bytes). It is
// equivalent to New(DefaultBlockPow).Encode(input).
func Encode(input []byte) ([]byte, error) {
	return defaultCodec.Encode(input)
}

// Decode inverts Encode. It is equivalent to
// New(DefaultBlockPow).Decode(input), and in fact works for any block size
// since the block length is read from the stream, not supplied by the
// caller.
func Decode(input []byte) ([]byte, error) {
	return defaultCodec.Decode(input)
}

// Encode partitions input into blocks of up to c's configured block size
// and emits the framed BWT stream described in the package doc.
func (c *Codec) Encode(input []byte) ([]byte, error) {
	firstLen := c.blockSize
	if uint64(len(input)) < firstLen {
		firstLen = uint64(len(input))
	}

	out := make([]byte, 4, 4+len(input)+4*(len(input)/int(max64(c.blockSize, 1))+1))
	binary.LittleEndian.PutUint32(out, uint32(firstLen))

	for offset := 0; offset < len(input); {
		end := offset + int(c.blockSize)
		if end > len(input) || c.blockSize == 0 {
			end = len(input)
		}
		block := input[offset:end]
		row, lastColumn := encodeBlock(block)

		var hdr [4]byte
		binary.LittleEndian.PutUint32(hdr[:], row)
		out = append(out, hdr[:]...)
		out = append(out, lastColumn...)

		offset = end
	}
	return out, nil
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// encodeBlock sorts the rotations of block and returns the row index of the
// identity rotation together with the last column of the sorted order.
func encodeBlock(block []byte) (row uint32, lastColumn []byte) {
	n := len(block)
	if n == 0 {
		return 0, nil
	}

	starts := make([]int, n)
	for i := range starts {
		starts[i] = i
	}

	sort.Slice(starts, func(i, j int) bool {
		return lessRotation(block, starts[i], starts[j])
	})

	lastColumn = make([]byte, n)
	for sortedIdx, start := range starts {
		if start == 0 {
			row = uint32(sortedIdx)
		}
		lastColumn[sortedIdx] = block[(start-1+n)%n]
	}
	return row, lastColumn
}

// lessRotation compares the infinite rotations of block starting at a and b,
// wrapping around the block boundary as many times as needed to break ties.
func lessRotation(block []byte, a, b int) bool {
	n := len(block)
	if a == b {
		return false
	}
	for i := 0; i < n; i++ {
		ba := block[(a+i)%n]
		bb := block[(b+i)%n]
		if ba != bb {
			return ba < bb
		}
	}
	return false
}

// Decode inverts Encode. Decoding does not depend on c's configured block
// size: the framed stream carries its own block_len, so this is equivalent
// to the package-level Decode regardless of which Codec it is called on.
func (c *Codec) Decode(input []byte) ([]byte, error) {
	return decodeImpl(input)
}

func decodeImpl(input []byte) ([]byte, error) {
	if len(input) < 4 {
		return nil, malformed("input shorter than 4-byte block_len header")
	}
	blockLen := binary.LittleEndian.Uint32(input[:4])
	payload := input[4:]

	if blockLen == 0 {
		return []byte{}, nil
	}

	out := make([]byte, 0, len(payload))
	offset := 0
	for offset+4 <= len(payload) {
		remaining := len(payload) - offset - 4
		b := int(blockLen)
		if remaining < b {
			b = remaining
		}
		if b == 0 {
			// A zero-length trailing block is not produced by Encode; treat
			// a residual 4-byte fragment with no payload as malformed input
			// rather than silently truncating it.
			return nil, malformed("trailing block has a row index but no payload")
		}
		row := binary.LittleEndian.Uint32(payload[offset : offset+4])
		lastColumn := payload[offset+4 : offset+4+b]
		offset += 4 + b

		block, err := decodeBlock(row, lastColumn)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	if offset != len(payload) {
		return nil, malformed("trailing bytes after last block")
	}
	return out, nil
}

// decodeBlock reconstructs a block from its row index and last column using
// an O(B+256) counting-sort LF-mapping, which is a stable sort on byte value
// keyed by original index and therefore produces the same result as the
// stable comparison sort described in the format spec.
func decodeBlock(row uint32, lastColumn []byte) ([]byte, error) {
	b := len(lastColumn)
	if int(row) >= b {
		return nil, malformed("row index out of range")
	}

	var counts [257]int
	for _, c := range lastColumn {
		counts[int(c)+1]++
	}
	for i := 1; i < 257; i++ {
		counts[i] += counts[i-1]
	}

	next := make([]int, b)
	cursor := counts
	for i, c := range lastColumn {
		next[cursor[c]] = i
		cursor[c]++
	}

	out := make([]byte, b)
	i := int(row)
	for pos := 0; pos < b; pos++ {
		i = next[i]
		out[pos] = lastColumn[i]
	}
	return out, nil
}
