// Package bwtzip implements a bzip2-style lossless compression pipeline
// built from three independently usable, reversible transforms: a
// Burrows-Wheeler block sorter (package bwt), a move-to-front re-ranker
// (package mtf), and a canonical static Huffman entropy coder (package
// huffman). Pipeline composes the three as Huffman(MTF(BWT(x))).
package bwtzip

// Coder is the contract shared by every transform in this module: a total,
// stateless mapping from a byte sequence to an encoded or decoded byte
// sequence. Encode is infallible for well-formed in-memory input. Decode
// returns an error for malformed input; for the codecs in this module that
// error wraps the failing codec package's own sentinel (bwt.ErrMalformedInput
// or huffman.ErrMalformedInput), not this package's ErrMalformedInput.
type Coder interface {
	Encode(input []byte) ([]byte, error)
	Decode(input []byte) ([]byte, error)
}
