package bwtzip

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is the root package's malformed-input sentinel; errors
// built by Malformed wrap it. The bwt and huffman packages declare their own
// ErrMalformedInput sentinels, which their Decode errors wrap instead, and
// Pipeline.Decode returns those codec errors as they are, so they do not
// match this sentinel under errors.Is.
var ErrMalformedInput = errors.New("bwtzip: malformed input")

// Malformed wraps ErrMalformedInput with a short, specific reason. It is
// exported for callers outside this package that need to report this class
// of error against raw bytes they parse themselves, without duplicating the
// sentinel.
func Malformed(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, reason)
}
