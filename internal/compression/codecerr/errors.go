// Package codecerr holds the error kinds shared by the codec packages.
// Callers match them with errors.Is; every codec error wraps one of these.
package codecerr

import "errors"

var (
	// ErrStreamUnderrun is returned when a read asks for more bits than the
	// container holds.
	ErrStreamUnderrun = errors.New("stream underrun")

	// ErrMalformedTree is returned when a transmitted code table does not
	// describe a prefix-free code, or when decoding walks off the trie.
	ErrMalformedTree = errors.New("malformed huffman tree")

	// ErrInvalidParameter is returned for bad call-time arguments such as a
	// non-positive window limit.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrCorruptStream is returned when decoded values are inconsistent with
	// each other, e.g. a back-reference pointing before the start of output.
	ErrCorruptStream = errors.New("corrupt stream")
)

// IsCodecError reports whether err wraps one of the codec error kinds.
func IsCodecError(err error) bool {
	return errors.Is(err, ErrStreamUnderrun) ||
		errors.Is(err, ErrMalformedTree) ||
		errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrCorruptStream)
}
