// Package lz77 parses a buffer into LZ77 tokens, finding each backward match
// with the Z-algorithm over a bounded sliding window.
package lz77

import (
	"fmt"

	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

// Finder produces tokens for a buffer. The window holds at most WindowLimit
// already-processed bytes and a match is at most LookaheadLimit bytes long.
type Finder struct {
	WindowLimit    int
	LookaheadLimit int

	// Progress, when set, is called with the number of input bytes each
	// token covers.
	Progress func(advanced int)

	scratch []byte
	z       []int
}

// NewFinder returns a Finder for the given limits, both of which must be
// positive.
func NewFinder(windowLimit, lookaheadLimit int) (*Finder, error) {
	if windowLimit <= 0 {
		return nil, fmt.Errorf("%w: window limit %d must be positive", codecerr.ErrInvalidParameter, windowLimit)
	}
	if lookaheadLimit <= 0 {
		return nil, fmt.Errorf("%w: lookahead limit %d must be positive", codecerr.ErrInvalidParameter, lookaheadLimit)
	}
	return &Finder{WindowLimit: windowLimit, LookaheadLimit: lookaheadLimit}, nil
}

// Tokens parses data into tokens.
func (f *Finder) Tokens(data []byte) []Token {
	var tokens []Token
	_ = f.Each(data, func(t Token) error {
		tokens = append(tokens, t)
		return nil
	})
	return tokens
}

// Each parses data and hands every token to emit in order, stopping at the
// first error emit returns.
func (f *Finder) Each(data []byte, emit func(Token) error) error {
	for pos := 0; pos < len(data); {
		t := f.match(data, pos)
		if err := emit(t); err != nil {
			return err
		}
		advanced := t.Advance()
		pos += advanced
		if f.Progress != nil {
			f.Progress(advanced)
		}
	}
	return nil
}

// match builds the token starting at data[pos].
//
// The Z-array is taken over lookahead ++ window ++ lookahead, where the
// last two parts are contiguous in data. For window offset j the entry at
// len(lookahead)+j is how far the lookahead recurs from there, running into
// the lookahead itself for overlapping copies. Offsets are scanned oldest
// first and ties replace the current best, so the closest distance wins.
func (f *Finder) match(data []byte, pos int) Token {
	winStart := max(0, pos-f.WindowLimit)
	lookEnd := min(len(data), pos+f.LookaheadLimit)
	look := data[pos:lookEnd]
	winLen := pos - winStart

	f.scratch = append(append(f.scratch[:0], look...), data[winStart:lookEnd]...)
	f.z = ZArray(f.scratch, f.z)

	best, distance := 0, 0
	for j := 0; j < winLen; j++ {
		length := min(f.z[len(look)+j], len(look))
		if length >= best {
			best = length
			distance = winLen - j
		}
	}

	switch {
	case best == 0:
		return Token{Literal: data[pos]}
	case pos+best == len(data):
		return Token{Distance: distance, Length: best, Terminal: true}
	default:
		return Token{Distance: distance, Length: best, Literal: data[pos+best]}
	}
}
