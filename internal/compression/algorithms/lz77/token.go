package lz77

import (
	"fmt"

	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

// Token is one step of the LZ77 parse: copy Length bytes from Distance bytes
// back, then emit Literal. Distance and Length are both zero for a pure
// literal. A Terminal token is a copy that ends exactly at the end of the
// input and has no literal.
type Token struct {
	Distance int
	Length   int
	Literal  byte
	Terminal bool
}

// Advance returns the number of input bytes the token covers.
func (t Token) Advance() int {
	if t.Terminal {
		return t.Length
	}
	return t.Length + 1
}

func (t Token) String() string {
	if t.Terminal {
		return fmt.Sprintf("(%d,%d,<end>)", t.Distance, t.Length)
	}
	return fmt.Sprintf("(%d,%d,%q)", t.Distance, t.Length, t.Literal)
}

// CopyMatch appends length bytes to out, copied from distance bytes before
// its end. Source and destination may overlap.
func CopyMatch(out []byte, distance, length int) ([]byte, error) {
	if length < 0 || distance < 0 {
		return out, fmt.Errorf("%w: negative match (%d,%d)", codecerr.ErrCorruptStream, distance, length)
	}
	if length == 0 {
		if distance != 0 {
			return out, fmt.Errorf("%w: distance %d with zero length", codecerr.ErrCorruptStream, distance)
		}
		return out, nil
	}
	if distance == 0 || distance > len(out) {
		return out, fmt.Errorf("%w: distance %d outside %d bytes of output", codecerr.ErrCorruptStream, distance, len(out))
	}
	start := len(out) - distance
	for i := 0; i < length; i++ {
		out = append(out, out[start+i])
	}
	return out, nil
}

// Replay reconstructs the input from its tokens.
func Replay(tokens []Token) ([]byte, error) {
	var out []byte
	for i, t := range tokens {
		var err error
		if out, err = CopyMatch(out, t.Distance, t.Length); err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		if t.Terminal {
			if i != len(tokens)-1 {
				return nil, fmt.Errorf("%w: terminal token %d is not last", codecerr.ErrCorruptStream, i)
			}
			break
		}
		out = append(out, t.Literal)
	}
	return out, nil
}
