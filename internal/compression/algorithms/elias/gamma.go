// Package elias implements Elias-gamma coding of non-negative integers.
//
// n is coded through m = n+1: k = floor(log2 m) zero bits followed by the
// k+1 bit binary form of m, whose leading bit is always 1. Zero codes as a
// single 1 bit.
package elias

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/bitstream"
	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

// MaxValue is the largest integer that can be coded.
const MaxValue = math.MaxUint64 - 1

// Len returns the code length of n in bits.
func Len(n uint64) int {
	k := bits.Len64(n+1) - 1
	return 2*k + 1
}

// Encode returns the gamma code of n.
func Encode(n uint64) (bitstream.Bits, error) {
	if n > MaxValue {
		return bitstream.Bits{}, fmt.Errorf("%w: %d exceeds gamma range", codecerr.ErrInvalidParameter, n)
	}
	m := n + 1
	k := bits.Len64(m) - 1
	var out bitstream.Bits
	out.AppendUint(0, k)
	out.AppendUint(m, k+1)
	return out, nil
}

// Write writes the gamma code of n to w.
func Write(w *bitstream.Writer, n uint64) error {
	if n > MaxValue {
		return fmt.Errorf("%w: %d exceeds gamma range", codecerr.ErrInvalidParameter, n)
	}
	m := n + 1
	k := bits.Len64(m) - 1
	if err := w.WriteUint(0, k); err != nil {
		return err
	}
	return w.WriteUint(m, k+1)
}

// Read decodes one gamma code from r.
func Read(r *bitstream.Reader) (uint64, error) {
	k := 0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			break
		}
		k++
		if k > 63 {
			return 0, fmt.Errorf("%w: gamma prefix longer than 63 bits", codecerr.ErrCorruptStream)
		}
	}
	rest, err := r.ReadUint(k)
	if err != nil {
		return 0, err
	}
	m := 1<<uint(k) | rest
	return m - 1, nil
}
