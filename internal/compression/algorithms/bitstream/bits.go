// Package bitstream provides the bit-level plumbing of the container format:
// an append-only bit vector and MSB-first readers and writers over byte streams.
package bitstream

import (
	"fmt"
	"strings"

	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

// Bits is an append-only sequence of bits packed MSB-first into bytes.
// Its length is explicit, so a run of zero bits is representable.
//
// Copies of a Bits value share storage. Clone before appending to a copy.
type Bits struct {
	buf []byte
	n   int
}

// FromString parses a string of '0' and '1' characters.
func FromString(s string) (Bits, error) {
	var b Bits
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			b.AppendBit(0)
		case '1':
			b.AppendBit(1)
		default:
			return Bits{}, fmt.Errorf("%w: %q is not a bit", codecerr.ErrInvalidParameter, s[i])
		}
	}
	return b, nil
}

// MustFromString is like FromString but panics on malformed input.
func MustFromString(s string) Bits {
	b, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of bits held.
func (b Bits) Len() int {
	return b.n
}

// Bit returns bit i, counting from the first appended bit.
func (b Bits) Bit(i int) uint8 {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("bitstream: bit index %d out of range [0,%d)", i, b.n))
	}
	return (b.buf[i>>3] >> (7 - uint(i&7))) & 1
}

// AppendBit appends a single bit; any non-zero value counts as 1.
func (b *Bits) AppendBit(bit uint8) {
	if b.n&7 == 0 {
		b.buf = append(b.buf[:b.n>>3], 0)
	}
	mask := byte(1) << (7 - uint(b.n&7))
	if bit != 0 {
		b.buf[b.n>>3] |= mask
	} else {
		b.buf[b.n>>3] &^= mask
	}
	b.n++
}

// AppendUint appends the low width bits of v, most significant first.
func (b *Bits) AppendUint(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		b.AppendBit(uint8(v>>uint(i)) & 1)
	}
}

// AppendBits appends every bit of o.
func (b *Bits) AppendBits(o Bits) {
	for i := 0; i < o.n; i++ {
		b.AppendBit(o.Bit(i))
	}
}

// Clone returns a copy that does not share storage with b.
func (b Bits) Clone() Bits {
	buf := make([]byte, len(b.buf[:(b.n+7)>>3]))
	copy(buf, b.buf)
	return Bits{buf: buf, n: b.n}
}

// Reverse returns the bits of b in the opposite order.
func (b Bits) Reverse() Bits {
	var out Bits
	for i := b.n - 1; i >= 0; i-- {
		out.AppendBit(b.Bit(i))
	}
	return out
}

// HasPrefix reports whether p is a prefix of b.
func (b Bits) HasPrefix(p Bits) bool {
	if p.n > b.n {
		return false
	}
	for i := 0; i < p.n; i++ {
		if b.Bit(i) != p.Bit(i) {
			return false
		}
	}
	return true
}

// Equal reports whether b and o hold the same bit sequence.
func (b Bits) Equal(o Bits) bool {
	return b.n == o.n && b.HasPrefix(o)
}

// Uint64 returns the bits as an unsigned integer. It panics if more than
// 64 bits are held.
func (b Bits) Uint64() uint64 {
	if b.n > 64 {
		panic("bitstream: Bits too long for uint64")
	}
	var v uint64
	for i := 0; i < b.n; i++ {
		v = v<<1 | uint64(b.Bit(i))
	}
	return v
}

// Bytes returns the packed bits with the final partial byte zero-padded on
// the right.
func (b Bits) Bytes() []byte {
	return b.Clone().buf
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + b.Bit(i))
	}
	return sb.String()
}
