package bitstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

// Writer appends bits MSB-first to an underlying io.Writer.
type Writer struct {
	bw      *bitio.Writer
	written int64
}

// NewWriter returns a Writer emitting bytes to w. Close must be called to
// flush the final partial byte.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bitio.NewWriter(w)}
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(bit uint8) error {
	if err := w.bw.WriteBool(bit != 0); err != nil {
		return err
	}
	w.written++
	return nil
}

// WriteUint writes the low width bits of v, most significant first.
func (w *Writer) WriteUint(v uint64, width int) error {
	if width < 0 || width > 64 {
		return fmt.Errorf("%w: cannot write %d bits at once", codecerr.ErrInvalidParameter, width)
	}
	if width == 0 {
		return nil
	}
	if width < 64 {
		v &= 1<<uint(width) - 1
	}
	if err := w.bw.WriteBits(v, uint8(width)); err != nil {
		return err
	}
	w.written += int64(width)
	return nil
}

// WriteBits appends every bit of b.
func (w *Writer) WriteBits(b Bits) error {
	full := b.n >> 3
	for i := 0; i < full; i++ {
		if err := w.WriteUint(uint64(b.buf[i]), 8); err != nil {
			return err
		}
	}
	if rem := b.n & 7; rem != 0 {
		return w.WriteUint(uint64(b.buf[full]>>(8-uint(rem))), rem)
	}
	return nil
}

// BitsWritten returns the number of bits written so far, padding excluded.
func (w *Writer) BitsWritten() int64 {
	return w.written
}

// Close flushes the final partial byte, right-padded with zero bits. It does
// not close the underlying writer.
func (w *Writer) Close() error {
	return w.bw.Close()
}

// Reader consumes bits MSB-first from an underlying io.Reader. Source bytes
// are pulled on demand and dropped once their bits have been consumed.
type Reader struct {
	br   *bitio.Reader
	read int64
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewReader(r)}
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (uint8, error) {
	b, err := r.br.ReadBool()
	if err != nil {
		return 0, r.underrun(err, 1)
	}
	r.read++
	if b {
		return 1, nil
	}
	return 0, nil
}

// ReadUint reads width bits as an unsigned integer.
func (r *Reader) ReadUint(width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("%w: cannot read %d bits at once", codecerr.ErrInvalidParameter, width)
	}
	if width == 0 {
		return 0, nil
	}
	v, err := r.br.ReadBits(uint8(width))
	if err != nil {
		return 0, r.underrun(err, width)
	}
	r.read += int64(width)
	return v, nil
}

// ReadBits consumes and returns the next n bits.
func (r *Reader) ReadBits(n int) (Bits, error) {
	if n < 0 {
		return Bits{}, fmt.Errorf("%w: negative bit count %d", codecerr.ErrInvalidParameter, n)
	}
	var out Bits
	for n > 0 {
		chunk := min(n, 64)
		v, err := r.ReadUint(chunk)
		if err != nil {
			return Bits{}, err
		}
		out.AppendUint(v, chunk)
		n -= chunk
	}
	return out, nil
}

// BitsRead returns the number of bits consumed so far.
func (r *Reader) BitsRead() int64 {
	return r.read
}

func (r *Reader) underrun(err error, want int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %d bits at bit offset %d", codecerr.ErrStreamUnderrun, want, r.read)
	}
	return err
}
