// Package container reads and writes the self-describing compressed format:
//
//	Elias(nameLen) | nameLen x 8-bit name bytes
//	Elias(totalSymbolCount)
//	Elias(distinctSymbolCount)
//	distinctSymbolCount x [ 8-bit symbol | Elias(codeLen) | code bits ]
//	tokens until totalSymbolCount bytes are produced:
//	  Elias(distance) | Elias(length) | Huffman(literal)
//
// Fields are packed MSB-first and the last byte is zero-padded. A token whose
// copy reaches the end of the data carries no literal.
package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/op/go-logging"

	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/bitstream"
	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/elias"
	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/huffman"
	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/lz77"
	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

var log = logging.MustGetLogger("container")

// MaxNameLen bounds the stored source name.
const MaxNameLen = 4096

// Header is everything that precedes the token stream.
type Header struct {
	Name         string
	TotalSymbols uint64
	Table        *huffman.CodeTable
}

// Distinct returns the number of symbols in the code table.
func (h *Header) Distinct() int {
	return h.Table.Len()
}

// Options configures compression.
type Options struct {
	WindowLimit    int
	LookaheadLimit int

	// Progress is passed on to the match finder.
	Progress func(advanced int)
}

// Result describes a finished compression.
type Result struct {
	Header
	Tokens     int
	HeaderBits int64
	TotalBits  int64
}

// Bytes returns the container size in bytes, padding included.
func (r *Result) Bytes() int64 {
	return (r.TotalBits + 7) / 8
}

// Archive is a decoded container.
type Archive struct {
	Header
	Data []byte
}

// Compress encodes data under name and returns the container bytes.
func Compress(name string, data []byte, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := CompressTo(&buf, name, data, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressTo encodes data under name and writes the container to w.
func CompressTo(w io.Writer, name string, data []byte, opts Options) (*Result, error) {
	finder, err := lz77.NewFinder(opts.WindowLimit, opts.LookaheadLimit)
	if err != nil {
		return nil, err
	}
	finder.Progress = opts.Progress
	if len(name) > MaxNameLen {
		return nil, fmt.Errorf("%w: name is %d bytes, limit %d", codecerr.ErrInvalidParameter, len(name), MaxNameLen)
	}

	res := &Result{Header: Header{
		Name:         name,
		TotalSymbols: uint64(len(data)),
		Table:        huffman.BuildCodeTable(huffman.CountFrequencies(data)),
	}}
	bw := bitstream.NewWriter(w)
	if err := writeHeader(bw, &res.Header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	res.HeaderBits = bw.BitsWritten()

	err = finder.Each(data, func(t lz77.Token) error {
		res.Tokens++
		return writeToken(bw, res.Table, t)
	})
	if err != nil {
		return nil, fmt.Errorf("writing token %d: %w", res.Tokens, err)
	}
	res.TotalBits = bw.BitsWritten()
	if err := bw.Close(); err != nil {
		return nil, err
	}
	log.Debugf("compressed %q: %d bytes, %d distinct, %d tokens, %d header bits, %d total bits",
		name, len(data), res.Distinct(), res.Tokens, res.HeaderBits, res.TotalBits)
	return res, nil
}

func writeHeader(w *bitstream.Writer, h *Header) error {
	if err := elias.Write(w, uint64(len(h.Name))); err != nil {
		return err
	}
	for i := 0; i < len(h.Name); i++ {
		if err := w.WriteUint(uint64(h.Name[i]), 8); err != nil {
			return err
		}
	}
	if err := elias.Write(w, h.TotalSymbols); err != nil {
		return err
	}
	symbols := h.Table.Symbols()
	if err := elias.Write(w, uint64(len(symbols))); err != nil {
		return err
	}
	for _, s := range symbols {
		code, _ := h.Table.Code(s)
		if err := w.WriteUint(uint64(s), 8); err != nil {
			return err
		}
		if err := elias.Write(w, uint64(code.Len())); err != nil {
			return err
		}
		if err := w.WriteBits(code); err != nil {
			return err
		}
	}
	return nil
}

func writeToken(w *bitstream.Writer, table *huffman.CodeTable, t lz77.Token) error {
	if err := elias.Write(w, uint64(t.Distance)); err != nil {
		return err
	}
	if err := elias.Write(w, uint64(t.Length)); err != nil {
		return err
	}
	if t.Terminal {
		return nil
	}
	return table.Encode(w, t.Literal)
}
