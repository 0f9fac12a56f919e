package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/bitstream"
	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/elias"
	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/huffman"
	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/lz77"
	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

// initialCapacity caps the up-front allocation for the decoded data, so a
// corrupt size field cannot force a huge allocation before any token is read.
const initialCapacity = 1 << 20

// Decompress decodes a container held in memory. A positive limit caps the
// declared data size.
func Decompress(src []byte, limit int64) (*Archive, error) {
	return DecompressFrom(bytes.NewReader(src), limit)
}

// Inspect decodes only the header and code table of a container.
func Inspect(src []byte) (*Header, error) {
	h, _, err := readHeader(bitstream.NewReader(bytes.NewReader(src)))
	return h, err
}

// DecompressFrom decodes a container read from r. A positive limit caps the
// declared data size.
func DecompressFrom(r io.Reader, limit int64) (*Archive, error) {
	br := bitstream.NewReader(r)
	h, trie, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if limit > 0 && h.TotalSymbols > uint64(limit) {
		return nil, fmt.Errorf("%w: declared size %d exceeds limit %d", codecerr.ErrCorruptStream, h.TotalSymbols, limit)
	}

	total := h.TotalSymbols
	out := make([]byte, 0, min(total, initialCapacity))
	tokens := 0
	for uint64(len(out)) < total {
		distance, err := elias.Read(br)
		if err != nil {
			return nil, fmt.Errorf("token %d distance: %w", tokens, err)
		}
		length, err := elias.Read(br)
		if err != nil {
			return nil, fmt.Errorf("token %d length: %w", tokens, err)
		}
		remaining := total - uint64(len(out))
		if length > remaining || distance > uint64(len(out)) {
			return nil, fmt.Errorf("%w: token %d (%d,%d) with %d bytes decoded of %d",
				codecerr.ErrCorruptStream, tokens, distance, length, len(out), total)
		}
		if out, err = lz77.CopyMatch(out, int(distance), int(length)); err != nil {
			return nil, fmt.Errorf("token %d: %w", tokens, err)
		}
		tokens++
		if length == remaining {
			break
		}
		sym, err := trie.Decode(br)
		if err != nil {
			return nil, fmt.Errorf("token %d literal: %w", tokens-1, err)
		}
		out = append(out, sym)
	}
	log.Debugf("decompressed %q: %d bytes from %d tokens", h.Name, len(out), tokens)
	return &Archive{Header: *h, Data: out}, nil
}

func readHeader(r *bitstream.Reader) (*Header, *huffman.DecodeTrie, error) {
	nameLen, err := elias.Read(r)
	if err != nil {
		return nil, nil, fmt.Errorf("name length: %w", err)
	}
	if nameLen > MaxNameLen {
		return nil, nil, fmt.Errorf("%w: name length %d exceeds %d", codecerr.ErrCorruptStream, nameLen, MaxNameLen)
	}
	name := make([]byte, nameLen)
	for i := range name {
		c, err := r.ReadUint(8)
		if err != nil {
			return nil, nil, fmt.Errorf("name: %w", err)
		}
		name[i] = byte(c)
	}

	total, err := elias.Read(r)
	if err != nil {
		return nil, nil, fmt.Errorf("symbol count: %w", err)
	}
	distinct, err := elias.Read(r)
	if err != nil {
		return nil, nil, fmt.Errorf("distinct symbol count: %w", err)
	}
	if distinct > 256 {
		return nil, nil, fmt.Errorf("%w: %d distinct symbols", codecerr.ErrMalformedTree, distinct)
	}

	table := huffman.NewCodeTable()
	for i := uint64(0); i < distinct; i++ {
		sym, err := r.ReadUint(8)
		if err != nil {
			return nil, nil, fmt.Errorf("code table entry %d: %w", i, err)
		}
		codeLen, err := elias.Read(r)
		if err != nil {
			return nil, nil, fmt.Errorf("code table entry %d: %w", i, err)
		}
		if codeLen == 0 || codeLen > huffman.MaxCodeLen {
			return nil, nil, fmt.Errorf("%w: code length %d for symbol %d", codecerr.ErrMalformedTree, codeLen, sym)
		}
		code, err := r.ReadBits(int(codeLen))
		if err != nil {
			return nil, nil, fmt.Errorf("code table entry %d: %w", i, err)
		}
		if err := table.Set(byte(sym), code); err != nil {
			return nil, nil, err
		}
	}
	trie, err := huffman.FromTable(table)
	if err != nil {
		return nil, nil, err
	}
	return &Header{Name: string(name), TotalSymbols: total, Table: table}, trie, nil
}
