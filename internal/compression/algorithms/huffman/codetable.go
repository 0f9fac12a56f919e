// Package huffman builds static per-file Huffman codes for byte symbols and
// decodes them again through a binary trie rebuilt from the transmitted table.
package huffman

import (
	"container/heap"
	"fmt"

	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/bitstream"
	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

// MaxCodeLen bounds the length of any code. A tree over 256 leaves is at most
// 255 levels deep.
const MaxCodeLen = 255

// CodeTable maps symbols to their root-to-leaf codes.
type CodeTable struct {
	codes   [256]bitstream.Bits
	present [256]bool
}

// NewCodeTable returns an empty table.
func NewCodeTable() *CodeTable {
	return &CodeTable{}
}

// BuildCodeTable builds the code table for freq.
//
// Nodes are merged two at a time from a min-heap; ties on frequency go to
// the node with fewer symbols. Every symbol under the first node of a merge
// gets a 0 appended, every symbol under the second a 1, so codes grow from
// leaf to root and are reversed once at the end. A single-symbol alphabet
// gets the code 0.
func BuildCodeTable(freq FrequencyTable) *CodeTable {
	table, _ := buildTree(freq)
	return table
}

func buildTree(freq FrequencyTable) (*CodeTable, *nodeHeap) {
	table := NewCodeTable()
	h := &nodeHeap{}
	for s := range freq {
		if freq[s] == 0 {
			continue
		}
		h.arena = append(h.arena, node{
			freq:     freq[s],
			symbols:  []byte{byte(s)},
			children: [2]int32{-1, -1},
		})
		h.items = append(h.items, int32(len(h.arena)-1))
		table.present[s] = true
	}
	switch h.Len() {
	case 0:
		return table, h
	case 1:
		table.codes[h.arena[0].symbols[0]].AppendBit(0)
		return table, h
	}

	var reversed [256]bitstream.Bits
	heap.Init(h)
	for h.Len() > 1 {
		first := heap.Pop(h).(int32)
		second := heap.Pop(h).(int32)
		a, b := h.arena[first], h.arena[second]
		for _, s := range a.symbols {
			reversed[s].AppendBit(0)
		}
		for _, s := range b.symbols {
			reversed[s].AppendBit(1)
		}
		symbols := make([]byte, 0, len(a.symbols)+len(b.symbols))
		symbols = append(append(symbols, a.symbols...), b.symbols...)
		h.arena = append(h.arena, node{
			freq:     a.freq + b.freq,
			symbols:  symbols,
			children: [2]int32{first, second},
		})
		heap.Push(h, int32(len(h.arena)-1))
	}
	for s := range table.present {
		if table.present[s] {
			table.codes[s] = reversed[s].Reverse()
		}
	}
	return table, h
}

// Set records the code of sym. It rejects empty or oversized codes and a
// symbol that already has one.
func (t *CodeTable) Set(sym byte, code bitstream.Bits) error {
	if code.Len() == 0 || code.Len() > MaxCodeLen {
		return fmt.Errorf("%w: code length %d for symbol %d", codecerr.ErrMalformedTree, code.Len(), sym)
	}
	if t.present[sym] {
		return fmt.Errorf("%w: symbol %d listed twice", codecerr.ErrMalformedTree, sym)
	}
	t.codes[sym] = code.Clone()
	t.present[sym] = true
	return nil
}

// Code returns the code of sym.
func (t *CodeTable) Code(sym byte) (bitstream.Bits, bool) {
	return t.codes[sym], t.present[sym]
}

// Encode writes the code of sym to w.
func (t *CodeTable) Encode(w *bitstream.Writer, sym byte) error {
	if !t.present[sym] {
		return fmt.Errorf("%w: symbol %d has no code", codecerr.ErrInvalidParameter, sym)
	}
	return w.WriteBits(t.codes[sym])
}

// Len returns the number of symbols with a code.
func (t *CodeTable) Len() int {
	n := 0
	for _, p := range t.present {
		if p {
			n++
		}
	}
	return n
}

// Symbols returns the coded symbols in ascending order.
func (t *CodeTable) Symbols() []byte {
	var out []byte
	for s, p := range t.present {
		if p {
			out = append(out, byte(s))
		}
	}
	return out
}

// MaxLen returns the length of the longest code.
func (t *CodeTable) MaxLen() int {
	longest := 0
	for s, p := range t.present {
		if p {
			longest = max(longest, t.codes[s].Len())
		}
	}
	return longest
}

// EncodedBits returns the number of bits needed to code every symbol
// counted in freq.
func (t *CodeTable) EncodedBits(freq FrequencyTable) uint64 {
	var n uint64
	for s, c := range freq {
		if t.present[s] {
			n += c * uint64(t.codes[s].Len())
		}
	}
	return n
}

// IsPrefixFree reports whether no code is a prefix of another.
func (t *CodeTable) IsPrefixFree() bool {
	symbols := t.Symbols()
	for i, a := range symbols {
		for j, b := range symbols {
			if i != j && t.codes[b].HasPrefix(t.codes[a]) {
				return false
			}
		}
	}
	return true
}
