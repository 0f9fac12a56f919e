package huffman

import (
	"fmt"

	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/bitstream"
	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

const noSymbol = -1

type trieNode struct {
	child  [2]int32
	symbol int16
}

// DecodeTrie is a binary trie rebuilt from transmitted codes. Nodes live in
// one arena and refer to their children by index; the root is node 0.
type DecodeTrie struct {
	nodes []trieNode
}

// NewDecodeTrie returns a trie holding only the root.
func NewDecodeTrie() *DecodeTrie {
	t := &DecodeTrie{}
	t.newNode()
	return t
}

// FromTable builds a trie holding every code of table.
func FromTable(table *CodeTable) (*DecodeTrie, error) {
	t := NewDecodeTrie()
	for _, s := range table.Symbols() {
		code, _ := table.Code(s)
		if err := t.Insert(s, code); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *DecodeTrie) newNode() int32 {
	t.nodes = append(t.nodes, trieNode{child: [2]int32{-1, -1}, symbol: noSymbol})
	return int32(len(t.nodes) - 1)
}

// Insert stores sym at the end of the path spelled by code, 0 going left and
// 1 going right. It fails with ErrMalformedTree when the code collides with
// one already inserted.
func (t *DecodeTrie) Insert(sym byte, code bitstream.Bits) error {
	if code.Len() == 0 {
		return fmt.Errorf("%w: empty code for symbol %d", codecerr.ErrMalformedTree, sym)
	}
	cur := int32(0)
	for i := 0; i < code.Len(); i++ {
		if held := t.nodes[cur].symbol; held != noSymbol {
			return fmt.Errorf("%w: code %s of symbol %d extends the code of symbol %d", codecerr.ErrMalformedTree, code, sym, held)
		}
		bit := code.Bit(i)
		next := t.nodes[cur].child[bit]
		if next < 0 {
			next = t.newNode()
			t.nodes[cur].child[bit] = next
		}
		cur = next
	}
	n := &t.nodes[cur]
	if n.symbol != noSymbol {
		return fmt.Errorf("%w: code %s assigned to symbols %d and %d", codecerr.ErrMalformedTree, code, n.symbol, sym)
	}
	if n.child[0] >= 0 || n.child[1] >= 0 {
		return fmt.Errorf("%w: code %s of symbol %d is a prefix of another code", codecerr.ErrMalformedTree, code, sym)
	}
	n.symbol = int16(sym)
	return nil
}

// Decode reads bits from r until they spell a complete code and returns its
// symbol.
func (t *DecodeTrie) Decode(r *bitstream.Reader) (byte, error) {
	cur := int32(0)
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		next := t.nodes[cur].child[bit]
		if next < 0 {
			return 0, fmt.Errorf("%w: no branch for bit %d at bit offset %d", codecerr.ErrMalformedTree, bit, r.BitsRead())
		}
		cur = next
		if s := t.nodes[cur].symbol; s != noSymbol {
			return byte(s), nil
		}
	}
}

// Size returns the number of nodes in the trie, root included.
func (t *DecodeTrie) Size() int {
	return len(t.nodes)
}
