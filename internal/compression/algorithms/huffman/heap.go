package huffman

// node is an arena entry of the Huffman tree. A leaf owns one symbol; an
// internal node owns the union of its children's symbols. children holds
// arena indices, -1 for leaves.
type node struct {
	freq     uint64
	symbols  []byte
	children [2]int32
}

// nodeHeap orders arena indices by ascending frequency, then by ascending
// symbol-set size. It implements container/heap.Interface.
type nodeHeap struct {
	arena []node
	items []int32
}

func (h *nodeHeap) Len() int {
	return len(h.items)
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := &h.arena[h.items[i]], &h.arena[h.items[j]]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return len(a.symbols) < len(b.symbols)
}

func (h *nodeHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *nodeHeap) Push(item any) {
	h.items = append(h.items, item.(int32))
}

func (h *nodeHeap) Pop() any {
	popped := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	return popped
}

// depths walks the tree below root and returns the depth of every leaf
// symbol. The walk uses an explicit stack.
func (h *nodeHeap) depths(root int32) map[byte]int {
	out := make(map[byte]int)
	type frame struct {
		idx   int32
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &h.arena[f.idx]
		if n.children[0] < 0 {
			out[n.symbols[0]] = f.depth
			continue
		}
		stack = append(stack, frame{n.children[0], f.depth + 1}, frame{n.children[1], f.depth + 1})
	}
	return out
}
