package huffman

import "container/heap"

// noChild marks a tree node's child slot as absent (i.e. the node is a
// leaf). Valid child indices are always >= 0, so -1 is never ambiguous.
const noChild = -1

// node is one entry in the tree arena. Leaves have left == right == noChild
// and symbol set to their byte value; internal nodes have both children set
// and symbol is unused.
type node struct {
	freq        uint64
	left, right int32
	symbol      byte
	isLeaf      bool
	mask        uint32
	length      uint8
}

// tree is an arena of 511 nodes (256 leaves + up to 255 internal nodes) for
// the 256-symbol canonical Huffman code used by this package. Node 0 is
// always a leaf (symbol 0); root is recorded separately since the root is
// the last internal node created (or, in the single-symbol-universe
// degenerate sense, may even be a leaf if a tree of size 1 were allowed,
// which cannot happen here since len(freqs) == 256 > 1 always).
type tree struct {
	nodes []node
	root  int32
}

// heapItem is one entry in the tree-construction priority queue: a
// candidate node plus the monotonically increasing insertion sequence that
// makes tie-breaking on equal frequency deterministic.
type heapItem struct {
	idx  int32
	freq uint64
	seq  int
}

type minHeap []heapItem

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// buildTree constructs the canonical Huffman tree for the given 256-entry
// frequency table. The construction is deterministic: a min-heap keyed on
// (freq, insertion sequence) ties leaves by ascending byte index and
// internal nodes by creation order, so encoder and decoder — both calling
// buildTree with the same freqs — always agree on the tree shape and code
// assignment.
func buildTree(freqs *[256]uint64) *tree {
	t := &tree{nodes: make([]node, 0, 511)}

	h := make(minHeap, 0, 256)
	seq := 0
	for b := 0; b < 256; b++ {
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, node{
			freq:   freqs[b],
			left:   noChild,
			right:  noChild,
			symbol: byte(b),
			isLeaf: true,
		})
		h = append(h, heapItem{idx: idx, freq: freqs[b], seq: seq})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		n1 := heap.Pop(&h).(heapItem)
		n2 := heap.Pop(&h).(heapItem)

		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, node{
			freq:  satAdd(n1.freq, n2.freq),
			left:  n1.idx,
			right: n2.idx,
		})
		heap.Push(&h, heapItem{idx: idx, freq: t.nodes[idx].freq, seq: seq})
		seq++
	}

	t.root = heap.Pop(&h).(heapItem).idx
	t.assignCodes(t.root, 0, 0)
	return t
}

// assignCodes walks the tree from node idx, giving each leaf a right-aligned
// code mask and bit length: a left edge appends a 0 bit and a right edge a
// 1 bit.
func (t *tree) assignCodes(idx int32, mask uint32, length uint8) {
	n := &t.nodes[idx]
	if n.isLeaf {
		n.mask = mask
		n.length = length
		return
	}
	t.assignCodes(n.left, mask<<1, length+1)
	t.assignCodes(n.right, mask<<1|1, length+1)
}

// leaf returns the leaf node for byte value b. Leaves occupy arena slots
// [0, 256) in symbol order, a property buildTree maintains by construction.
func (t *tree) leaf(b byte) *node {
	return &t.nodes[b]
}

// satAdd adds a and b, saturating at math.MaxUint64 rather than wrapping.
// Frequencies here are already individually saturated at 2^32-1 (see the
// counting loop in Encode), so a straightforward uint64 add cannot itself overflow
// within any tree this package builds, but the helper documents the
// invariant explicitly and protects against future changes to the
// frequency width.
func satAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}
