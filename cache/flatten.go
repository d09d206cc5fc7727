package cache

import "github.com/chazu/lazyk/graph"

// flatNode is the CBOR wire shape for one graph.Node, with ref fields
// translated to small integers that are meaningful independent of any
// particular Heap (see encodeRef/decodeRef).
type flatNode struct {
	Tag   graph.Tag `cbor:"t"`
	Slot1 int64     `cbor:"a"`
	Slot2 int32     `cbor:"b"`
}

// flatGraph is a parsed expression, serializable on its own: a flat list
// of nodes (in discovery order from Root) plus the index of the root.
type flatGraph struct {
	Nodes []flatNode `cbor:"n"`
	Root  int32      `cbor:"r"`
}

const (
	refNil       int32 = -1
	singletonBit int32 = -2 // singleton i encodes as singletonBit-i
)

// flatten walks every non-singleton node reachable from root, whatever its
// tag, and records it, encoding
// any child that is one of the heap's permanent singletons (K, S, I, Iota,
// ...) by its stable small index instead of copying it — a fresh program
// parsed into any Heap references the same singletons in the same order
// (graph.Heap.buildSingletons), so the singleton table never needs to be
// part of the cached payload.
func flatten(h *graph.Heap, root graph.Ref) flatGraph {
	index := make(map[graph.Ref]int32)
	var nodes []flatNode
	var order []graph.Ref

	var visit func(ref graph.Ref) int32
	visit = func(ref graph.Ref) int32 {
		if ref.IsNil() {
			return refNil
		}
		if i, ok := h.SingletonIndex(ref); ok {
			return singletonBit - int32(i)
		}
		if i, ok := index[ref]; ok {
			return i
		}
		i := int32(len(order))
		index[ref] = i
		order = append(order, ref)
		nodes = append(nodes, flatNode{}) // placeholder, filled below
		n := h.Node(ref)
		fn := flatNode{Tag: n.Tag}
		if n.Tag == graph.TagNum {
			fn.Slot1 = n.Slot1
			fn.Slot2 = refNil
		} else {
			fn.Slot1 = int64(visit(n.Child1()))
			fn.Slot2 = visit(n.Slot2)
		}
		nodes[i] = fn
		return i
	}

	rootIdx := visit(root)
	return flatGraph{Nodes: nodes, Root: rootIdx}
}

// rebuild allocates fresh nodes for every entry of g into h and returns the
// root's new Ref. Nodes are allocated before being linked, so cyclic graphs
// (possible via self-application that discards the K-captured reference
// back into itself) reconstruct correctly.
func rebuild(h *graph.Heap, g flatGraph) graph.Ref {
	if len(g.Nodes) == 0 {
		return resolveRef(h, nil, g.Root)
	}
	h.Check(len(g.Nodes))

	refs := make([]graph.Ref, len(g.Nodes))
	for i, fn := range g.Nodes {
		refs[i] = h.NewNode(fn.Tag, 0, graph.NilRef)
	}
	for i, fn := range g.Nodes {
		n := h.Node(refs[i])
		if fn.Tag == graph.TagNum {
			n.Slot1 = fn.Slot1
			n.Slot2 = graph.NilRef
			continue
		}
		n.SetChild1(resolveRef(h, refs, int32(fn.Slot1)))
		n.Slot2 = resolveRef(h, refs, fn.Slot2)
	}
	return resolveRef(h, refs, g.Root)
}

func resolveRef(h *graph.Heap, refs []graph.Ref, encoded int32) graph.Ref {
	switch {
	case encoded == refNil:
		return graph.NilRef
	case encoded <= singletonBit:
		idx := int(singletonBit - encoded)
		return h.Const.Ordered()[idx]
	default:
		return refs[encoded]
	}
}
