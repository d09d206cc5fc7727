package driver

import "github.com/chazu/lazyk/graph"

// Compose folds program fragments into a single expression by functional
// composition in Unix-pipe order: for fragments p1..pk the result behaves
// as pk ∘ ... ∘ p1. An empty fragment list composes to I.
func Compose(h *graph.Heap, fragments []graph.Ref) graph.Ref {
	acc := h.Const.I
	for _, p := range fragments {
		acc = compose(h, p, acc)
	}
	return acc
}

// compose builds S2(K1(p), acc), i.e. λx. p (acc x) — one new fragment
// wrapped around the accumulator built from every fragment before it.
func compose(h *graph.Heap, p, acc graph.Ref) graph.Ref {
	h.CheckRooted(2, &p, &acc)
	k1p := h.NewNode(graph.TagK1, int64(p), graph.NilRef)
	return h.NewNode(graph.TagS2, int64(k1p), acc)
}
