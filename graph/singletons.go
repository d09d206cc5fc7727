package graph

// buildSingletons allocates the permanent combinator constants directly
// in the arena, in the same dependency order the reference implementation
// uses. It runs once, on an empty heap right after NewHeap has sized the
// arena to at least MinNodeCapacity, which reserves singletonCount
// (singleton_index.go) slots for exactly this, so no capacity check is
// needed here.
func (h *Heap) buildSingletons() {
	c := &h.Const
	c.K = h.NewNode(TagK, 0, NilRef)
	c.S = h.NewNode(TagS, 0, NilRef)
	c.I = h.NewNode(TagI, 0, NilRef)
	c.KI = h.NewNode(TagK1, int64(c.I), NilRef)
	c.SI = h.NewNode(TagS1, int64(c.I), NilRef)
	c.KS = h.NewNode(TagK1, int64(c.S), NilRef)
	c.KK = h.NewNode(TagK1, int64(c.K), NilRef)
	c.SKSK = h.NewNode(TagS2, int64(c.KS), c.K)
	c.SIKS = h.NewNode(TagS2, int64(c.I), c.KS)
	// Iota = λx. x S K, i.e. S (S I (K S)) (K K), matching
	// original_source/lazy.cpp's `Expr Iota(S2, &SIKS, &KK)`. The second
	// argument must be KK, not a nested K1(K1(K)): that would produce a
	// different, non-standard reduction.
	c.Iota = h.NewNode(TagS2, int64(c.SIKS), c.KK)
	c.Inc = h.NewNode(TagInc, 0, NilRef)
	c.Zero = h.NewNode(TagNum, 0, NilRef)
}
