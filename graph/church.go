package graph

// ChurchCache is the fixed array of precomputed Church numerals for byte
// values 0..256 (257 entries; 256 is the EOF sentinel). Entry n encodes
// λf.λx. f^n(x) as S2(SKSK, cache[n-1]), bottoming out at cache[0] = KI
// and cache[1] = I.
type ChurchCache struct {
	entries [257]Ref
}

// churchCacheNodeCount is the number of nodes newChurchCache allocates:
// entries 0 (KI) and 1 (I) reuse existing singletons, so only entries
// 2..256 (255 of them) each allocate a fresh S2 node.
const churchCacheNodeCount = 255

func newChurchCache(h *Heap) *ChurchCache {
	c := &ChurchCache{}
	for i := range c.entries {
		c.entries[i] = NilRef
	}
	for n := 0; n <= 256; n++ {
		c.build(h, n)
	}
	return c
}

// build is the recursive construction, writing through the memo as it
// goes so that building cache[256] also populates every entry below it.
func (c *ChurchCache) build(h *Heap, n int) Ref {
	if !c.entries[n].IsNil() {
		return c.entries[n]
	}
	var ref Ref
	switch n {
	case 0:
		ref = h.Const.KI
	case 1:
		ref = h.Const.I
	default:
		prev := c.build(h, n-1)
		ref = h.NewNode(TagS2, int64(h.Const.SKSK), prev)
	}
	c.entries[n] = ref
	return ref
}

// MakeChurchChar returns the Church numeral for byte value ch, clamping
// out-of-range values to 256 (the EOF sentinel). It is idempotent:
// repeated calls with the same (clamped) value return the same cached
// node.
func (c *ChurchCache) MakeChurchChar(h *Heap, ch int) Ref {
	if ch < 0 || ch > 256 {
		ch = 256
	}
	if !c.entries[ch].IsNil() {
		return c.entries[ch]
	}
	return c.build(h, ch)
}

func (c *ChurchCache) forEach(fn func(Ref) Ref) {
	for i := range c.entries {
		c.entries[i] = fn(c.entries[i])
	}
}
