package graph

// singletonCount is the number of permanent constants in Singletons.
const singletonCount = 12

// Ordered returns the permanent constants in the fixed order buildSingletons
// allocates them, for callers (e.g. the cache package) that need to refer
// to a singleton by a stable small integer instead of a heap-specific Ref.
func (s *Singletons) Ordered() [singletonCount]Ref {
	return [singletonCount]Ref{
		s.K, s.S, s.I, s.KI, s.SI, s.KS, s.KK, s.SKSK, s.SIKS, s.Iota, s.Inc, s.Zero,
	}
}

// SingletonIndex reports whether ref is one of h's permanent constants and,
// if so, its position in Ordered.
func (h *Heap) SingletonIndex(ref Ref) (int, bool) {
	ordered := h.Const.Ordered()
	for i, r := range ordered {
		if r == ref {
			return i, true
		}
	}
	return 0, false
}
