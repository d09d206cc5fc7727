package graph

import "fmt"

// nodeSize lets DefaultNodeCapacity be sized in bytes and converted to a
// node count; callers more commonly think "how many megabytes of heap"
// than "how many Node structs."
const nodeSize = 32 // Tag(1, padded) + Slot1(8) + Slot2(4) + Forward(4), rounded

// DefaultNodeCapacity sizes each semispace at roughly 16MiB of nodes,
// comfortably larger than the reference implementation needs for typical
// Lazy K / Unlambda / Jot programs.
const DefaultNodeCapacity = (16 * 1024 * 1024) / nodeSize

// minWorkingNodeCapacity is headroom kept above the fixed startup
// allocation: the smallest number of free slots Check needs available
// immediately after construction to collect-and-retry a first real
// allocation, even in the worst case where that collection reclaims
// nothing (every prior node is still a live singleton or cache entry).
const minWorkingNodeCapacity = 64

// MinNodeCapacity is the smallest node capacity NewHeap will honor.
// buildSingletons and newChurchCache together allocate
// singletonCount+churchCacheNodeCount nodes unconditionally before any
// user program is parsed; a capacity below that would make their first
// Alloc past the arena panic instead of reporting OutOfMemoryError.
const MinNodeCapacity = singletonCount + churchCacheNodeCount + minWorkingNodeCapacity

// Singletons holds the permanent combinator constants, allocated once at
// startup in the arena and kept alive as an extra root set the collector
// forwards alongside Roots and the Church-char cache.
type Singletons struct {
	K, S, I    Ref
	KI         Ref // K1(I)
	SI         Ref // S1(I)
	KS         Ref // K1(S)
	KK         Ref // K1(K)
	SKSK       Ref // S2(KS, K) — the Church-successor combinator
	SIKS       Ref // S2(I, KS)
	Iota       Ref // S2(SIKS, KK) == λx. x S K
	Inc        Ref
	Zero       Ref // Num(0)
}

func (s *Singletons) forEach(fn func(Ref) Ref) {
	s.K = fn(s.K)
	s.S = fn(s.S)
	s.I = fn(s.I)
	s.KI = fn(s.KI)
	s.SI = fn(s.SI)
	s.KS = fn(s.KS)
	s.KK = fn(s.KK)
	s.SKSK = fn(s.SKSK)
	s.SIKS = fn(s.SIKS)
	s.Iota = fn(s.Iota)
	s.Inc = fn(s.Inc)
	s.Zero = fn(s.Zero)
}

// Heap is the fixed-capacity semispace arena plus its Cheney collector,
// root set, Church-char cache, and permanent singletons. The arena itself
// is unexported; callers interact with it through Alloc/Check/CheckRooted
// and the exported Roots, Const and Chars fields.
type Heap struct {
	spaces    [2][]Node
	fromIdx   int
	nextAlloc Ref
	capacity  Ref

	Roots *Roots
	Const Singletons
	Chars *ChurchCache

	// Collections counts completed collections, for callers that want GC
	// telemetry; not part of interpreter semantics.
	Collections int
}

// NewHeap allocates both semispaces and builds the permanent singleton
// constants and the eager Church-char cache. rootCapacity bounds the
// explicit root stack.
func NewHeap(nodeCapacity, rootCapacity int) *Heap {
	if nodeCapacity < MinNodeCapacity {
		nodeCapacity = MinNodeCapacity
	}
	h := &Heap{
		capacity: Ref(nodeCapacity),
		Roots:    NewRoots(rootCapacity),
	}
	h.spaces[0] = make([]Node, nodeCapacity)
	h.spaces[1] = make([]Node, nodeCapacity)
	h.nextAlloc = 0

	h.buildSingletons()
	h.Chars = newChurchCache(h)
	return h
}

func (h *Heap) from() []Node { return h.spaces[h.fromIdx] }
func (h *Heap) to() []Node   { return h.spaces[1-h.fromIdx] }

// Node returns a pointer to the live node at ref. The pointer is only
// valid until the next collection.
func (h *Heap) Node(ref Ref) *Node {
	return &h.spaces[h.fromIdx][ref]
}

// Alloc returns a fresh zero-valued node reference. Callers must ensure
// capacity beforehand with Check or CheckRooted; Alloc itself never
// triggers collection.
func (h *Heap) Alloc() Ref {
	if h.nextAlloc >= h.capacity {
		panic("graph: Alloc called without a preceding capacity check")
	}
	ref := h.nextAlloc
	h.nextAlloc++
	h.spaces[h.fromIdx][ref] = Node{Forward: NilRef, Slot2: NilRef}
	return ref
}

// NewNode allocates and initializes a node in one step.
func (h *Heap) NewNode(tag Tag, slot1 int64, slot2 Ref) Ref {
	ref := h.Alloc()
	n := h.Node(ref)
	n.Tag = tag
	n.Slot1 = slot1
	n.Slot2 = slot2
	return ref
}

// NewApp allocates an unreduced application node A(lhs, rhs).
func (h *Heap) NewApp(lhs, rhs Ref) Ref {
	return h.NewNode(TagA, int64(lhs), rhs)
}

func (h *Heap) freeSlots() Ref {
	return h.capacity - h.nextAlloc
}

// Check ensures at least n free node slots remain, running the collector
// if necessary. It reports out of memory and terminates the process
// (exit code 4) if collection doesn't recover enough space.
func (h *Heap) Check(n int) {
	if h.freeSlots() >= Ref(n) {
		return
	}
	h.collect()
	if h.freeSlots() < Ref(n) {
		err := &OutOfMemoryError{Requested: n, Free: int(h.freeSlots())}
		fmt.Fprintln(stderrWriter, err.Error())
		exitFunc(err.ExitCode())
	}
}

// CheckRooted is like Check, but if collection will run, it temporarily
// roots *e1 and *e2 (arbitrary live local references the caller holds
// outside the normal root set) so they survive the move, then refreshes
// them from the popped values afterward.
func (h *Heap) CheckRooted(n int, e1, e2 *Ref) {
	if h.freeSlots() >= Ref(n) {
		return
	}
	h.Roots.Push(*e1)
	h.Roots.Push(*e2)
	h.collect()
	if h.freeSlots() < Ref(n) {
		err := &OutOfMemoryError{Requested: n, Free: int(h.freeSlots())}
		fmt.Fprintln(stderrWriter, err.Error())
		exitFunc(err.ExitCode())
	}
	*e2 = h.Roots.Pop()
	*e1 = h.Roots.Pop()
}

// collect runs one Cheney copying collection. It uses a
// monotonically-advancing scan cursor over the freshly copied prefix of
// to-space in place of the reference design's explicit work stack growing
// from the top of to-space — the two are isomorphic (both visit each
// copied node's children exactly once, in the order the node was
// evacuated) and the scan-cursor form needs no auxiliary storage.
func (h *Heap) collect() {
	h.Collections++
	destIdx := 1 - h.fromIdx
	dest := h.spaces[destIdx]
	src := h.spaces[h.fromIdx]
	var scan, alloc Ref = 0, 0

	forward := func(r Ref) Ref {
		if r.IsNil() {
			return NilRef
		}
		srcNode := &src[r]
		if !srcNode.Forward.IsNil() {
			return srcNode.Forward
		}
		dest[alloc] = *srcNode
		dest[alloc].Forward = NilRef
		newRef := alloc
		alloc++
		srcNode.Forward = newRef
		return newRef
	}

	h.Roots.forEach(forward)
	h.Chars.forEach(forward)
	h.Const.forEach(forward)

	for scan < alloc {
		n := &dest[scan]
		if n.Tag != TagNum {
			n.Slot1 = int64(forward(Ref(n.Slot1)))
			n.Slot2 = forward(n.Slot2)
		}
		scan++
	}

	h.fromIdx = destIdx
	h.nextAlloc = alloc
}
