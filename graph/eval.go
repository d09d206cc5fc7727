package graph

import "fmt"

// Evaluator reduces nodes in a Heap to weak head normal form, destructively
// rewriting the graph as it goes. It also owns the input
// byte source that LazyRead nodes consume from.
type Evaluator struct {
	Heap  *Heap
	Input ByteSource
}

// ByteSource yields the next input byte, or ok=false at end of stream.
// LazyRead maps an exhausted source to the value 256.
type ByteSource interface {
	ReadByte() (b byte, ok bool)
}

// NewEvaluator builds an Evaluator over h, reading LazyRead bytes from in.
func NewEvaluator(h *Heap, in ByteSource) *Evaluator {
	return &Evaluator{Heap: h, Input: in}
}

// ToNumber reads a node's integer value if it is in WHNF as a Num, or -1
// otherwise.
func ToNumber(h *Heap, ref Ref) int64 {
	n := h.Node(ref)
	if n.Tag == TagNum {
		return n.Num()
	}
	return -1
}

// collapseI1 skips a (possibly empty) chain of I1 indirections starting
// at ref, then path-compresses by rewriting ref's own Slot1 to the final
// target.
func collapseI1(h *Heap, ref Ref) Ref {
	if ref.IsNil() {
		return ref
	}
	cur := ref
	for h.Node(cur).Tag == TagI1 {
		cur = h.Node(cur).Child1()
	}
	if cur != ref {
		h.Node(ref).SetChild1(cur)
	}
	return cur
}

// PartialEval reduces node to weak head normal form: iterative left-spine
// traversal with pointer reversal. The back-link for each
// ancestor application is stored in that application's own Slot1 field,
// so the walk uses O(1) auxiliary Go-stack space outside of apply_primitive's
// Inc case.
func (e *Evaluator) PartialEval(node Ref) Ref {
	h := e.Heap
	prev := NilRef
	cur := collapseI1(h, node)

	for {
		for h.Node(cur).Tag == TagA {
			next := collapseI1(h, h.Node(cur).Child1())
			h.Node(cur).SetChild1(prev)
			prev = cur
			cur = next
		}
		if prev.IsNil() {
			return cur
		}
		app := prev
		prev = h.Node(app).Child1()
		h.Node(app).SetChild1(cur)
		cur = e.applyPrimitive(app, &prev)
		cur = collapseI1(h, cur)
	}
}

// applyPrimitive implements the combinator reduction rules keyed on the
// tag of app's (already-WHNF) left child.
func (e *Evaluator) applyPrimitive(app Ref, prev *Ref) Ref {
	h := e.Heap
	n := h.Node(app)
	lhsRef := n.Child1()
	rhsRef := n.Slot2
	lhsTag := h.Node(lhsRef).Tag

	switch lhsTag {
	case TagI: // (I y) -> y, 0 allocs
		n.Tag = TagI1
		n.SetChild1(rhsRef)
		n.Slot2 = NilRef
		return rhsRef

	case TagK: // (K y) -> K1(y), 0 allocs
		n.Tag = TagK1
		n.SetChild1(rhsRef)
		n.Slot2 = NilRef
		return app

	case TagK1: // (K1(x) y) -> x, 0 allocs
		x := h.Node(lhsRef).Child1()
		n.Tag = TagI1
		n.SetChild1(x)
		n.Slot2 = NilRef
		return x

	case TagS: // (S y) -> S1(y), 0 allocs
		n.Tag = TagS1
		n.SetChild1(rhsRef)
		n.Slot2 = NilRef
		return app

	case TagS1: // (S1(x) y) -> S2(x, y), 0 allocs
		x := h.Node(lhsRef).Child1()
		n.Tag = TagS2
		n.SetChild1(x)
		n.Slot2 = rhsRef
		return app

	case TagLazyRead: // force one input byte, then fall into the S2 rule
		h.CheckRooted(6, &app, prev)
		n = h.Node(app)
		lazyRef := n.Child1()
		ch := e.readByte()
		charRef := h.Chars.MakeChurchChar(h, ch)
		consHead := h.NewNode(TagS2, int64(h.Const.I), h.NewNode(TagK1, int64(charRef), NilRef))
		nextLazy := h.NewNode(TagLazyRead, 0, NilRef)
		consTail := h.NewNode(TagK1, int64(nextLazy), NilRef)
		lazy := h.Node(lazyRef)
		lazy.Tag = TagS2
		lazy.SetChild1(consHead)
		lazy.Slot2 = consTail
		n = h.Node(app)
		return e.reduceS2(app, n.Child1(), n.Slot2)

	case TagS2: // (S2(x,y) z) -> A(A(x,z), A(y,z)), 2 allocs, z shared
		h.CheckRooted(2, &app, prev)
		n = h.Node(app)
		return e.reduceS2(app, n.Child1(), n.Slot2)

	case TagInc: // force rhs to WHNF, then Num(n+1)
		h.Roots.Push(app)
		h.Roots.Push(*prev)
		whnf := e.PartialEval(rhsRef)
		*prev = h.Roots.Pop()
		app = h.Roots.Pop()

		n = h.Node(app)
		num := ToNumber(h, whnf)
		n.Tag = TagNum
		n.Slot1 = num + 1
		n.Slot2 = NilRef
		if n.Slot1 == 0 {
			e.fail(newRuntimeError("Runtime error: invalid output format (attempted to apply inc to a non-number)"))
		}
		return app

	case TagNum:
		e.fail(newRuntimeError("Runtime error: invalid output format (attempted to apply a number)"))
		return NilRef

	default:
		e.fail(&InternalError{Message: fmt.Sprintf("invalid type in apply_primitive (%s)", lhsTag)})
		return NilRef
	}
}

// reduceS2 performs the shared two-allocation S2 rewrite: app's head was
// S2(x, y) and its argument is rhsRef; the caller has already reserved
// capacity for exactly two nodes.
func (e *Evaluator) reduceS2(app, lhsRef, rhsRef Ref) Ref {
	h := e.Heap
	lhs := h.Node(lhsRef)
	x, y := lhs.Child1(), lhs.Slot2
	left := h.NewApp(x, rhsRef)
	right := h.NewApp(y, rhsRef)
	n := h.Node(app)
	n.SetChild1(left)
	n.Slot2 = right
	return app
}

// readByte consumes one byte from the input source, mapping EOF to 256.
func (e *Evaluator) readByte() int {
	b, ok := e.Input.ReadByte()
	if !ok {
		return 256
	}
	return int(b)
}

// fail reports err on stderr and terminates with its exit code. Every
// error the evaluator raises is process-terminating.
func (e *Evaluator) fail(err error) {
	fmt.Fprintln(stderrWriter, err.Error())
	switch v := err.(type) {
	case *RuntimeError:
		exitFunc(v.ExitCode())
	case *InternalError:
		exitFunc(v.ExitCode())
	default:
		exitFunc(4)
	}
}
