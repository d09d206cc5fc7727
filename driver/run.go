package driver

import (
	"io"

	"github.com/chazu/lazyk/graph"
)

// Driver ties a Heap and Evaluator together into the head/tail extraction
// loop that drives a composed program to its output stream.
type Driver struct {
	Heap *graph.Heap
	Eval *graph.Evaluator
}

// New builds a Driver over an already-constructed Heap and Evaluator.
func New(h *graph.Heap, ev *graph.Evaluator) *Driver {
	return &Driver{Heap: h, Eval: ev}
}

// Start composes fragments into a single expression and applies it to a
// fresh LazyRead thunk, installing the result as the toplevel root.
func (d *Driver) Start(fragments []graph.Ref) {
	program := Compose(d.Heap, fragments)
	h := d.Heap
	h.Roots.Push(program)
	h.Check(2)
	lazy := h.NewNode(graph.TagLazyRead, 0, graph.NilRef)
	program = h.Roots.Pop()
	top := h.NewApp(program, lazy)
	h.Roots.SetToplevel(top)
}

// car(list) = A(list, K).
func car(h *graph.Heap, list graph.Ref) graph.Ref {
	h.Check(1)
	return h.NewApp(list, h.Const.K)
}

// cdr(list) = A(list, KI).
func cdr(h *graph.Heap, list graph.Ref) graph.Ref {
	h.Check(1)
	return h.NewApp(list, h.Const.KI)
}

// church2int reduces ch (a Church numeral) to a host integer: reserve two
// nodes, build A(A(ch, Inc), Num(0)), root it in the dedicated
// church2int root slot so Inc's recursive forcing can't strand it across a
// GC, reduce to WHNF, and read the result.
func church2int(h *graph.Heap, ev *graph.Evaluator, ch graph.Ref) int64 {
	h.Check(2)
	step1 := h.NewApp(ch, h.Const.Inc)
	e := h.NewApp(step1, h.Const.Zero)
	h.Roots.SetChurch2Int(e)

	whnf := ev.PartialEval(e)
	result := graph.ToNumber(h, whnf)

	h.Roots.SetChurch2Int(graph.NilRef)

	if result == -1 {
		failRuntime("Runtime error: invalid output format (result was not a number)")
	}
	return result
}

// Run repeatedly extracts the head of the toplevel stream, converting it
// to an integer; a head of 256 or more terminates with exit code
// head-256, otherwise the low byte is written to out and the loop
// advances to the tail.
func (d *Driver) Run(out io.Writer) int {
	h := d.Heap
	for {
		h.Check(1)
		head := church2int(h, d.Eval, car(h, h.Roots.Toplevel()))
		if head >= 256 {
			return int(head - 256)
		}
		if _, err := out.Write([]byte{byte(head)}); err != nil {
			return 4
		}
		h.Check(1)
		h.Roots.SetToplevel(cdr(h, h.Roots.Toplevel()))
	}
}
