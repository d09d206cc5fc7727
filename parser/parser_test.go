package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/lazyk/graph"
)

func newTestHeap(t *testing.T) *graph.Heap {
	t.Helper()
	return graph.NewHeap(4096, 256)
}

func parse(t *testing.T, h *graph.Heap, src string) graph.Ref {
	t.Helper()
	p := New(h)
	return p.ParseProgram(NewSource(strings.NewReader(src), "test"))
}

func TestEmptyProgramIsI(t *testing.T) {
	h := newTestHeap(t)
	got := parse(t, h, "")
	if got != h.Const.I {
		t.Errorf("empty program should parse to I, got tag %s", h.Node(got).Tag)
	}
}

func TestLeaves(t *testing.T) {
	h := newTestHeap(t)
	cases := map[string]graph.Ref{
		"k": h.Const.K, "K": h.Const.K,
		"s": h.Const.S, "S": h.Const.S,
		"I": h.Const.I,
	}
	for src, want := range cases {
		if got := parse(t, h, src); got != want {
			t.Errorf("parse(%q) = tag %s, want the %v singleton", src, h.Node(got).Tag, want)
		}
	}
}

func TestBareILowercaseIsPlainIOutsideStar(t *testing.T) {
	h := newTestHeap(t)
	if got := parse(t, h, "i"); got != h.Const.I {
		t.Errorf("bare lowercase i outside a * prefix should be I, got tag %s", h.Node(got).Tag)
	}
}

func TestStarMakesLowercaseIIota(t *testing.T) {
	h := newTestHeap(t)
	got := parse(t, h, "*ik")
	if h.Node(got).Tag != graph.TagA {
		t.Fatalf("expected an application, got tag %s", h.Node(got).Tag)
	}
	if h.Node(got).Child1() != h.Const.Iota {
		t.Errorf("lowercase i inside * should resolve to Iota")
	}
}

func TestBacktickApplication(t *testing.T) {
	h := newTestHeap(t)
	// `ks parses as (K S)
	got := parse(t, h, "`ks")
	n := h.Node(got)
	if n.Tag != graph.TagA || n.Child1() != h.Const.K || n.Slot2 != h.Const.S {
		t.Errorf("`ks should parse as A(K, S), got tag=%s child1=%v slot2=%v", n.Tag, n.Child1(), n.Slot2)
	}
}

// TestNestedBacktickSurvivesCollectionDuringRHS builds a backtick
// expression whose left operand is a freshly allocated (non-singleton)
// node, then forces a collection while parsing its right operand on a
// heap barely larger than the fixed startup allocation, most of whose
// free space is first filled with unrooted garbage. Before lhs/e were
// rooted across nested parseExpr calls, this corrupted the left operand.
func TestNestedBacktickSurvivesCollectionDuringRHS(t *testing.T) {
	h := graph.NewHeap(graph.MinNodeCapacity, 256)
	for i := 0; i < 40; i++ {
		h.Check(1)
		h.NewApp(h.Const.I, h.Const.K)
	}
	before := h.Collections

	rhs := strings.Repeat("`i", 40) + "i"
	src := "`" + "`ii" + rhs

	got := parse(t, h, src)
	if h.Collections == before {
		t.Fatalf("expected a collection while parsing the right operand")
	}

	top := h.Node(got)
	if top.Tag != graph.TagA {
		t.Fatalf("top-level expression should be an application, got tag %s", top.Tag)
	}
	lhs := h.Node(top.Child1())
	if lhs.Tag != graph.TagA || lhs.Child1() != h.Const.I || lhs.Slot2 != h.Const.I {
		t.Errorf("left operand `ii should survive the long right operand's parse as A(I, I), got tag=%s child1=%v slot2=%v", lhs.Tag, lhs.Child1(), lhs.Slot2)
	}
}

func TestParenApplicationLeftAssociative(t *testing.T) {
	h := newTestHeap(t)
	// (k s i) should fold as (K S) I
	got := parse(t, h, "(k s i)")
	n := h.Node(got)
	if n.Tag != graph.TagA || n.Slot2 != h.Const.I {
		t.Fatalf("expected outer application with I as rhs, got tag=%s slot2=%v", n.Tag, n.Slot2)
	}
	inner := h.Node(n.Child1())
	if inner.Tag != graph.TagA || inner.Child1() != h.Const.K || inner.Slot2 != h.Const.S {
		t.Errorf("expected inner application K S, got tag=%s child1=%v slot2=%v", inner.Tag, inner.Child1(), inner.Slot2)
	}
}

func TestTopLevelFragmentsFoldByApplication(t *testing.T) {
	h := newTestHeap(t)
	// Two top-level tokens "k s" fold to (K S), same as "(k s)".
	got := parse(t, h, "k s")
	n := h.Node(got)
	if n.Tag != graph.TagA || n.Child1() != h.Const.K || n.Slot2 != h.Const.S {
		t.Errorf("top-level fragments should left-fold by application, got tag=%s", n.Tag)
	}
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	h := newTestHeap(t)
	got := parse(t, h, "  k # this is K\n  s # this is S\n")
	n := h.Node(got)
	if n.Tag != graph.TagA || n.Child1() != h.Const.K || n.Slot2 != h.Const.S {
		t.Errorf("comments and whitespace should be ignored, got tag=%s", n.Tag)
	}
}

// TestJotRoundTrip checks the unreduced shapes the Jot fold builds from I:
// "1" is S (K I), which behaves as I, and "0" is (I S) K, which behaves
// as S K.
func TestJotRoundTrip(t *testing.T) {
	h := newTestHeap(t)

	one := parse(t, h, "1")
	o := h.Node(one)
	if o.Tag != graph.TagA || o.Child1() != h.Const.S {
		t.Fatalf(`Jot "1" should parse to S (K I), got tag=%s child1=%v`, o.Tag, o.Child1())
	}
	ki := h.Node(o.Slot2)
	if ki.Tag != graph.TagA || ki.Child1() != h.Const.K || ki.Slot2 != h.Const.I {
		t.Errorf(`Jot "1" should parse to S (K I), got inner tag=%s child1=%v slot2=%v`, ki.Tag, ki.Child1(), ki.Slot2)
	}

	zero := parse(t, h, "0")
	n := h.Node(zero)
	if n.Tag != graph.TagA || n.Slot2 != h.Const.K {
		t.Fatalf(`Jot "0" should parse to (I S) K, got tag=%s slot2=%v`, n.Tag, n.Slot2)
	}
	is := h.Node(n.Child1())
	if is.Tag != graph.TagA || is.Child1() != h.Const.I || is.Slot2 != h.Const.S {
		t.Errorf(`Jot "0" should parse to (I S) K, got inner tag=%s child1=%v slot2=%v`, is.Tag, is.Child1(), is.Slot2)
	}
}

func TestJotLongLiteral(t *testing.T) {
	h := newTestHeap(t)
	// "11100" folds left-to-right with digit '0' => e <- ((e S) K),
	// digit '1' => e <- (S (K e)), starting from I.
	got := parse(t, h, "11100")
	if h.Node(got).Tag != graph.TagA {
		t.Errorf("Jot literal should parse to an application, got tag %s", h.Node(got).Tag)
	}
}

func TestMismatchedCloseParenExits1(t *testing.T) {
	h := newTestHeap(t)
	code := withCapturedExit(t, func() {
		parse(t, h, ")")
	})
	if code != 1 {
		t.Errorf("mismatched close-paren should exit 1, got %d", code)
	}
}

func TestPrematureEOFExits1(t *testing.T) {
	h := newTestHeap(t)
	code := withCapturedExit(t, func() {
		parse(t, h, "(k s")
	})
	if code != 1 {
		t.Errorf("premature EOF inside parens should exit 1, got %d", code)
	}
}

func TestInvalidCharacterExits1(t *testing.T) {
	h := newTestHeap(t)
	code := withCapturedExit(t, func() {
		parse(t, h, "k @ s")
	})
	if code != 1 {
		t.Errorf("invalid character should exit 1, got %d", code)
	}
}

func TestErrorMessageHasContextSnippet(t *testing.T) {
	h := newTestHeap(t)
	var buf bytes.Buffer
	restoreErr := SetErrWriter(&buf)
	defer restoreErr()

	code := withCapturedExit(t, func() {
		parse(t, h, "k s )")
	})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "<--") {
		t.Errorf("error message should contain a %q context snippet, got %q", "<--", buf.String())
	}
}

// withCapturedExit runs fn with exitFunc overridden to panic with the exit
// code instead of terminating the test process, and returns the captured
// code. fn is expected to reach the parse error (and thus the panic).
func withCapturedExit(t *testing.T, fn func()) int {
	t.Helper()
	prevExit := exitFunc
	defer func() { exitFunc = prevExit }()

	type exitPanic struct{ code int }
	exitFunc = func(c int) { panic(exitPanic{code: c}) }

	code := -1
	func() {
		defer func() {
			if r := recover(); r != nil {
				if ep, ok := r.(exitPanic); ok {
					code = ep.code
					return
				}
				panic(r)
			}
		}()
		fn()
	}()
	return code
}
