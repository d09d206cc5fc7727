package parser

import "github.com/chazu/lazyk/graph"

// Parser holds the heap an expression is being parsed into. There is
// exactly one grammar: back-tick/`*` application prefix,
// parenthesized application, the K/S/I leaves, Jot digit runs, and the
// iota substitution for `i` inside a `*`-prefixed subexpression.
type Parser struct {
	h *graph.Heap
}

// New creates a Parser allocating into h.
func New(h *graph.Heap) *Parser {
	return &Parser{h: h}
}

// apply allocates A(lhs, rhs), guarding the allocation with CheckRooted so
// a collection triggered by this allocation can't strand either operand.
// The reference implementation's partial_apply skips this check entirely
// (parsing never calls check() in original_source/lazy.cpp); checking
// here trades a little speed for never panicking on a pathologically
// large source file.
//
// apply only protects the two Refs passed directly into it. A Ref held
// across a *nested* recursive parse call (one that can itself allocate
// and collect, such as another parseExpr) is not covered by this and
// must be rooted by the caller for the duration of that call — see
// parseExpr's backtick/`*` case and parseManualClose's fold loop.
func (p *Parser) apply(lhs, rhs graph.Ref) graph.Ref {
	p.h.CheckRooted(1, &lhs, &rhs)
	return p.h.NewApp(lhs, rhs)
}

// ParseProgram parses expressions from src until EOF (or, for a nested
// call, the matching close paren), left-folding them by application. An
// empty program is the single I node.
func (p *Parser) ParseProgram(src *Source) graph.Ref {
	return p.parseManualClose(src, EOF)
}

// parseManualClose parses expressions until it sees expectedTerminator or
// EOF, left-associatively applying them together. The accumulator e is
// rooted across each call to parseExpr: that call recurses arbitrarily
// deep and can itself trigger a collection, which would otherwise strand
// e (it lives in this stack frame, outside apply's own rooting of its two
// direct operands).
func (p *Parser) parseManualClose(src *Source, expectedTerminator int) graph.Ref {
	var e graph.Ref = graph.NilRef
	var peek int
	for {
		peek = src.GetCh()
		if peek == ')' || peek == EOF {
			break
		}
		p.h.Roots.Push(e)
		e2 := p.parseExpr(src, peek, false)
		e = p.h.Roots.Pop()
		if e.IsNil() {
			e = e2
		} else {
			e = p.apply(e, e2)
		}
	}
	if peek != expectedTerminator {
		if peek == EOF {
			src.Errorf("Premature end of program!")
		} else {
			src.Errorf("Unmatched trailing close-parenthesis!")
		}
	}
	if e.IsNil() {
		e = p.h.Const.I
	}
	return e
}

// parseExpr parses a single token already read as ch. iIsIota controls
// whether a bare `i` denotes the iota combinator (true inside a
// `*`-prefixed subexpression) or plain I.
func (p *Parser) parseExpr(src *Source, ch int, iIsIota bool) graph.Ref {
	switch ch {
	case '`', '*':
		isIota := ch == '*'
		lhs := p.parseExpr(src, src.GetCh(), isIota)
		// rhs's recursive parse can itself allocate and collect; lhs must
		// be rooted for its duration, not just for the apply() call below.
		p.h.Roots.Push(lhs)
		rhs := p.parseExpr(src, src.GetCh(), isIota)
		lhs = p.h.Roots.Pop()
		return p.apply(lhs, rhs)

	case '(':
		return p.parseManualClose(src, ')')

	case ')':
		src.Errorf("Mismatched close-parenthesis!")
		return graph.NilRef

	case 'k', 'K':
		return p.h.Const.K

	case 's', 'S':
		return p.h.Const.S

	case 'i':
		if iIsIota {
			return p.h.Const.Iota
		}
		return p.h.Const.I

	case 'I':
		return p.h.Const.I

	case '0', '1':
		return p.parseJot(src, ch)

	default:
		src.Errorf("Invalid character!")
		return graph.NilRef
	}
}

// parseJot folds a maximal run of '0'/'1' digits starting with first:
// digit '0' folds e <- ((e S) K); digit '1' folds e <- (S (K e)). Both
// start from I. The terminating non-digit character is pushed back.
func (p *Parser) parseJot(src *Source, first int) graph.Ref {
	e := p.h.Const.I
	ch := first
	for ch == '0' || ch == '1' {
		if ch == '0' {
			e = p.apply(p.apply(e, p.h.Const.S), p.h.Const.K)
		} else {
			e = p.apply(p.h.Const.S, p.apply(p.h.Const.K, e))
		}
		ch = src.GetCh()
	}
	src.UngetCh(ch)
	return e
}
