// Package graph implements the lazy combinator evaluator: a fixed-capacity
// semispace arena of tagged nodes, a Cheney-style copying collector, the
// Church-numeral cache, and the call-by-need weak-head-normal-form reducer.
//
// This package contains:
//   - Node: a tagged two-slot record shared by the parser, the evaluator,
//     and the garbage collector
//   - Heap: bump-allocated semispace arena plus the Cheney collector
//   - Roots: the explicit root stack the collector scans in place of a
//     conservative stack scan
//   - Church-char cache: precomputed Church numerals for bytes 0..256
//   - Evaluator: iterative left-spine reduction to weak head normal form,
//     with in-place rewriting so shared subterms reduce at most once
package graph
