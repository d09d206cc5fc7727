// Package parser turns combinator source text into a graph.Heap
// expression, sharing the same node representation the evaluator reduces.
// There is no separate AST: the parser allocates the same A/K/S/I nodes
// the evaluator mutates, so a parsed program is already a live expression
// graph the moment parsing finishes.
package parser
