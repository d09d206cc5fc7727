// Package server exposes syntax diagnostics for combinator source over
// the Language Server Protocol, using tliron/glsp (JSON-RPC, no protobuf
// codegen) and tliron/commonlog for server-side logging. Completion,
// hover, and go-to-definition are not offered: the language has no named
// symbols for an editor to navigate — combinators and syntactic sugar
// characters aren't identifiers.
//
// Document parses run through a single-goroutine worker that serializes
// access to the shared graph.Heap/parser.Parser, the same pattern a
// request/response VM worker uses to protect shared interpreter state.
package server
