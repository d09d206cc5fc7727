package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: lazyk [-b] { -e PROGRAM | PROGRAM-FILE | - }*\n\n")
	fmt.Fprintf(w, "Runs a lazy combinator program against standard input, writing the\n")
	fmt.Fprintf(w, "resulting byte stream to standard output until a stream value of 256\n")
	fmt.Fprintf(w, "or more is produced (exit code = value - 256).\n\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  -b               accepted and ignored (legacy binary-mode switch)\n")
	fmt.Fprintf(w, "  -e PROGRAM       take the next argument as inline source\n")
	fmt.Fprintf(w, "  -                read program source from standard input\n")
	fmt.Fprintf(w, "  PROGRAM-FILE     a path to a source file\n")
	fmt.Fprintf(w, "  -config PATH     load configuration from PATH instead of the default search path\n")
	fmt.Fprintf(w, "  -cache PATH      cache parsed programs in a SQLite database at PATH\n")
	fmt.Fprintf(w, "  -serve-lsp       run a language server on stdio reporting syntax diagnostics\n\n")
	fmt.Fprintf(w, "Fragments compose in argument order: running with p1 then p2 behaves as\n")
	fmt.Fprintf(w, "p2(p1(x)) applied to the input stream.\n\n")
	fmt.Fprintf(w, "Examples:\n")
	fmt.Fprintf(w, "  lazyk hello.lazy               # run a single program file\n")
	fmt.Fprintf(w, "  lazyk -e '``skk`sii'            # run an inline program\n")
	fmt.Fprintf(w, "  lazyk p1.lazy p2.lazy           # compose two fragments, p1 then p2\n")
	fmt.Fprintf(w, "  lazyk -cache ~/.lazyk/cache.db prog.lazy  # cache the parsed program\n")
	fmt.Fprintf(w, "  lazyk -serve-lsp                # run as a language server\n")
}
