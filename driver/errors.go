package driver

import (
	"fmt"
	"io"
	"os"
)

// errWriter and exitFunc are indirected so tests can exercise the
// church2int failure path without terminating the test process, matching
// the pattern used throughout graph and parser.
var (
	errWriter io.Writer = os.Stderr
	exitFunc            = os.Exit
)

func failRuntime(format string, args ...any) {
	fmt.Fprintln(errWriter, fmt.Sprintf(format, args...))
	exitFunc(3)
}
