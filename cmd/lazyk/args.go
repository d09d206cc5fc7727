package main

import "fmt"

// fragmentKind discriminates where a program fragment's source text
// comes from.
type fragmentKind int

const (
	fragmentFile fragmentKind = iota
	fragmentInline
	fragmentStdin
)

// fragment is one program source named on the command line, in the order
// it appeared.
type fragment struct {
	kind  fragmentKind
	value string // file path, or the inline program text for fragmentInline
}

// options is the result of scanning argv.
type options struct {
	fragments  []fragment
	binaryMode bool // -b: accepted and ignored
	showUsage  bool
	serveLSP   bool
	configPath string
	cachePath  string
}

// parseArgs hand-scans argv instead of using flag.Parse: -e PROGRAM and
// bare file paths must repeat and interleave in any order with no
// particular grouping, which the standard library's flag package cannot
// express since it stops treating arguments as flags at the first
// non-flag argument.
func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch a {
		case "-b":
			o.binaryMode = true

		case "-e":
			i++
			if i >= len(args) {
				return options{}, fmt.Errorf("-e requires a PROGRAM argument")
			}
			o.fragments = append(o.fragments, fragment{kind: fragmentInline, value: args[i]})

		case "-":
			o.fragments = append(o.fragments, fragment{kind: fragmentStdin})

		case "-config":
			i++
			if i >= len(args) {
				return options{}, fmt.Errorf("-config requires a PATH argument")
			}
			o.configPath = args[i]

		case "-cache":
			i++
			if i >= len(args) {
				return options{}, fmt.Errorf("-cache requires a PATH argument")
			}
			o.cachePath = args[i]

		case "-serve-lsp":
			o.serveLSP = true

		case "-h", "-help", "--help":
			o.showUsage = true

		default:
			if len(a) > 0 && a[0] == '-' && a != "-" {
				o.showUsage = true
				return o, nil
			}
			o.fragments = append(o.fragments, fragment{kind: fragmentFile, value: a})
		}
	}
	return o, nil
}
