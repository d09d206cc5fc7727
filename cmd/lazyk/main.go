// Command lazyk runs lazy combinator-language programs:
// S/K/I combinators with Jot, iota, and Unlambda back-tick syntactic
// sugar, reduced by call-by-need graph reduction over standard input and
// emitting a byte stream to standard output.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chazu/lazyk/cache"
	"github.com/chazu/lazyk/config"
	"github.com/chazu/lazyk/driver"
	"github.com/chazu/lazyk/graph"
	"github.com/chazu/lazyk/parser"
	"github.com/chazu/lazyk/server"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, errOut io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if opts.showUsage {
		printUsage(stdout)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if opts.serveLSP {
		return runLSP(errOut)
	}

	h := graph.NewHeap(cfg.NodeCapacity, cfg.RootCapacity)
	store := openCache(cfg, opts, errOut)
	if store != nil {
		defer store.Close()
	}

	stdinReader := bufio.NewReader(stdin)
	p := parser.New(h)

	var roots []graph.Ref
	for _, f := range opts.fragments {
		text, name, err := readFragment(f, stdinReader)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		roots = append(roots, parseOrCacheHit(h, p, store, name, text))
	}

	ev := graph.NewEvaluator(h, &stdinSource{r: stdinReader})
	d := driver.New(h, ev)
	d.Start(roots)
	return d.Run(stdout)
}

// readFragment resolves a fragment to its source text and a display name
// for parse-error context. A stdin fragment consumes the shared reader to
// its EOF — the entire remainder of standard input becomes the program
// text, leaving nothing for the runtime input stream, matching the
// reference implementation's behavior when program source and program
// input share one file descriptor.
func readFragment(f fragment, stdinReader *bufio.Reader) (text, name string, err error) {
	switch f.kind {
	case fragmentInline:
		return f.value, "command line", nil
	case fragmentStdin:
		data, err := io.ReadAll(stdinReader)
		if err != nil {
			return "", "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), "standard input", nil
	default:
		data, err := os.ReadFile(f.value)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", f.value, err)
		}
		return string(data), f.value, nil
	}
}

// parseOrCacheHit tries the cache before falling back to a normal parse.
// Caching is best-effort: any cache error is treated as a miss, never
// fatal.
func parseOrCacheHit(h *graph.Heap, p *parser.Parser, store *cache.Store, name, text string) graph.Ref {
	if store == nil {
		return p.ParseProgram(parser.NewSource(strings.NewReader(text), name))
	}

	key := cache.Key([]byte(text))
	if root, err := store.Get(key, h); err == nil {
		return root
	}

	root := p.ParseProgram(parser.NewSource(strings.NewReader(text), name))
	_ = store.Put(key, h, root)
	return root
}

func openCache(cfg config.Config, opts options, errOut io.Writer) *cache.Store {
	path := cfg.CachePath
	if opts.cachePath != "" {
		path = opts.cachePath
	}
	if path == "" {
		return nil
	}
	store, err := cache.Open(path)
	if err != nil {
		fmt.Fprintf(errOut, "warning: cache disabled: %v\n", err)
		return nil
	}
	return store
}

func runLSP(errOut io.Writer) int {
	s := server.NewLSP()
	if err := s.Run(); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}

// stdinSource adapts a *bufio.Reader to graph.ByteSource.
type stdinSource struct {
	r *bufio.Reader
}

func (s *stdinSource) ReadByte() (byte, bool) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}
