package server

import (
	"bytes"
	"strings"

	"github.com/chazu/lazyk/graph"
	"github.com/chazu/lazyk/parser"
)

// syntaxFailure is the panic value SetExitFunc's installed hook raises in
// place of terminating the process; checkSyntax recovers it.
type syntaxFailure struct{}

type parseRequest struct {
	text string
	done chan string // diagnostic message, "" if the source parsed cleanly
}

// Worker serializes all access to a shared graph.Heap onto one goroutine:
// Heap mutates shared arena state in place and is not safe for concurrent
// use by multiple in-flight LSP requests.
type Worker struct {
	heap     *graph.Heap
	requests chan parseRequest
	quit     chan struct{}
}

// NewWorker starts a Worker over h and returns it.
func NewWorker(h *graph.Heap) *Worker {
	w := &Worker{
		heap:     h,
		requests: make(chan parseRequest, 64),
		quit:     make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	for {
		select {
		case req := <-w.requests:
			req.done <- w.checkSyntax(req.text)
		case <-w.quit:
			return
		}
	}
}

// Diagnose submits text for a syntax check and blocks until it completes,
// returning a human-readable diagnostic message, or "" if text parses
// cleanly.
func (w *Worker) Diagnose(text string) string {
	req := parseRequest{text: text, done: make(chan string, 1)}
	w.requests <- req
	return <-req.done
}

// Stop shuts down the worker goroutine.
func (w *Worker) Stop() {
	close(w.quit)
}

// checkSyntax parses text into w.heap purely to observe whether it
// succeeds. The parsed expression is never rooted, so once parsing
// returns it is ordinary garbage: the next Check-triggered collection on
// the shared heap reclaims it without any special cleanup here.
func (w *Worker) checkSyntax(text string) string {
	var buf bytes.Buffer
	restoreErr := parser.SetErrWriter(&buf)
	defer restoreErr()

	restoreExit := parser.SetExitFunc(func(int) { panic(syntaxFailure{}) })
	defer restoreExit()

	diagnostic := ""
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(syntaxFailure); ok {
					diagnostic = strings.TrimRight(buf.String(), "\n")
					return
				}
				panic(r)
			}
		}()
		src := parser.NewSource(strings.NewReader(text), "document")
		parser.New(w.heap).ParseProgram(src)
	}()
	return diagnostic
}
