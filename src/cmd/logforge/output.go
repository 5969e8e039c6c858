// FILE: logforge/src/cmd/logforge/output.go
package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Manages operator-facing output respecting quiet mode. Generated log
// lines are not routed through here; they belong to the sink.
type outputHandler struct {
	quiet  bool
	mu     sync.RWMutex
	stdout io.Writer
	stderr io.Writer
}

var output *outputHandler

func initOutputHandler(quiet bool) {
	output = &outputHandler{
		quiet:  quiet,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Writes to stdout if not in quiet mode
func printOut(format string, args ...any) {
	output.mu.RLock()
	defer output.mu.RUnlock()

	if !output.quiet {
		fmt.Fprintf(output.stdout, format, args...)
	}
}

// Writes to stderr if not in quiet mode
func printErr(format string, args ...any) {
	output.mu.RLock()
	defer output.mu.RUnlock()

	if !output.quiet {
		fmt.Fprintf(output.stderr, format, args...)
	}
}

// Writes to stderr and exits (respects quiet mode)
func fatalError(code int, format string, args ...any) {
	printErr(format, args...)
	os.Exit(code)
}
