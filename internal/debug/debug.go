// Package debug provides opt-in diagnostic logging for the analyzer pipeline.
//
// Output is silent by default; --verbose wires a writer via SetOutput so a
// single run's worker goroutines can log through one mutex-guarded sink.
package debug

import (
	"fmt"
	"io"
	"sync"
)

var (
	mu     sync.Mutex
	output io.Writer
)

// SetOutput sets the writer debug output is sent to. Pass nil to silence it.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether a debug sink is currently configured.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return output != nil
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Printf writes a formatted debug line, a no-op when no sink is configured.
func Printf(format string, args ...interface{}) {
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[debug] "+format+"\n", args...)
}

// Log writes a component-tagged debug line.
func Log(component, format string, args ...interface{}) {
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[debug:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}
