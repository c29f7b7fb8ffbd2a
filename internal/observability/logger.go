// Package observability provides a small structured stage logger for the
// model-call orchestration layers.
package observability

import (
	"fmt"
	"io"
	"sync"
)

// Logger records stage-level events (attempt counts, outcomes) from the
// tagging and recommendation orchestrators. It writes human-readable lines
// to a single writer and is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLogger creates a Logger writing to out. A nil out yields a logger
// that discards everything.
func NewLogger(out io.Writer) *Logger {
	return &Logger{out: out}
}

// Event records an outcome for a stage. Attempt is 1-based; pass 0 for
// stages that are not retried.
func (l *Logger) Event(stage string, attempt int, outcome string) {
	if l == nil || l.out == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if attempt > 0 {
		fmt.Fprintf(l.out, "[%s] attempt=%d %s\n", stage, attempt, outcome)
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", stage, outcome)
}

// Eventf records a formatted outcome for a stage without an attempt number.
func (l *Logger) Eventf(stage, format string, args ...any) {
	l.Event(stage, 0, fmt.Sprintf(format, args...))
}
