// Package trace implements the section-bracketed debug logging the
// original C++ core did with DBG_SECTION_BEGIN/DBG_SECTION_END around
// performLvn, performGvn, and findAllReachingDefinitions, in the style
// of the teacher's own debugf-gated-by-a-const-bool pattern
// (honnef.co/go/tools/go/ir/dfa.go) and its debug package
// (honnef.co/go/tools/debug).
//
// Unlike the teacher's compile-time debugging const, verbosity here is
// a runtime switch (config.Config.Trace) so that a single built binary
// can enable tracing for one troublesome input without a rebuild.
package trace

import (
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// Logger is a nil-safe tracer: a nil *Logger makes every method a
// no-op, so hot paths that thread a *Logger through need not branch on
// whether tracing is enabled.
type Logger struct {
	out *log.Logger
}

// New returns a Logger that writes through out. Passing nil disables
// tracing.
func New(out *log.Logger) *Logger {
	if out == nil {
		return nil
	}
	return &Logger{out: out}
}

// FromConfig returns a Logger writing to stderr when enabled is true,
// or nil (tracing disabled) otherwise — the runtime-switch counterpart
// of the teacher's compile-time debugging const, driven by
// config.Config.Trace.
func FromConfig(enabled bool) *Logger {
	if !enabled {
		return nil
	}
	return New(log.New(os.Stderr, "memssa: ", log.LstdFlags))
}

// Section logs name and returns a closer to log name's completion,
// mirroring DBG_SECTION_BEGIN(dda, name) / DBG_SECTION_END(dda, name)
// from the original core. Safe to call on a nil *Logger.
func (l *Logger) Section(name string) func() {
	if l == nil {
		return func() {}
	}
	l.out.Printf("%s: starting", name)
	return func() { l.out.Printf("%s: finished", name) }
}

// Printf logs a formatted trace line. Safe to call on a nil *Logger.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.out.Printf(format, args...)
}

// Dump renders v with github.com/davecgh/go-spew, for logging the
// shape of a PHI's Defuse set or a DefinitionsMap's buckets — the role
// spew plays for other debug-dump facilities in the retrieval corpus.
// Safe to call on a nil *Logger (logs nothing).
func (l *Logger) Dump(label string, v any) {
	if l == nil {
		return
	}
	l.out.Printf("%s:\n%s", label, spew.Sdump(v))
}
