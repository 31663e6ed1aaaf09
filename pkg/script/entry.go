package script

import (
	"errors"
	"strings"

	"github.com/aretw0/quill/pkg/args"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/ports"
)

// ErrEmptyLine is returned when a command line has no tokens.
var ErrEmptyLine = errors.New("command line is empty")

// Entry is one command line bound to its queue.
// Arguments hold a back-reference to the entry; the entry does not own the queue.
type Entry struct {
	line    string
	command string
	args    []*args.Argument
	queue   *Queue
	script  *Script
}

// NewEntry tokenizes line and interprets everything after the command name.
// queue may be nil for a detached entry.
func NewEntry(queue *Queue, line string) (*Entry, error) {
	return newEntry(queue, nil, line)
}

func newEntry(queue *Queue, s *Script, line string) (*Entry, error) {
	e := &Entry{line: line, queue: queue, script: s}

	tokens := args.Tokenize(line)
	if e.ShouldDebug() {
		e.Diagnostics().Log("Constructed args: [" + strings.Join(tokens, ", ") + "]")
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyLine
	}

	e.command = tokens[0]
	e.args = args.Interpret(e, tokens[1:])
	return e, nil
}

// Line returns the command line as written.
func (e *Entry) Line() string { return e.line }

// Command returns the command name (the first token).
func (e *Entry) Command() string { return e.command }

// Args returns the interpreted arguments in order.
func (e *Entry) Args() []*args.Argument {
	return append([]*args.Argument(nil), e.args...)
}

// Arg returns the first argument whose prefix matches one of names, or nil.
func (e *Entry) Arg(names ...string) *args.Argument {
	for _, a := range e.args {
		if a.MatchesPrefix(names...) {
			return a
		}
	}
	return nil
}

// Queue returns the owning queue, or nil.
func (e *Entry) Queue() *Queue { return e.queue }

// Script returns the script the entry was built from, or nil.
func (e *Entry) Script() *Script { return e.script }

// ShouldDebug reports whether the owning queue has debug enabled.
func (e *Entry) ShouldDebug() bool {
	return e.queue != nil && e.queue.debug
}

// Diagnostics implements args.Owner.
func (e *Entry) Diagnostics() diag.Sink {
	if e.queue == nil {
		return diag.Default()
	}
	return e.queue.Diagnostics()
}

// Definitions implements args.Owner. Returns nil for a detached entry.
func (e *Entry) Definitions() ports.DefinitionProvider {
	if e.queue == nil {
		return nil
	}
	return e.queue.definitions
}

// Debuggable renders the entry for debug output.
func (e *Entry) Debuggable() string {
	return args.DebugObj("command", e.command) + args.DebugList("args", e.args)
}
