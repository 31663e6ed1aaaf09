package script

import (
	"fmt"
	"maps"

	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/ports"
)

// Script is a named, ordered list of command lines.
type Script struct {
	name        string
	debug       bool
	definitions map[string]string
	lines       []string
}

// New creates a script from already split command lines.
func New(name string, lines []string) *Script {
	return &Script{
		name:        name,
		definitions: map[string]string{},
		lines:       append([]string(nil), lines...),
	}
}

// FromDocument builds a script from a loader document.
func FromDocument(doc *ports.ScriptDocument) *Script {
	s := New(doc.Name, doc.Lines)
	s.debug = doc.Debug
	for k, v := range doc.Definitions {
		s.definitions[ports.NormalizeName(k)] = v
	}
	return s
}

func (s *Script) Name() string { return s.name }

func (s *Script) Debug() bool { return s.debug }

// Lines returns a copy of the command lines.
func (s *Script) Lines() []string {
	return append([]string(nil), s.lines...)
}

// Definitions returns a copy of the script's default definitions.
func (s *Script) Definitions() map[string]string {
	return maps.Clone(s.definitions)
}

// NewQueue creates a queue seeded with the script's debug flag and definitions.
// Options are applied afterwards and win.
func (s *Script) NewQueue(opts ...QueueOption) *Queue {
	base := []QueueOption{
		WithDebug(s.debug),
		WithDefinitions(memory.NewDefinitionsFrom(s.definitions)),
	}
	return NewQueue(append(base, opts...)...)
}

// Entries builds one entry per command line, bound to queue.
func (s *Script) Entries(queue *Queue) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(s.lines))
	for i, line := range s.lines {
		e, err := newEntry(queue, s, line)
		if err != nil {
			return nil, fmt.Errorf("script %s line %d: %w", s.name, i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
