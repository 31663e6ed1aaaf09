package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/quill/pkg/ports"
)

// Loader implements ports.ScriptLoader using an in-memory map.
type Loader struct {
	scripts map[string]ports.ScriptDocument
}

// NewLoader creates a loader from raw script bodies, one command per line.
func NewLoader(data map[string]string) *Loader {
	scripts := make(map[string]ports.ScriptDocument, len(data))
	for name, body := range data {
		scripts[name] = ports.ScriptDocument{
			Name:  name,
			Lines: ports.SplitLines(body),
		}
	}
	return &Loader{scripts: scripts}
}

// NewFromDocuments creates a loader from already structured documents.
func NewFromDocuments(docs ...ports.ScriptDocument) (*Loader, error) {
	scripts := make(map[string]ports.ScriptDocument, len(docs))
	for _, d := range docs {
		if d.Name == "" {
			return nil, fmt.Errorf("script missing name")
		}
		scripts[d.Name] = d
	}
	return &Loader{scripts: scripts}, nil
}

// Load retrieves a script by name.
func (l *Loader) Load(ctx context.Context, name string) (*ports.ScriptDocument, error) {
	doc, ok := l.scripts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrScriptNotFound, name)
	}
	out := doc
	out.Lines = append([]string(nil), doc.Lines...)
	return &out, nil
}

// List returns all script names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.scripts))
	for k := range l.scripts {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
