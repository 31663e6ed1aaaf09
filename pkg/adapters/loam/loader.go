package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/record"
)

// Loader adapts a Loam repository to the ports.ScriptLoader interface.
// Each document is one script: frontmatter carries the metadata, the body
// holds one command line per line.
type Loader struct {
	Repo *loam.TypedRepository[ScriptMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ScriptMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only repository rooted at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve script dir: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithVersioning(false),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open scripts at %s: %w", absPath, err)
	}
	return New(loam.NewTypedRepository[ScriptMetadata](repo)), nil
}

// Load implements ports.ScriptLoader.
func (l *Loader) Load(ctx context.Context, name string) (*ports.ScriptDocument, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	docID, ok := index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrScriptNotFound, name)
	}

	doc, err := l.Repo.Get(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	meta := doc.Data
	lines := make([]string, 0, len(meta.Script))
	for _, line := range meta.Script {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	lines = append(lines, ports.SplitLines(doc.Content)...)

	defs := make(map[string]string, len(meta.Definitions))
	for k, v := range meta.Definitions {
		defs[k] = record.FormatValue(v)
	}

	return &ports.ScriptDocument{
		Name:        name,
		Debug:       meta.Debug,
		Definitions: defs,
		Lines:       lines,
	}, nil
}

// List implements ports.ScriptLoader. Names are sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// index maps script names to Loam document ids.
func (l *Loader) index(ctx context.Context) (map[string]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	index := make(map[string]string, len(docs))
	for _, doc := range docs {
		name := doc.Data.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}
		if existing, ok := index[name]; ok {
			return nil, fmt.Errorf("collision detected: script '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		index[name] = doc.ID
	}
	return index, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
