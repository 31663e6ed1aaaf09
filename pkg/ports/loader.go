package ports

import (
	"context"
	"errors"
	"strings"
)

// ErrScriptNotFound is returned when a loader has no script with the requested name.
var ErrScriptNotFound = errors.New("script not found")

// ScriptDocument is the raw form of a script as stored by a backend.
type ScriptDocument struct {
	Name        string
	Debug       bool
	Definitions map[string]string
	Lines       []string
}

// ScriptLoader defines how scripts are retrieved.
// This allows the storage layer (Loam, Memory) to be decoupled.
type ScriptLoader interface {
	// Load returns the script with the given name or ErrScriptNotFound.
	Load(ctx context.Context, name string) (*ScriptDocument, error)

	// List returns the names of all available scripts.
	List(ctx context.Context) ([]string, error)
}

// SplitLines turns a script body into command lines.
// Blank lines and '#' comments are dropped; a leading "- " list marker is stripped.
func SplitLines(body string) []string {
	raw := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			line = strings.TrimSpace(line[2:])
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
