package quill

import (
	"fmt"
	"strings"

	"github.com/aretw0/quill/pkg/script"
)

// Report is the interpretation of a whole script.
type Report struct {
	Script  string        `json:"script"`
	Queue   string        `json:"queue"`
	Debug   bool          `json:"debug"`
	Entries []EntryReport `json:"entries"`
}

// EntryReport describes one interpreted command line.
type EntryReport struct {
	Line    string           `json:"line"`
	Command string           `json:"command"`
	Args    []ArgumentReport `json:"args"`
	// Debug is the color-tagged debug rendering of the entry.
	Debug string `json:"-"`
}

// ArgumentReport describes one argument of an entry.
type ArgumentReport struct {
	Raw        string `json:"raw"`
	Prefix     string `json:"prefix,omitempty"`
	Value      string `json:"value"`
	Definition string `json:"definition,omitempty"`
}

func newEntryReport(e *script.Entry) EntryReport {
	r := EntryReport{
		Line:    e.Line(),
		Command: e.Command(),
		Debug:   e.Debuggable(),
	}
	for _, a := range e.Args() {
		ar := ArgumentReport{Raw: a.Raw(), Prefix: a.Prefix(), Value: a.Value()}
		if name, ok := definitionRef(a.Value()); ok {
			ar.Definition, _ = a.Definition(name)
		}
		r.Args = append(r.Args, ar)
	}
	return r
}

// definitionRef extracts name from a "<[name]>" reference.
func definitionRef(value string) (string, bool) {
	if strings.HasPrefix(value, "<[") && strings.HasSuffix(value, "]>") && len(value) > 4 {
		return value[2 : len(value)-2], true
	}
	return "", false
}

// Markdown renders the report as a markdown document.
func (r *Report) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Script `%s`\n\nQueue `%s`, %d entries.\n\n", r.Script, r.Queue, len(r.Entries))
	sb.WriteString("| # | Command | Arguments |\n|---|---------|-----------|\n")
	for i, e := range r.Entries {
		parts := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			s := "`" + a.Raw + "`"
			if a.Definition != "" {
				s += " = `" + a.Definition + "`"
			}
			parts = append(parts, s)
		}
		fmt.Fprintf(&sb, "| %d | `%s` | %s |\n", i+1, e.Command, strings.Join(parts, ", "))
	}
	return sb.String()
}
