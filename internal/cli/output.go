package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/quill/internal/presentation/tui"
)

// Printer writes command output either as JSON or as colored text/markdown.
type Printer struct {
	Out      io.Writer
	JSON     bool
	colors   *tui.Colorizer
	markdown func(string) (string, error)
}

// NewPrinter builds a printer for stdout. Colors and markdown styling are used
// only when stdout is a terminal and color is not disabled.
func NewPrinter(out io.Writer, jsonMode, noColor bool) *Printer {
	styled := !noColor && !jsonMode && out == os.Stdout && tui.IsTerminal(os.Stdout)
	return &Printer{
		Out:      out,
		JSON:     jsonMode,
		colors:   tui.NewColorizer(styled),
		markdown: tui.NewRenderer(!styled),
	}
}

// Value prints v as indented JSON.
func (p *Printer) Value(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Line prints a line with debug color tags rendered.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintln(p.Out, p.colors.Render(fmt.Sprintf(format, args...)))
}

// Markdown prints a markdown document, styled when possible.
func (p *Printer) Markdown(doc string) error {
	out, err := p.markdown(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(p.Out, out)
	return err
}
