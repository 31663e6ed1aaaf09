package tui

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// tagColors maps debug color tags to hex colors.
var tagColors = map[string]string{
	"<G>": "#22c55e",
	"<Y>": "#facc15",
	"<A>": "#22d3ee",
	"<R>": "#ef4444",
	"<W>": "#e5e7eb",
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Colorizer turns debug color tags into terminal colors.
type Colorizer struct {
	profile termenv.Profile
}

// NewColorizer picks the color profile of the current terminal.
// Without a terminal (or with color disabled) tags are stripped.
func NewColorizer(color bool) *Colorizer {
	if !color || !IsTerminal(os.Stdout) {
		return &Colorizer{profile: termenv.Ascii}
	}
	return &Colorizer{profile: termenv.ColorProfile()}
}

// NewColorizerWithProfile is used by tests and callers that know the profile.
func NewColorizerWithProfile(p termenv.Profile) *Colorizer {
	return &Colorizer{profile: p}
}

// Render replaces every color tag in s. Text before the first tag is uncolored;
// each tag colors the text up to the next tag. Unknown tags are left as text.
func (c *Colorizer) Render(s string) string {
	var sb strings.Builder
	color := ""
	flush := func(segment string) {
		if segment == "" {
			return
		}
		if color == "" || c.profile == termenv.Ascii {
			sb.WriteString(segment)
			return
		}
		sb.WriteString(termenv.String(segment).Foreground(c.profile.Color(color)).String())
	}

	for {
		i := strings.IndexByte(s, '<')
		if i < 0 || i+3 > len(s) {
			flush(s)
			break
		}
		hex, ok := tagColors[s[i:i+3]]
		if !ok {
			flush(s[:i+1])
			s = s[i+1:]
			continue
		}
		flush(s[:i])
		color = hex
		s = s[i+3:]
	}
	return sb.String()
}

// Strip removes every known color tag from s.
func Strip(s string) string {
	for tag := range tagColors {
		s = strings.ReplaceAll(s, tag, "")
	}
	return s
}
