package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the quill banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                _ _ _ ", "#818cf8"},
		{"   __ _ _   _(_) | |", "#a78bfa"},
		{"  / _` | | | | | | |", "#c084fc"},
		{" | (_| | |_| | | | |", "#e879f9"},
		{"  \\__, |\\__,_|_|_|_|", "#f472b6"},
		{"     |_|            ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
