package tui

import (
	"strings"
	"testing"

	"github.com/aretw0/quill/pkg/args"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	assert.Equal(t, "qty='3'  ", Strip(args.DebugObj("qty", 3)))
	assert.Equal(t, "a <b> c", Strip("a <b> c"))
}

func TestColorizer_Ascii(t *testing.T) {
	c := NewColorizerWithProfile(termenv.Ascii)
	assert.Equal(t, "id='x1(v)'  ", c.Render(args.DebugUniqueObj("id", "x1", "v")))
	assert.Equal(t, "x < y <Q> z", c.Render("x < y <Q> z"))
	assert.Equal(t, "tail<", c.Render("tail<"))
}

func TestColorizer_TrueColor(t *testing.T) {
	c := NewColorizerWithProfile(termenv.TrueColor)
	out := c.Render("plain <G>green")

	assert.True(t, strings.HasPrefix(out, "plain "))
	assert.Contains(t, out, "green")
	assert.Contains(t, out, "\x1b[")
	assert.NotContains(t, out, "<G>")
}

func TestNewRenderer_Plain(t *testing.T) {
	out, err := NewRenderer(true)("# title")
	assert.NoError(t, err)
	assert.Equal(t, "# title", out)
}
