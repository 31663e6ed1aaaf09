package args

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "a b c", []string{"a", "b", "c"}},
		{"double quoted keeps spaces", `"a b" c`, []string{"a b", "c"}},
		{"single quoted", `narrate 'hello there' now`, []string{"narrate", "hello there", "now"}},
		{"empty", "", []string{}},
		{"blank", "   \t ", []string{}},
		{"apostrophe inside word", "it's fine", []string{"it's", "fine"}},
		{"consecutive spaces", "a    b", []string{"a", "b"}},
		{"trimmed", "  a b  ", []string{"a", "b"}},
		{"line breaks become spaces", "a\r\nb\nc", []string{"a", "b", "c"}},
		{"empty quoted token", `"" x`, []string{"", "x"}},
		{"empty quoted token at end", `x ''`, []string{"x", ""}},
		{"quote not followed by space stays literal", `"b"c d"`, []string{`b"c d`}},
		{"other quote inside quotes", `"it's here" x`, []string{"it's here", "x"}},
		{"quote after text is literal", `key:"a b"`, []string{`key:"a`, `b"`}},
		{"unterminated quote", `say "hello world`, []string{"say", "hello world"}},
		{"quote at end alone", `a "`, []string{"a"}},
		{"prefixed values", "duration:5s target:<player>", []string{"duration:5s", "target:<player>"}},
		{"unicode", `narrate "héllo wörld" ünï`, []string{"narrate", "héllo wörld", "ünï"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeOptional(t *testing.T) {
	assert.Nil(t, TokenizeOptional(nil), "absent input passes through")

	line := "a 'b c'"
	assert.Equal(t, []string{"a", "b c"}, TokenizeOptional(&line))

	empty := ""
	got := TokenizeOptional(&empty)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTokenize_NoEmptyTokensOutsideQuotes(t *testing.T) {
	for _, tok := range Tokenize("  one   two    three  ") {
		assert.NotEmpty(t, tok)
	}
}

func BenchmarkTokenize(b *testing.B) {
	line := `narrate "a long quoted message with spaces" targets:<server.online_players> format:fmt it's 'single quoted'`
	for i := 0; i < b.N; i++ {
		_ = Tokenize(line)
	}
}
