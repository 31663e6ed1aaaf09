package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"list markers", "- narrate hi\n- wait 1s", []string{"narrate hi", "wait 1s"}},
		{"comments and blanks", "# header\n\n- narrate hi\n   \n", []string{"narrate hi"}},
		{"crlf", "narrate a\r\nnarrate b", []string{"narrate a", "narrate b"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.body))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "player_name", NormalizeName("Player_NAME"))
	assert.Equal(t, NormalizeName("Queue"), NormalizeName("QUEUE"))
}
