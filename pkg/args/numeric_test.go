package args

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"3.1", true},
		{"42", true},
		{"-7", true},
		{"+7.25", true},
		{"1.", true},
		{"1e-3", true},
		{"2E+10", true},
		{"1.5e-3", true},
		{"1e", false},
		{"1e-", false},
		{"1e3", false},
		{"1e-3.5", false},
		{"1e-3e-2", false},
		{"1e+x", false},
		{"1.2.3", false},
		{".5", false},
		{"", false},
		{"abc", false},
		{"-", false},
		{"+.", false},
		{"5-", false},
		{"--5", false},
		{"12a", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDecimal(tt.in))
		})
	}
}

func TestIsInteger(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"42", true},
		{"-42", true},
		{"+0", true},
		{"3.1", false},
		{"1e-3", false},
		{"", false},
		{"abc", false},
		{"-", false},
		{"4-2", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInteger(tt.in))
		})
	}
}

func TestClassifier_DoesNotAllocate(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		_ = IsDecimal("-123.456e+7")
		_ = IsInteger("-123456")
	})
	assert.Zero(t, allocs)
}
