package args

import (
	"strings"

	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/ports"
	"golang.org/x/text/cases"
)

// Owner is the command entry an Argument was interpreted for.
// The argument only borrows it: diagnostics and definitions are resolved through it.
type Owner interface {
	Diagnostics() diag.Sink
	Definitions() ports.DefinitionProvider
}

// Argument is one interpreted token. It is immutable after construction.
type Argument struct {
	raw       string
	prefix    string
	value     string
	hasPrefix bool
	owner     Owner
}

// New wraps a raw token that belongs to no command entry.
func New(raw string) *Argument {
	return newArgument(raw, nil)
}

// Interpret wraps every token into an Argument bound to owner.
// owner may be nil.
func Interpret(owner Owner, tokens []string) []*Argument {
	out := make([]*Argument, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, newArgument(t, owner))
	}
	return out
}

func newArgument(raw string, owner Owner) *Argument {
	a := &Argument{raw: raw, value: raw, owner: owner}
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		a.prefix = raw[:i]
		a.value = raw[i+1:]
		a.hasPrefix = true
	}
	return a
}

// ValueOf returns the value portion of a raw "prefix:value" token.
func ValueOf(raw string) string {
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

// Raw returns the token exactly as it was tokenized.
func (a *Argument) Raw() string { return a.raw }

// Prefix returns the text before the first colon, or "" when there is none.
func (a *Argument) Prefix() string { return a.prefix }

// HasPrefix reports whether the token contained a colon.
func (a *Argument) HasPrefix() bool { return a.hasPrefix }

// Value returns the text after the first colon, or the whole token.
func (a *Argument) Value() string { return a.value }

// Owner returns the entry this argument was interpreted for, or nil.
func (a *Argument) Owner() Owner { return a.owner }

func (a *Argument) String() string { return a.raw }

// MatchesPrefix reports whether the prefix equals any of names, ignoring case.
func (a *Argument) MatchesPrefix(names ...string) bool {
	if !a.hasPrefix {
		return false
	}
	p := fold(a.prefix)
	for _, name := range names {
		if fold(name) == p {
			return true
		}
	}
	return false
}

// MatchesOneOf reports whether the value equals any of values, ignoring case.
func (a *Argument) MatchesOneOf(values ...string) bool {
	v := fold(a.value)
	for _, candidate := range values {
		if fold(candidate) == v {
			return true
		}
	}
	return false
}

// MatchesInteger reports whether the value is integer-shaped.
func (a *Argument) MatchesInteger() bool { return IsInteger(a.value) }

// MatchesDecimal reports whether the value is decimal-shaped.
func (a *Argument) MatchesDecimal() bool { return IsDecimal(a.value) }

// MatchesBoolean reports whether the value is "true" or "false" in any case.
func (a *Argument) MatchesBoolean() bool {
	return strings.EqualFold(a.value, "true") || strings.EqualFold(a.value, "false")
}

// Definition resolves name through the owning entry's definitions.
func (a *Argument) Definition(name string) (string, bool) {
	if a.owner == nil {
		return "", false
	}
	defs := a.owner.Definitions()
	if defs == nil {
		return "", false
	}
	return defs.Get(name)
}

func (a *Argument) sink() diag.Sink {
	if a.owner != nil {
		return diag.Or(a.owner.Diagnostics())
	}
	return diag.Default()
}

func fold(s string) string {
	return cases.Fold().String(s)
}
