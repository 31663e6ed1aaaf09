// Package tagctx carries the evaluation state handed to tag and definition lookups.
package tagctx

import (
	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/script"
)

// Context is the state of one evaluation. Entry and Script are optional and not owned.
type Context struct {
	debug       bool
	entry       *script.Entry
	script      *script.Script
	definitions ports.DefinitionProvider
}

// New creates a context. The definitions provider is, in order: provider when
// non-nil, the entry's queue provider, or a fresh in-memory provider.
func New(debug bool, entry *script.Entry, s *script.Script, provider ports.DefinitionProvider) *Context {
	if provider == nil && entry != nil {
		provider = entry.Definitions()
	}
	if provider == nil {
		provider = memory.NewDefinitions()
	}
	return &Context{
		debug:       debug,
		entry:       entry,
		script:      s,
		definitions: provider,
	}
}

// ForEntry is New with the entry's debug flag and script.
func ForEntry(entry *script.Entry) *Context {
	return New(entry.ShouldDebug(), entry, entry.Script(), nil)
}

// ShouldDebug reports whether evaluation in this context is debugged.
func (c *Context) ShouldDebug() bool { return c.debug }

func (c *Context) Entry() *script.Entry { return c.entry }

func (c *Context) Script() *script.Script { return c.script }

// Definitions never returns nil.
func (c *Context) Definitions() ports.DefinitionProvider { return c.definitions }

// Definition resolves name through the context provider.
func (c *Context) Definition(name string) (string, bool) {
	return c.definitions.Get(name)
}

// Diagnostics returns the entry's sink, or the process default.
func (c *Context) Diagnostics() diag.Sink {
	if c.entry != nil {
		return c.entry.Diagnostics()
	}
	return diag.Default()
}
