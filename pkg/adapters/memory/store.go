package memory

import (
	"sync"

	"github.com/aretw0/quill/pkg/ports"
)

// Definitions implements ports.DefinitionProvider in memory.
// Safe for concurrent use.
type Definitions struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewDefinitions creates an empty in-memory provider.
func NewDefinitions() *Definitions {
	return &Definitions{
		data: make(map[string]string),
	}
}

// NewDefinitionsFrom creates a provider seeded with initial bindings.
func NewDefinitionsFrom(initial map[string]string) *Definitions {
	d := NewDefinitions()
	for k, v := range initial {
		d.data[ports.NormalizeName(k)] = v
	}
	return d
}

// Get returns the value bound to name.
func (d *Definitions) Get(name string) (string, bool) {
	key := ports.NormalizeName(name)

	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.data[key]
	return v, ok
}

// Set binds value to name.
func (d *Definitions) Set(name, value string) {
	key := ports.NormalizeName(name)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.data[key] = value
}

// Has reports whether name is bound.
func (d *Definitions) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Remove unbinds name.
func (d *Definitions) Remove(name string) {
	key := ports.NormalizeName(name)

	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.data, key)
}

// All returns a copy of every binding so callers can't mutate the store.
func (d *Definitions) All() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]string, len(d.data))
	for k, v := range d.data {
		out[k] = v
	}
	return out
}
