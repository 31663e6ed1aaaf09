package traits

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/quill/pkg/diag"
)

// Observer is notified about descriptor faults and finished descriptions.
// Implementations must be safe for concurrent use.
type Observer interface {
	TraitFault(fault *FaultError)
	Described(key TypeKey, fragments int)
}

// Registry maps TypeKeys to their ordered descriptors.
//
// Registration is single-threaded start-up work. The first Lookup (or an explicit
// Freeze) seals the table; from then on Register fails with ErrRegistryFrozen and
// lookups read the table without locking.
type Registry struct {
	mu       sync.Mutex
	table    map[TypeKey][]Descriptor
	frozen   bool
	once     sync.Once
	sink     diag.Sink
	observer Observer
}

// Option configures a Registry.
type Option func(*Registry)

// WithSink routes diagnostics to sink instead of the process default.
func WithSink(sink diag.Sink) Option {
	return func(r *Registry) {
		r.sink = sink
	}
}

// WithObserver attaches an observer (e.g. metrics).
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observer = o
	}
}

// NewRegistry creates an empty, open registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		table: make(map[TypeKey][]Descriptor),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends d to the descriptors of key.
// Registering the same descriptor name twice for a key is allowed: both copies
// contribute, and the duplicate is reported to the sink.
func (r *Registry) Register(d Descriptor, key TypeKey) error {
	if err := d.validate(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: %s has no type key", ErrInvalidDescriptor, d.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register '%s' for %s", ErrRegistryFrozen, d.Name, key)
	}

	for _, existing := range r.table[key] {
		if existing.Name == d.Name {
			r.diagnostics().Error(fmt.Sprintf("trait '%s' registered more than once for %s; every copy will contribute", d.Name, key))
			break
		}
	}
	r.table[key] = append(r.table[key], d)
	return nil
}

// MustRegister is Register for init-time wiring; it panics on error.
func (r *Registry) MustRegister(d Descriptor, key TypeKey) {
	if err := r.Register(d, key); err != nil {
		panic(err)
	}
}

// SetObserver replaces the observer. Only allowed before the registry is frozen.
func (r *Registry) SetObserver(o Observer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}
	r.observer = o
	return nil
}

// Freeze seals the registry. Safe to call more than once.
func (r *Registry) Freeze() {
	r.once.Do(func() {
		r.mu.Lock()
		r.frozen = true
		r.mu.Unlock()
	})
}

// Frozen reports whether registration is closed.
func (r *Registry) Frozen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frozen
}

// Lookup returns, in registration order, the descriptors registered for the
// instance's type whose predicate holds for this instance.
// A panicking predicate is reported and treated as not applicable.
func (r *Registry) Lookup(instance any) []Descriptor {
	r.Freeze()

	key := KeyOf(instance)
	registered := r.table[key]
	out := make([]Descriptor, 0, len(registered))
	for _, d := range registered {
		if r.applies(d, key, instance) {
			out = append(out, d)
		}
	}
	return out
}

// Descriptors returns a copy of the descriptors registered for key.
func (r *Registry) Descriptors(key TypeKey) []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Descriptor(nil), r.table[key]...)
}

// Types returns every TypeKey with at least one descriptor, sorted.
func (r *Registry) Types() []TypeKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]TypeKey, 0, len(r.table))
	for k := range r.table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (r *Registry) applies(d Descriptor, key TypeKey, instance any) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			ok = false
			r.fault(&FaultError{Descriptor: d.Name, Type: key, Phase: PhaseApplies, Cause: panicError(p)})
		}
	}()
	return d.Applies(instance)
}

func (r *Registry) fault(f *FaultError) {
	r.diagnostics().Error(f.Error())
	if r.observer != nil {
		r.observer.TraitFault(f)
	}
}

func (r *Registry) diagnostics() diag.Sink {
	return diag.Or(r.sink)
}

func panicError(p any) error {
	if err, ok := p.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", p)
}
