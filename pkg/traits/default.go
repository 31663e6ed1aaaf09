package traits

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Trait modules register into it from
// init functions; it freezes at the first lookup.
func Default() *Registry {
	return defaultRegistry
}

// Register adds d to the process-wide registry.
func Register(d Descriptor, key TypeKey) error {
	return defaultRegistry.Register(d, key)
}

// MustRegister adds d to the process-wide registry and panics on error.
func MustRegister(d Descriptor, key TypeKey) {
	defaultRegistry.MustRegister(d, key)
}

// Lookup queries the process-wide registry.
func Lookup(instance any) []Descriptor {
	return defaultRegistry.Lookup(instance)
}

// Describe describes instance with the process-wide registry.
func Describe(instance any) string {
	return defaultRegistry.Describe(instance)
}
