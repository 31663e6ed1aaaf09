package ports

import "golang.org/x/text/cases"

// DefinitionProvider is the named-variable capability handed to evaluation.
// Names are case-insensitive; implementations fold them with NormalizeName.
// Values are the canonical textual form of the stored object.
type DefinitionProvider interface {
	// Get returns the value bound to name and whether it exists.
	Get(name string) (string, bool)

	// Set binds value to name, replacing any previous value.
	Set(name, value string)

	// Has reports whether name is bound.
	Has(name string) bool

	// Remove unbinds name. Removing a missing name is a no-op.
	Remove(name string)

	// All returns a snapshot of every binding, keyed by normalized name.
	All() map[string]string
}

// NormalizeName folds a definition name so lookups ignore case.
func NormalizeName(name string) string {
	// cases.Caser is stateful, so one per call.
	return cases.Fold().String(name)
}
