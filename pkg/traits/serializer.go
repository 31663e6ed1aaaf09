package traits

import (
	"strings"
)

// Placeholder replaces ';' inside property content (U+2011, non-breaking hyphen).
const Placeholder = '\u2011'

// Properties attaches every applicable trait and returns the resulting fragments
// in registration order. Content is returned as produced, without escaping.
func (r *Registry) Properties(instance any) []Property {
	key := KeyOf(instance)
	descriptors := r.Lookup(instance)

	props := make([]Property, 0, len(descriptors))
	for _, d := range descriptors {
		if p, ok := r.attach(d, key, instance); ok {
			props = append(props, p)
		}
	}
	return props
}

// Describe returns the canonical description of instance:
// "[id=content;...]", or "" when no trait applies.
func (r *Registry) Describe(instance any) string {
	desc, _ := r.Explain(instance)
	return desc
}

// Explain is Describe that also returns the fragments the description was
// built from. Every applicable trait is attached exactly once.
func (r *Registry) Explain(instance any) (string, []Property) {
	props := r.Properties(instance)
	if r.observer != nil {
		r.observer.Described(KeyOf(instance), len(props))
	}
	return Format(props), props
}

// Format renders properties in the canonical description format.
func Format(props []Property) string {
	if len(props) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range props {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(p.ID)
		sb.WriteByte('=')
		sb.WriteString(Escape(p.Content))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Escape replaces every ';' in content with Placeholder.
func Escape(content string) string {
	return strings.ReplaceAll(content, ";", string(Placeholder))
}

func (r *Registry) attach(d Descriptor, key TypeKey, instance any) (p Property, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			r.fault(&FaultError{Descriptor: d.Name, Type: key, Phase: PhaseAttach, Cause: panicError(rec)})
		}
	}()

	h, err := d.Attach(instance)
	if err != nil {
		r.fault(&FaultError{Descriptor: d.Name, Type: key, Phase: PhaseAttach, Cause: err})
		return Property{}, false
	}
	if h == nil {
		return Property{}, false
	}
	return Property{ID: h.ID(), Content: h.Content()}, true
}
