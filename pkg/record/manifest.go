package record

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/aretw0/quill/pkg/traits"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest is returned for manifests that can't be registered.
var ErrInvalidManifest = errors.New("invalid trait manifest")

// When controls when a manifest trait applies to a record.
type When string

const (
	// WhenPresent applies when the field is set, even to an empty value.
	WhenPresent When = "present"
	// WhenNonEmpty applies when the field is set and formats to a non-empty string.
	WhenNonEmpty When = "nonempty"
	// WhenAlways applies to every record of the kind, using Default for missing fields.
	WhenAlways When = "always"
)

// TraitSpec is one property exposed for a kind.
type TraitSpec struct {
	ID      string `yaml:"id" mapstructure:"id"`
	Field   string `yaml:"field" mapstructure:"field"`
	When    When   `yaml:"when" mapstructure:"when"`
	Default string `yaml:"default" mapstructure:"default"`
}

// KindSpec lists the traits of one record kind, in description order.
type KindSpec struct {
	Traits []TraitSpec `yaml:"traits" mapstructure:"traits"`
}

// Manifest maps record kinds to their traits.
type Manifest struct {
	Kinds map[string]KindSpec `yaml:"kinds" mapstructure:"kinds"`
}

//go:embed default.yaml
var defaultManifest []byte

// DefaultManifest returns the built-in manifest for the item and entity kinds.
func DefaultManifest() *Manifest {
	m, err := ParseManifest(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("record: built-in manifest is invalid: %v", err))
	}
	return m
}

// LoadManifest reads a YAML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	var m Manifest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &m,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	for kind, spec := range m.Kinds {
		if kind == "" {
			return fmt.Errorf("%w: empty kind name", ErrInvalidManifest)
		}
		for i := range spec.Traits {
			t := &spec.Traits[i]
			if t.ID == "" {
				return fmt.Errorf("%w: %s trait %d has no id", ErrInvalidManifest, kind, i)
			}
			if t.Field == "" {
				t.Field = t.ID
			}
			switch t.When {
			case "":
				t.When = WhenPresent
			case WhenPresent, WhenNonEmpty, WhenAlways:
			default:
				return fmt.Errorf("%w: %s.%s has unknown condition %q", ErrInvalidManifest, kind, t.ID, t.When)
			}
		}
	}
	return nil
}

// KindNames returns the manifest kinds, sorted.
func (m *Manifest) KindNames() []string {
	names := make([]string, 0, len(m.Kinds))
	for k := range m.Kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Register adds one descriptor per manifest trait to reg, kind by kind in sorted
// order and trait by trait in manifest order.
func (m *Manifest) Register(reg *traits.Registry) error {
	for _, kind := range m.KindNames() {
		key := KeyFor(kind)
		for _, spec := range m.Kinds[kind].Traits {
			if err := reg.Register(descriptor(kind, spec), key); err != nil {
				return fmt.Errorf("failed to register %s.%s: %w", kind, spec.ID, err)
			}
		}
	}
	return nil
}

func descriptor(kind string, spec TraitSpec) traits.Descriptor {
	return traits.For(kind+"."+spec.ID,
		func(r *Record) bool {
			v, ok := r.Field(spec.Field)
			switch spec.When {
			case WhenAlways:
				return true
			case WhenNonEmpty:
				return ok && v != ""
			default:
				return ok
			}
		},
		func(r *Record) (traits.Handle, error) {
			v, ok := r.Field(spec.Field)
			if !ok {
				v = spec.Default
			}
			return traits.Static(spec.ID, v), nil
		},
	)
}
