package record

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/quill/pkg/traits"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRecord is returned for records without a kind or id.
var ErrInvalidRecord = errors.New("invalid record")

// Record is a host object of a manifest-defined kind.
// Records are described by pointer.
type Record struct {
	Kind   string         `json:"kind" yaml:"kind" mapstructure:"kind"`
	ID     string         `json:"id" yaml:"id" mapstructure:"id"`
	Fields map[string]any `json:"fields,omitempty" yaml:"fields" mapstructure:"fields"`
}

// KeyFor returns the trait TypeKey used for records of kind.
func KeyFor(kind string) traits.TypeKey {
	return traits.TypeKey("record/" + strings.ToLower(kind))
}

// TraitType implements traits.Typed.
func (r *Record) TraitType() traits.TypeKey {
	if r == nil {
		return ""
	}
	return KeyFor(r.Kind)
}

// Identity returns "kind@id".
func (r *Record) Identity() string {
	return strings.ToLower(r.Kind) + "@" + r.ID
}

// Identify returns the identity followed by the record's description in reg.
// A nil registry uses the process-wide one.
func (r *Record) Identify(reg *traits.Registry) string {
	if reg == nil {
		reg = traits.Default()
	}
	return r.Identity() + reg.Describe(r)
}

// Field returns the formatted value of a field and whether it is set.
func (r *Record) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	if !ok {
		return "", false
	}
	return FormatValue(v), true
}

func (r *Record) validate() error {
	if r.Kind == "" {
		return fmt.Errorf("%w: missing kind", ErrInvalidRecord)
	}
	if r.ID == "" {
		return fmt.Errorf("%w: %s has no id", ErrInvalidRecord, r.Kind)
	}
	return nil
}

// Parse decodes one record or a list of records from YAML (JSON is accepted too).
func Parse(data []byte) ([]*Record, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}

	var items []any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		items = v
	default:
		items = []any{v}
	}

	records := make([]*Record, 0, len(items))
	for i, item := range items {
		var r Record
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused: true,
			Result:      &r,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(item); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, &r)
	}
	return records, nil
}

// FormatValue renders a field value as property content.
// Lists are joined with '|'; maps become sorted key=value pairs joined with '|'.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, "|")
	case []string:
		return strings.Join(val, "|")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+FormatValue(val[k]))
		}
		return strings.Join(parts, "|")
	default:
		return fmt.Sprint(val)
	}
}
