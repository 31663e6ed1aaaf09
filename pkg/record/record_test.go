package record_test

import (
	"testing"

	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/record"
	"github.com/aretw0/quill/pkg/traits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, m *record.Manifest) (*traits.Registry, *diag.Recorder) {
	t.Helper()
	rec := diag.NewRecorder()
	reg := traits.NewRegistry(traits.WithSink(rec))
	require.NoError(t, m.Register(reg))
	return reg, rec
}

func TestParse(t *testing.T) {
	records, err := record.Parse([]byte(`
- kind: item
  id: sword-1
  fields:
    material: diamond_sword
    quantity: 1
    lore: [sharp, "old; rusty"]
- kind: entity
  id: e-7
`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "item", records[0].Kind)
	assert.Equal(t, "sword-1", records[0].ID)
	v, ok := records[0].Field("lore")
	require.True(t, ok)
	assert.Equal(t, "sharp|old; rusty", v)
	assert.Equal(t, "entity@e-7", records[1].Identity())
}

func TestParse_SingleAndEmpty(t *testing.T) {
	records, err := record.Parse([]byte(`{"kind": "item", "id": "x"}`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = record.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_Invalid(t *testing.T) {
	_, err := record.Parse([]byte(`- id: no-kind`))
	assert.ErrorIs(t, err, record.ErrInvalidRecord)

	_, err = record.Parse([]byte(`- kind: item`))
	assert.ErrorIs(t, err, record.ErrInvalidRecord)

	_, err = record.Parse([]byte(`kind: [unclosed`))
	assert.Error(t, err)

	_, err = record.Parse([]byte("kind: item\nid: sword\nfeilds:\n  material: iron\n"))
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
	assert.Contains(t, err.Error(), "feilds")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{true, "true"},
		{42, "42"},
		{int64(-7), "-7"},
		{2.5, "2.5"},
		{[]any{"a", 1, nil}, "a|1|"},
		{[]string{"x", "y"}, "x|y"},
		{map[string]any{"sharpness": 5, "fire": 2}, "fire=2|sharpness=5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, record.FormatValue(tt.in), "%v", tt.in)
	}
}

func TestTraitType(t *testing.T) {
	r := &record.Record{Kind: "Item", ID: "1"}
	assert.Equal(t, traits.TypeKey("record/item"), traits.KeyOf(r))

	var missing *record.Record
	assert.Equal(t, traits.TypeKey(""), missing.TraitType())
}

func TestDefaultManifest_DescribesItems(t *testing.T) {
	reg, rec := newRegistry(t, record.DefaultManifest())

	item := &record.Record{Kind: "item", ID: "sword-1", Fields: map[string]any{
		"material":     "diamond_sword",
		"quantity":     3,
		"lore":         []any{"line one", "two; three"},
		"display_name": "",
	}}

	assert.Equal(t, "[material=diamond_sword;quantity=3;lore=line one|two\u2011 three]", reg.Describe(item))
	assert.Equal(t, "item@sword-1[material=diamond_sword;quantity=3;lore=line one|two\u2011 three]", item.Identify(reg))
	assert.Empty(t, rec.Errors())
}

func TestDefaultManifest_AlwaysUsesDefault(t *testing.T) {
	reg, _ := newRegistry(t, record.DefaultManifest())

	assert.Equal(t, "[material=air]", reg.Describe(&record.Record{Kind: "item", ID: "empty"}))
	assert.Equal(t, "[type=unknown;health=]", reg.Describe(&record.Record{Kind: "entity", ID: "e", Fields: map[string]any{"health": nil}}))
	assert.Equal(t, "", reg.Describe(&record.Record{Kind: "block", ID: "b"}))
}

func TestParseManifest(t *testing.T) {
	m, err := record.ParseManifest([]byte(`
kinds:
  note:
    traits:
      - id: title
      - id: body
        field: text
        when: nonempty
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"note"}, m.KindNames())

	title := m.Kinds["note"].Traits[0]
	assert.Equal(t, "title", title.Field, "field defaults to id")
	assert.Equal(t, record.WhenPresent, title.When)

	reg, _ := newRegistry(t, m)
	n := &record.Record{Kind: "note", ID: "n1", Fields: map[string]any{"title": "a;b", "text": ""}}
	assert.Equal(t, "[title=a\u2011b]", reg.Describe(n))
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing id":   "kinds:\n  note:\n    traits:\n      - field: x\n",
		"bad when":     "kinds:\n  note:\n    traits:\n      - id: x\n        when: sometimes\n",
		"unknown key":  "kinds:\n  note:\n    traits:\n      - id: x\n        colour: red\n",
		"not a map":    "- just\n- a list\n",
		"wrong shapes": "kinds: 3\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := record.ParseManifest([]byte(doc))
			assert.ErrorIs(t, err, record.ErrInvalidManifest)
		})
	}
}

func TestManifest_RegisterAfterFreeze(t *testing.T) {
	reg := traits.NewRegistry(traits.WithSink(diag.Nop()))
	reg.Freeze()
	err := record.DefaultManifest().Register(reg)
	assert.ErrorIs(t, err, traits.ErrRegistryFrozen)
}
