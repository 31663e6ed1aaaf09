package quill_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/observability"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/record"
	"github.com/aretw0/quill/pkg/traits"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...quill.Option) (*quill.Engine, *diag.Recorder) {
	t.Helper()
	rec := diag.NewRecorder()
	eng, err := quill.New(append([]quill.Option{quill.WithSink(rec)}, opts...)...)
	require.NoError(t, err)
	return eng, rec
}

func TestEngine_TokenizeAndClassify(t *testing.T) {
	eng, _ := newEngine(t)

	assert.Equal(t, []string{"give", "diamond sword", "qty:3"}, eng.Tokenize(`give "diamond sword" qty:3`))
	assert.Equal(t, []string{}, eng.Tokenize(""))

	c := eng.Classify("qty:-3")
	assert.Equal(t, quill.Classification{Raw: "qty:-3", Prefix: "qty", HasPrefix: true, Value: "-3", Decimal: true, Integer: true}, c)
	assert.True(t, eng.Classify("TRUE").Boolean)
	assert.False(t, eng.Classify("1.5").Integer)
}

func TestEngine_DescribeWithDefaultManifest(t *testing.T) {
	eng, rec := newEngine(t)
	r := &record.Record{Kind: "item", ID: "i1", Fields: map[string]any{"material": "stone", "quantity": 64}}

	d := eng.Describe(r)
	assert.Equal(t, "item@i1", d.Identity)
	assert.Equal(t, "[material=stone;quantity=64]", d.Description)
	assert.Equal(t, []traits.Property{{ID: "material", Content: "stone"}, {ID: "quantity", Content: "64"}}, d.Properties)
	assert.Empty(t, rec.Errors())
	assert.True(t, eng.Registry().Frozen())
}

func TestEngine_DescribeRunsEachTraitOnce(t *testing.T) {
	rec := diag.NewRecorder()
	metrics := observability.NewMetrics()
	reg := traits.NewRegistry(traits.WithSink(rec), traits.WithObserver(metrics))

	attached := 0
	a := traits.For("item.a", func(*record.Record) bool { return true }, func(*record.Record) (traits.Handle, error) {
		attached++
		return traits.Static("a", "1"), nil
	})
	b := traits.For("item.b", func(*record.Record) bool { panic("bad predicate") }, func(*record.Record) (traits.Handle, error) {
		return traits.Static("b", "2"), nil
	})
	require.NoError(t, reg.Register(a, record.KeyFor("item")))
	require.NoError(t, reg.Register(b, record.KeyFor("item")))

	eng, err := quill.New(quill.WithRegistry(reg), quill.WithSink(rec))
	require.NoError(t, err)

	d := eng.Describe(&record.Record{Kind: "item", ID: "x"})
	assert.Equal(t, "[a=1]", d.Description)
	assert.Equal(t, []traits.Property{{ID: "a", Content: "1"}}, d.Properties)
	assert.Equal(t, 1, attached)
	assert.Equal(t, 1, rec.ErrorsContaining("item.b"))

	expected := `
# HELP quill_trait_faults_total Trait descriptors that panicked or failed
# TYPE quill_trait_faults_total counter
quill_trait_faults_total{descriptor="item.b",phase="applies"} 1
`
	require.NoError(t, testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected), "quill_trait_faults_total"))
}

func TestEngine_CustomManifestAndMetrics(t *testing.T) {
	m, err := record.ParseManifest([]byte("kinds:\n  note:\n    traits:\n      - id: title\n"))
	require.NoError(t, err)
	metrics := observability.NewMetrics()

	eng, rec := newEngine(t, quill.WithManifest(m), quill.WithMetrics(metrics))
	assert.Equal(t, "[title=hi]", eng.Describe(&record.Record{Kind: "note", ID: "n", Fields: map[string]any{"title": "hi"}}).Description)
	assert.Equal(t, "", eng.Describe(&record.Record{Kind: "item", ID: "i"}).Description, "built-in kinds are not registered")

	eng.Tokenize("a b")
	eng.Diagnostics().Error("counted")
	assert.Equal(t, []string{"counted"}, rec.Errors())
	count, err := testutil.GatherAndCount(metrics.Registry(), "quill_diagnostics_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEngine_Interpret(t *testing.T) {
	defs := memory.NewDefinitionsFrom(map[string]string{"mob": "zombie"})
	eng, rec := newEngine(t, quill.WithDefinitions(defs))

	entry, err := eng.Interpret("spawn <[mob]> quantity:lots")
	require.NoError(t, err)
	assert.Equal(t, "spawn", entry.Command())
	assert.Equal(t, int32(0), entry.Arg("quantity").AsInt())
	assert.Equal(t, 1, rec.ErrorsContaining(`"lots"`))

	v, ok := entry.Args()[0].Definition("mob")
	require.True(t, ok)
	assert.Equal(t, "zombie", v)
}

func TestEngine_Run(t *testing.T) {
	loader, err := memory.NewFromDocuments(ports.ScriptDocument{
		Name:        "boss",
		Debug:       true,
		Definitions: map[string]string{"boss": "wither", "arena": "north"},
		Lines:       []string{`narrate "<[boss]> approaches"`, "spawn <[boss]> at:<[arena]>"},
	})
	require.NoError(t, err)

	defs := memory.NewDefinitionsFrom(map[string]string{"arena": "south"})
	eng, rec := newEngine(t, quill.WithLoader(loader), quill.WithDefinitions(defs))

	names, err := eng.Scripts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"boss"}, names)

	report, err := eng.Run(context.Background(), "boss")
	require.NoError(t, err)

	assert.Equal(t, "boss", report.Script)
	assert.True(t, report.Debug)
	require.Len(t, report.Entries, 2)
	spawn := report.Entries[1]
	assert.Equal(t, "spawn", spawn.Command)
	assert.Equal(t, "wither", spawn.Args[0].Definition)
	assert.Equal(t, "at", spawn.Args[1].Prefix)
	assert.Equal(t, "south", spawn.Args[1].Definition, "existing bindings win over script defaults")
	assert.Len(t, rec.Logs(), 2, "debug scripts report constructed args")

	md := report.Markdown()
	assert.True(t, strings.HasPrefix(md, "# Script `boss`"))
	assert.Contains(t, md, "`<[boss]>` = `wither`")

	_, err = eng.Run(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrScriptNotFound)
}

func TestEngine_NoLoader(t *testing.T) {
	eng, _ := newEngine(t)
	_, err := eng.Run(context.Background(), "x")
	assert.ErrorIs(t, err, quill.ErrNoLoader)
	_, err = eng.Scripts(context.Background())
	assert.ErrorIs(t, err, quill.ErrNoLoader)
}

func TestEngine_FrozenRegistryRejectsManifest(t *testing.T) {
	reg := traits.NewRegistry()
	reg.Freeze()
	_, err := quill.New(quill.WithRegistry(reg), quill.WithManifest(record.DefaultManifest()))
	assert.ErrorIs(t, err, traits.ErrRegistryFrozen)
}
