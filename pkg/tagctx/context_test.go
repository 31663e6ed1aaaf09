package tagctx_test

import (
	"testing"

	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/script"
	"github.com/aretw0/quill/pkg/tagctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProviderFallback(t *testing.T) {
	queueDefs := memory.NewDefinitionsFrom(map[string]string{"source": "queue"})
	q := script.NewQueue(script.WithDefinitions(queueDefs))
	entry, err := script.NewEntry(q, "narrate hi")
	require.NoError(t, err)

	t.Run("explicit provider wins", func(t *testing.T) {
		explicit := memory.NewDefinitionsFrom(map[string]string{"source": "explicit"})
		ctx := tagctx.New(false, entry, nil, explicit)
		assert.Same(t, explicit, ctx.Definitions())
	})

	t.Run("entry queue provider", func(t *testing.T) {
		ctx := tagctx.New(false, entry, nil, nil)
		v, ok := ctx.Definition("SOURCE")
		require.True(t, ok)
		assert.Equal(t, "queue", v)
	})

	t.Run("fresh provider", func(t *testing.T) {
		ctx := tagctx.New(false, nil, nil, nil)
		require.NotNil(t, ctx.Definitions())
		assert.Empty(t, ctx.Definitions().All())

		other := tagctx.New(false, nil, nil, nil)
		ctx.Definitions().Set("x", "1")
		assert.False(t, other.Definitions().Has("x"), "each context gets its own provider")
	})

	t.Run("detached entry falls through", func(t *testing.T) {
		detached, err := script.NewEntry(nil, "narrate hi")
		require.NoError(t, err)
		ctx := tagctx.New(false, detached, nil, nil)
		assert.NotNil(t, ctx.Definitions())
	})
}

func TestForEntry(t *testing.T) {
	rec := diag.NewRecorder()
	s := script.New("demo", []string{"narrate hi"})
	q := s.NewQueue(script.WithDebug(true), script.WithSink(rec))
	entries, err := s.Entries(q)
	require.NoError(t, err)

	ctx := tagctx.ForEntry(entries[0])
	assert.True(t, ctx.ShouldDebug())
	assert.Same(t, entries[0], ctx.Entry())
	assert.Same(t, s, ctx.Script())
	assert.Same(t, q.Definitions(), ctx.Definitions())

	ctx.Diagnostics().Error("from context")
	assert.Equal(t, []string{"from context"}, rec.Errors())
}

func TestShouldDebug(t *testing.T) {
	assert.True(t, tagctx.New(true, nil, nil, nil).ShouldDebug())
	assert.False(t, tagctx.New(false, nil, nil, nil).ShouldDebug())
}
