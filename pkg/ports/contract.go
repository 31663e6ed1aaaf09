package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDefinitionProviderContract runs a suite of tests to verify that a DefinitionProvider
// implementation adheres to the defined interface contract.
func RunDefinitionProviderContract(t *testing.T, provider DefinitionProvider) {
	suffix := time.Now().Format("20060102150405.000000000")

	t.Run("Set and Get", func(t *testing.T) {
		name := "contract_value_" + suffix
		provider.Set(name, "stone")

		value, ok := provider.Get(name)
		require.True(t, ok, "Get should find a value that was just set")
		assert.Equal(t, "stone", value)
		assert.True(t, provider.Has(name))
	})

	t.Run("Names Are Case Insensitive", func(t *testing.T) {
		name := "Contract_Case_" + suffix
		provider.Set(name, "42")

		value, ok := provider.Get(NormalizeName(name))
		require.True(t, ok)
		assert.Equal(t, "42", value)

		value, ok = provider.Get("CONTRACT_CASE_" + suffix)
		require.True(t, ok)
		assert.Equal(t, "42", value)
	})

	t.Run("Overwrite", func(t *testing.T) {
		name := "contract_overwrite_" + suffix
		provider.Set(name, "first")
		provider.Set(name, "second")

		value, _ := provider.Get(name)
		assert.Equal(t, "second", value)
	})

	t.Run("Missing", func(t *testing.T) {
		value, ok := provider.Get("contract_missing_" + suffix)
		assert.False(t, ok)
		assert.Empty(t, value)
		assert.False(t, provider.Has("contract_missing_"+suffix))
	})

	t.Run("Empty Value Is Bound", func(t *testing.T) {
		name := "contract_empty_" + suffix
		provider.Set(name, "")
		assert.True(t, provider.Has(name))
	})

	t.Run("Remove", func(t *testing.T) {
		name := "contract_remove_" + suffix
		provider.Set(name, "gone soon")
		provider.Remove(name)

		assert.False(t, provider.Has(name))
		assert.NotPanics(t, func() { provider.Remove(name) }, "Remove of a missing name should be a no-op")
	})

	t.Run("All", func(t *testing.T) {
		a := "contract_all_a_" + suffix
		b := "contract_all_b_" + suffix
		provider.Set(a, "1")
		provider.Set(b, "2")

		all := provider.All()
		assert.Equal(t, "1", all[NormalizeName(a)])
		assert.Equal(t, "2", all[NormalizeName(b)])

		all[NormalizeName(a)] = "mutated"
		value, _ := provider.Get(a)
		assert.Equal(t, "1", value, "All should return a snapshot")
	})
}

// RunScriptLoaderContract verifies that a ScriptLoader returns the expected lines for
// every seeded script and reports unknown names with ErrScriptNotFound.
func RunScriptLoaderContract(t *testing.T, loader ScriptLoader, expected map[string][]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		for name, lines := range expected {
			doc, err := loader.Load(ctx, name)
			require.NoError(t, err, "Load(%s) should not return error", name)
			assert.Equal(t, name, doc.Name)
			assert.Equal(t, lines, doc.Lines)
		}
	})

	t.Run("Load Missing", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-script")
		assert.ErrorIs(t, err, ErrScriptNotFound)
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Len(t, names, len(expected))
		for name := range expected {
			assert.Contains(t, names, name)
		}
	})
}
