package memory_test

import (
	"testing"

	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestMemoryDefinitions_Contract(t *testing.T) {
	ports.RunDefinitionProviderContract(t, memory.NewDefinitions())
}

func TestNewDefinitionsFrom_NormalizesSeedNames(t *testing.T) {
	defs := memory.NewDefinitionsFrom(map[string]string{"Player": "p@steve"})

	v, ok := defs.Get("player")
	assert.True(t, ok)
	assert.Equal(t, "p@steve", v)
}
