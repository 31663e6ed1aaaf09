package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/quill/internal/testutils"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T, files map[string]string) *Loader {
	t.Helper()

	_, repo := testutils.SetupScriptRepo(t, files)
	return New(loam.NewTypedRepository[ScriptMetadata](repo))
}

func TestLoader_Contract(t *testing.T) {
	loader := setupRepo(t, map[string]string{
		"greeter.md": `---
debug: true
---
# says hello
- narrate "hello world"
- wait 1s
`,
		"spawner.md": `---
name: spawner
---
spawn zombie quantity:3
`,
	})

	ports.RunScriptLoaderContract(t, loader, map[string][]string{
		"greeter": {`narrate "hello world"`, "wait 1s"},
		"spawner": {"spawn zombie quantity:3"},
	})
}

func TestLoader_Metadata(t *testing.T) {
	loader := setupRepo(t, map[string]string{
		"boss.md": `---
name: boss-fight
debug: true
definitions:
  Boss: wither
  waves: 3
  drops: [star, skull]
script:
  - narrate "<[boss]> approaches"
---
spawn <[boss]>
`,
	})

	doc, err := loader.Load(context.Background(), "boss-fight")
	require.NoError(t, err)

	assert.Equal(t, "boss-fight", doc.Name)
	assert.True(t, doc.Debug)
	assert.Equal(t, map[string]string{"Boss": "wither", "waves": "3", "drops": "star|skull"}, doc.Definitions)
	assert.Equal(t, []string{`narrate "<[boss]> approaches"`, "spawn <[boss]>"}, doc.Lines)

	_, err = loader.Load(context.Background(), "boss")
	assert.ErrorIs(t, err, ports.ErrScriptNotFound, "the metadata name replaces the file name")
}

func TestLoader_DetectsCollisions(t *testing.T) {
	loader := setupRepo(t, map[string]string{
		"one.md": "---\nname: same\n---\nnarrate one\n",
		"two.md": "---\nname: same\n---\nnarrate two\n",
	})

	_, err := loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "start", trimExtension("start.md"))
	assert.Equal(t, "nested/flow", trimExtension("nested/flow.yaml"))
	assert.Equal(t, "plain", trimExtension("plain"))
}
