package loam

// ScriptMetadata is the frontmatter of a script document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type ScriptMetadata struct {
	// Name overrides the document id.
	Name  string `json:"name" mapstructure:"name"`
	Debug bool   `json:"debug" mapstructure:"debug"`

	// Definitions seed the queue that runs the script.
	Definitions map[string]any `json:"definitions" mapstructure:"definitions"`

	// Script lists command lines in frontmatter; they run before the body lines.
	Script []string `json:"script" mapstructure:"script"`
}
