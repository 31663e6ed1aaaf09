package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/quill/pkg/traits"
)

// GraphOverlay contains per-instance data to visualize on the graph.
type GraphOverlay struct {
	// Type is the host type being described.
	Type traits.TypeKey
	// Applied lists the names of the descriptors that apply to the instance.
	Applied []string
}

// GenerateMermaid produces a Mermaid flowchart of the registry: one circle per host
// type with an edge to each of its descriptors, labelled by registration order.
// Descriptors registered more than once are drawn as [[Subroutine]] nodes.
// It also applies overlay styles (Current type / Applied descriptors) if provided.
func GenerateMermaid(reg *traits.Registry, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	applied := make(map[string]bool)
	var current string
	if overlay != nil {
		current = sanitizeMermaidID(string(overlay.Type))
		for _, name := range overlay.Applied {
			applied[name] = true
		}
	}

	var appliedIDs []string
	for _, key := range reg.Types() {
		typeID := sanitizeMermaidID(string(key))
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", typeID, quote(string(key))))

		descriptors := reg.Descriptors(key)
		seen := make(map[string]int, len(descriptors))
		for _, d := range descriptors {
			seen[d.Name]++
		}

		for i, d := range descriptors {
			nodeID := fmt.Sprintf("%s__%d", typeID, i)
			opener, closer := "[", "]"
			if seen[d.Name] > 1 {
				opener, closer = "[[", "]]"
			}
			sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID, opener, quote(d.Name), closer))
			sb.WriteString(fmt.Sprintf("    %s -- \"%d\" --> %s\n", typeID, i+1, nodeID))

			if typeID == current && applied[d.Name] {
				appliedIDs = append(appliedIDs, nodeID)
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef applied fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, id := range appliedIDs {
			sb.WriteString(fmt.Sprintf("    class %s applied;\n", id))
		}
		if current != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", current))
		}
	}

	return sb.String()
}

func quote(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

var mermaidReplacer = strings.NewReplacer(
	".", "_", "-", "_", "/", "_", "\\", "_",
	"*", "p_", "[", "_", "]", "_", " ", "_", "@", "_", ",", "_",
)

func sanitizeMermaidID(id string) string {
	return mermaidReplacer.Replace(id)
}
