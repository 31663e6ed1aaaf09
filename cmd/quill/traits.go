package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/quill/internal/presentation/graph"
	"github.com/aretw0/quill/pkg/record"
	"github.com/spf13/cobra"
)

type traitListing struct {
	Type        string   `json:"type"`
	Descriptors []string `json:"descriptors"`
}

var traitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "Show the registered trait descriptors",
	Long: `Lists every host type with its descriptors in registration order.
With --mermaid, prints a Mermaid flowchart instead; --record highlights the
descriptors that apply to the first record of the given file.`,
	RunE: func(cmd *cobra.Command, argv []string) error {
		rt, err := buildRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		p := newPrinter(cmd)
		reg := rt.Engine.Registry()

		if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
			var overlay *graph.GraphOverlay
			if path, _ := cmd.Flags().GetString("record"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				records, err := record.Parse(data)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					return fmt.Errorf("no records in %s", path)
				}
				overlay = &graph.GraphOverlay{Type: records[0].TraitType()}
				for _, d := range reg.Lookup(records[0]) {
					overlay.Applied = append(overlay.Applied, d.Name)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(reg, overlay))
			return nil
		}

		var listing []traitListing
		for _, key := range reg.Types() {
			entry := traitListing{Type: string(key)}
			for _, d := range reg.Descriptors(key) {
				entry.Descriptors = append(entry.Descriptors, d.Name)
			}
			listing = append(listing, entry)
		}
		if p.JSON {
			return p.Value(listing)
		}

		var sb strings.Builder
		sb.WriteString("| Type | Descriptors |\n|---|---|\n")
		for _, l := range listing {
			fmt.Fprintf(&sb, "| `%s` | %s |\n", l.Type, strings.Join(l.Descriptors, ", "))
		}
		return p.Markdown(sb.String())
	},
}

func init() {
	rootCmd.AddCommand(traitsCmd)
	traitsCmd.Flags().Bool("mermaid", false, "Print a Mermaid flowchart")
	traitsCmd.Flags().String("record", "", "Records file whose first record is highlighted (with --mermaid)")
}
