package main

import (
	"io"
	"os"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/record"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Describe records from a YAML or JSON file",
	Long: `Reads one record or a list of records ({kind, id, fields}) from the file,
or from stdin when no file is given, and prints kind@id[description] per record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, argv []string) error {
		rt, err := buildRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		p := newPrinter(cmd)

		var data []byte
		if len(argv) == 1 {
			data, err = os.ReadFile(argv[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}

		records, err := record.Parse(data)
		if err != nil {
			return err
		}

		results := make([]quill.Description, 0, len(records))
		for _, r := range records {
			results = append(results, rt.Engine.Describe(r))
		}
		if p.JSON {
			return p.Value(results)
		}
		for _, d := range results {
			p.Line("<A>%s<W>%s", d.Identity, d.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
