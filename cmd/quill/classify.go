package main

import (
	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/args"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <value>...",
	Short: "Report the numeric and boolean shape of argument values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, argv []string) error {
		rt, err := buildRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		p := newPrinter(cmd)

		results := make([]quill.Classification, 0, len(argv))
		for _, v := range argv {
			results = append(results, rt.Engine.Classify(v))
		}
		if p.JSON {
			return p.Value(results)
		}
		for _, c := range results {
			p.Line("%s%s%s%s%s",
				args.DebugObj("raw", c.Raw),
				args.DebugObj("value", c.Value),
				args.DebugObj("decimal", c.Decimal),
				args.DebugObj("integer", c.Integer),
				args.DebugObj("boolean", c.Boolean),
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
