package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Interpret a script and report its commands and arguments",
	Long: `Loads the script from the scripts directory (a Loam repository of markdown
documents), interprets every line on a new queue and prints a report.
Use --list to show the available scripts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, argv []string) error {
		rt, err := buildRuntime(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()
		p := newPrinter(cmd)

		list, _ := cmd.Flags().GetBool("list")
		if list || len(argv) == 0 {
			names, err := rt.Engine.Scripts(cmd.Context())
			if err != nil {
				return err
			}
			if p.JSON {
				return p.Value(names)
			}
			for _, n := range names {
				p.Line("%s", n)
			}
			return nil
		}

		report, err := rt.Engine.Run(cmd.Context(), argv[0])
		if err != nil {
			return err
		}
		if p.JSON {
			return p.Value(report)
		}
		if report.Debug {
			for _, e := range report.Entries {
				p.Line("%s", e.Debug)
			}
		}
		return p.Markdown(report.Markdown())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("list", false, "List available scripts")
}
