package main

import (
	"bufio"
	"strings"

	"github.com/aretw0/quill/pkg/args"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [line]",
	Short: "Split a command line into argument tokens",
	Long: `Splits the line (all arguments joined by spaces) into tokens.
Without arguments, every line of stdin is tokenized.`,
	RunE: func(cmd *cobra.Command, argv []string) error {
		rt, err := buildRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		p := newPrinter(cmd)

		var lines []string
		if len(argv) > 0 {
			lines = []string{strings.Join(argv, " ")}
		} else {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return err
			}
		}

		results := make([][]string, 0, len(lines))
		for _, line := range lines {
			results = append(results, rt.Engine.Tokenize(line))
		}
		if p.JSON {
			return p.Value(results)
		}
		for _, tokens := range results {
			p.Line("%s", args.DebugList("tokens", tokens))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
