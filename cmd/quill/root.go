package main

import (
	"fmt"
	"os"

	"github.com/aretw0/quill/internal/cli"
	"github.com/aretw0/quill/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill tokenizes script arguments and describes host objects",
	Long: `quill is the argument and description core of an embedded scripting engine.
It splits command lines into typed arguments and renders records as canonical
[id=content;...] descriptions driven by a trait manifest.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the scripts (overrides scripts.dir)")
	rootCmd.PersistentFlags().String("manifest", "", "Trait manifest (overrides traits.manifest)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug reporting")
	rootCmd.PersistentFlags().Bool("json", false, "Print JSON output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors and markdown styling")
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Scripts.Dir = dir
	}
	if manifest, _ := cmd.Flags().GetString("manifest"); manifest != "" {
		cfg.Traits.Manifest = manifest
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// buildRuntime loads the config and wires the engine.
func buildRuntime(cmd *cobra.Command, withLoader bool) (*cli.Runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.Build(cmd.Context(), cfg, withLoader)
}

func newPrinter(cmd *cobra.Command) *cli.Printer {
	jsonMode, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return cli.NewPrinter(cmd.OutOrStdout(), jsonMode, noColor)
}
