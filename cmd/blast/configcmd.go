package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blast/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the game configuration",
	Long: `Inspect or create the game configuration.

Without --config, files are searched in this order:
  ~/.blast/configs/blast.yaml
  ./configs/blast.yaml
and the built-in defaults apply when neither loads.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration and where it came from",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cfg, source, err := config.LoadBlastFrom(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if flagDifficulty != "" {
			preset, err := config.ParsePreset(flagDifficulty)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			config.ApplyBlastPreset(&cfg, preset)
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("# source: %s\n", source)
		os.Stdout.Write(out)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the annotated default configuration",
	Long: `Write the annotated default configuration to path,
or to ~/.blast/configs/blast.yaml when no path is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else if paths := config.SearchPaths(); len(paths) > 1 {
			path = paths[0]
		} else {
			fmt.Fprintln(os.Stderr, "Error: cannot locate home directory, pass a path")
			os.Exit(1)
		}

		if fileExists(path) && !flagConfigForce {
			fmt.Fprintf(os.Stderr, "Error: %s exists (use --force to overwrite)\n", path)
			os.Exit(1)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("config written", "path", path)
	},
}

func init() {
	configCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configShowCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Apply a preset: easy, normal, hard, fixed")
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
}
