// Package cmd implements the tagungsplan command line interface.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jbrokmeier/tagungsplan/internal/config"
)

var (
	configFile string
	flagHTML   string
	flagJSON   string
	flagThresh float64
)

var rootCmd = &cobra.Command{
	Use:   "tagungsplan",
	Short: "Conference program maintenance tools",
	Long: `Tagungsplan maintains the conference program JSON from the ConfTool
HTML export: it recovers abstracts, authors, affiliations and session
chairs and merges them into the program file the web frontend serves.

Each subcommand is a complete batch run: it strips the fields it is
responsible for, re-matches them against the export, and rewrites the
program file, so re-running is always safe.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on any failure.
func Execute() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&flagHTML, "html", "", "path to the ConfTool HTML export")
	rootCmd.PersistentFlags().StringVar(&flagJSON, "json", "", "path to the program JSON file")
	rootCmd.PersistentFlags().Float64Var(&flagThresh, "threshold", 0, "fuzzy title similarity threshold")
}

// loadConfig merges flag overrides over the YAML file and defaults.
func loadConfig() (config.Enrich, error) {
	cfg, err := config.LoadEnrich(configFile)
	if err != nil {
		return cfg, err
	}
	if flagHTML != "" {
		cfg.ExportHTML = flagHTML
	}
	if flagJSON != "" {
		cfg.ProgramJSON = flagJSON
	}
	if flagThresh != 0 {
		cfg.Threshold = flagThresh
	}
	return cfg, nil
}
