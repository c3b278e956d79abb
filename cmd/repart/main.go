package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "repart",
	Short: "Compose text patterns and extract structured data",
	Long: `repart composes regular-expression patterns from reusable fragments
and converts their matches into structured, typed data.

Patterns can be given inline with --pattern or loaded from YAML pattern
files with --pattern-file/--id. Extracted values are printed as JSON.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the repart version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print diagnostics to stderr")
	rootCmd.AddCommand(versionCmd)
}

// logger returns the diagnostic logger for a subcommand run. Diagnostics
// go to stderr so they never mix with extracted values on stdout; debug
// records are emitted only under --verbose.
func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
