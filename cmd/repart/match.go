package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/modularizer/repart-go/internal/safeio"
	"github.com/modularizer/repart-go/pkg/repart"
)

// MaxInputSize caps how much input `repart match` reads (10MB).
const MaxInputSize = 10 * 1024 * 1024

var (
	matchPattern     string
	matchFlags       string
	matchPatternFile string
	matchPatternID   string
	matchInputFile   string
	matchAll         bool
	matchFormat      string
)

var matchCmd = &cobra.Command{
	Use:   "match [input]",
	Short: "Run a pattern against input and print the extracted value",
	Long: `Run a pattern against input text and print the extracted value.

Input is taken from the argument, from --file, or from stdin.

Examples:
  # Inline pattern against an argument
  repart match --pattern 'name: (?<name>\w+), age: (?<age>\d+)' 'name: John, age: 25'

  # All matches of a global pattern, from stdin
  echo 'hello world' | repart match --pattern '(?<word>\w+)' --all

  # A pattern file entry against a file
  repart match --pattern-file patterns.yaml --id user_line --file users.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchPattern, "pattern", "p", "", "inline pattern source")
	matchCmd.Flags().StringVar(&matchFlags, "flags", "", "pattern flags for --pattern (e.g. gi)")
	matchCmd.Flags().StringVar(&matchPatternFile, "pattern-file", "", "YAML pattern file")
	matchCmd.Flags().StringVar(&matchPatternID, "id", "", "pattern id within --pattern-file")
	matchCmd.Flags().StringVar(&matchInputFile, "file", "", "read input from file instead of stdin")
	matchCmd.Flags().BoolVarP(&matchAll, "all", "a", false, "collect all matches, not just the first")
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", "jsonl", "output format: jsonl, pretty")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if !ValidFormats[matchFormat] {
		return fmt.Errorf("unknown format: %s", matchFormat)
	}
	p, err := buildPattern(matchPattern, matchFlags, matchPatternFile, matchPatternID)
	if err != nil {
		return err
	}
	log := logger()
	log.Debug("pattern compiled", "pattern", p.String(), "groups", p.Index().Len())

	input, err := readInput(args)
	if err != nil {
		return err
	}
	log.Debug("input read", "bytes", len(input))

	var opts []repart.MatchOption
	if matchAll {
		opts = append(opts, repart.MaxMatches(0))
	}
	v, err := p.Extract(input, opts...)
	if err != nil {
		return err
	}
	return OutputValue(matchFormat, v, cmd.OutOrStdout())
}

// readInput resolves the subcommand's input text: argument, --file, or
// stdin. Supplying both an argument and --file is an error rather than a
// silent preference.
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		if matchInputFile != "" {
			return "", fmt.Errorf("an input argument and --file are mutually exclusive")
		}
		return args[0], nil
	}
	if matchInputFile != "" {
		data, err := safeio.ReadLimited(matchInputFile, MaxInputSize)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(io.LimitReader(os.Stdin, MaxInputSize))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
