package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"github.com/modularizer/repart-go/pkg/repart"
)

var (
	scanPattern     string
	scanFlags       string
	scanPatternFile string
	scanPatternID   string
	scanInputFile   string
	scanFollow      bool
	scanFormat      string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Apply a pattern line-by-line and print extracted values",
	Long: `Apply a pattern to each line of a file or stdin and print one JSON
value per matching line. Lines that do not match are skipped silently.

With --follow the file is tailed like tail -f, surviving rotation, until
interrupted.

Examples:
  # Extract key/value settings from a config-ish file
  repart scan --pattern '(?<key>\w+)=(?<value>\S+)' --file app.env

  # Watch a log for markdown headings as they are appended
  repart scan --pattern '^(?<level>#{1,6}) (?<heading>.+)$' --file notes.md --follow`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanPattern, "pattern", "p", "", "inline pattern source")
	scanCmd.Flags().StringVar(&scanFlags, "flags", "", "pattern flags for --pattern (e.g. gi)")
	scanCmd.Flags().StringVar(&scanPatternFile, "pattern-file", "", "YAML pattern file")
	scanCmd.Flags().StringVar(&scanPatternID, "id", "", "pattern id within --pattern-file")
	scanCmd.Flags().StringVar(&scanInputFile, "file", "", "file to scan (default stdin)")
	scanCmd.Flags().BoolVar(&scanFollow, "follow", false, "keep scanning as the file grows (requires --file)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "jsonl", "output format: jsonl, pretty")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if !ValidFormats[scanFormat] {
		return fmt.Errorf("unknown format: %s", scanFormat)
	}
	if scanFollow && scanInputFile == "" {
		return fmt.Errorf("--follow requires --file")
	}
	p, err := buildPattern(scanPattern, scanFlags, scanPatternFile, scanPatternID)
	if err != nil {
		return err
	}
	log := logger()
	log.Debug("pattern compiled", "pattern", p.String(), "groups", p.Index().Len())

	out := cmd.OutOrStdout()
	if scanFollow {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		log.Debug("following file", "path", scanInputFile)
		return followFile(ctx, p, scanInputFile, out, log)
	}

	var in io.Reader = os.Stdin
	if scanInputFile != "" {
		f, err := os.Open(scanInputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		in = f
	}
	return scanLines(p, in, out)
}

// scanLines extracts every line of in, writing one value per match.
func scanLines(p *repart.Pattern, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := extractLine(p, sc.Text(), out); err != nil {
			return err
		}
	}
	return sc.Err()
}

// followFile tails path until the context is cancelled, extracting each
// appended line.
func followFile(ctx context.Context, p *repart.Pattern, path string, out io.Writer, log *slog.Logger) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow: true,
		ReOpen: true,
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to tail file: %w", err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			log.Debug("follow stopped", "path", path)
			t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				return line.Err
			}
			if err := extractLine(p, line.Text, out); err != nil {
				return err
			}
		}
	}
}

// extractLine runs one line through the pipeline; non-matches are a
// normal, silent outcome.
func extractLine(p *repart.Pattern, line string, out io.Writer) error {
	v, err := p.Extract(line)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if list, ok := v.([]any); ok && len(list) == 0 {
		return nil
	}
	return OutputValue(scanFormat, v, out)
}
