package main

import (
	"fmt"

	"github.com/modularizer/repart-go/pkg/repart"
	"github.com/modularizer/repart-go/pkg/repart/patternfile"
)

// buildPattern resolves the pattern a subcommand should run: an inline
// source with an optional flag string, or an entry of a YAML pattern
// file selected by id.
func buildPattern(source, flagStr, file, id string) (*repart.Pattern, error) {
	switch {
	case source != "" && file != "":
		return nil, fmt.Errorf("--pattern and --pattern-file are mutually exclusive")
	case source != "":
		flags, err := repart.ParseFlags(flagStr)
		if err != nil {
			return nil, err
		}
		return repart.Compile(source, repart.WithFlags(flags))
	case file != "":
		if flagStr != "" {
			return nil, fmt.Errorf("--flags only applies to --pattern; set flags in the pattern file")
		}
		pf, err := patternfile.Load(file)
		if err != nil {
			return nil, err
		}
		compiled, err := pf.Compile()
		if err != nil {
			return nil, err
		}
		if id == "" {
			if len(compiled) == 1 {
				for _, p := range compiled {
					return p, nil
				}
			}
			return nil, fmt.Errorf("pattern file has %d patterns; select one with --id", len(compiled))
		}
		p, ok := compiled[id]
		if !ok {
			return nil, fmt.Errorf("pattern file has no pattern with id %q", id)
		}
		return p, nil
	}
	return nil, fmt.Errorf("either --pattern or --pattern-file is required")
}
