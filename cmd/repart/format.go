package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputValue writes an extracted value in the specified format.
func OutputValue(format string, v any, out io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(v, out)
	case "pretty":
		return OutputPretty(v, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes a value as one JSON line.
func OutputJSON(v any, out io.Writer) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes a value as indented JSON.
func OutputPretty(v any, out io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
