package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// outputOptions controls how command results are rendered. Every read
// command supports them; table rendering is the default.
type outputOptions struct {
	JSON  bool
	Query string
}

func addOutputFlags(fs *flag.FlagSet, opts *outputOptions) {
	fs.BoolVar(&opts.JSON, "json", false, "Emit JSON instead of a table")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the result (implies -json)")
}

// renderResult writes a command result to stdout. A -query expression is
// evaluated against the result's JSON form; its output, like -json, is
// printed as indented JSON.
func renderResult(result any, opts outputOptions, table func(w io.Writer) error) error {
	if opts.Query != "" {
		projected, err := applyQuery(result, opts.Query)
		if err != nil {
			return err
		}
		return renderJSON(os.Stdout, projected)
	}
	if opts.JSON || table == nil {
		return renderJSON(os.Stdout, result)
	}
	return table(os.Stdout)
}

// applyQuery evaluates a JMESPath expression against the JSON form of v, so
// queries see the same field names the API speaks.
func applyQuery(v any, query string) (any, error) {
	if _, err := jmespath.Compile(query); err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result for query: %w", err)
	}
	var data any
	if err := json.Unmarshal(encoded, &data); err != nil {
		return nil, fmt.Errorf("decode result for query: %w", err)
	}

	result, err := jmespath.Search(query, data)
	if err != nil {
		return nil, fmt.Errorf("evaluate query %q: %w", query, err)
	}
	return result, nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
