/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer renders verification results and other structured
// data as JSON, YAML, or a flattened key/value table, to stdout, a file,
// or an HTTP response.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// StdoutURI is the output path meaning "write to stdout".
const StdoutURI = "-"

// IsUnknown reports whether f is not a supported output format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	}
	return true
}

// Writer serializes a value to its destination.
type Writer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by writers that hold a resource to release.
type Closer interface {
	Close() error
}

type streamWriter struct {
	format Format
	out    io.Writer
	file   *os.File
}

// NewWriter returns a Writer that encodes in the given format to out.
// Unknown formats fall back to JSON.
func NewWriter(format Format, out io.Writer) Writer {
	switch format {
	case FormatJSON, FormatYAML, FormatTable:
	default:
		format = FormatJSON
	}
	return &streamWriter{format: format, out: out}
}

// NewStdoutWriter returns a Writer that encodes to stdout.
func NewStdoutWriter(format Format) Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer for the given path. An empty or
// whitespace path, or StdoutURI, means stdout. The returned writer
// implements Closer when it owns a file handle.
func NewFileWriterOrStdout(format Format, path string) (Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	w := NewWriter(format, f).(*streamWriter)
	w.file = f
	return w, nil
}

func (w *streamWriter) Serialize(_ context.Context, data any) error {
	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return writeTable(w.out, data)
	default:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

func (w *streamWriter) Close() error {
	if w.file == nil {
		return nil
	}
	f := w.file
	w.file = nil
	return f.Close()
}

// writeTable renders data as FIELD/VALUE rows. The value is normalized
// through JSON so any serializable type flattens the same way, with keys
// like "results[0].code".
func writeTable(out io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to flatten for table output: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("failed to flatten for table output: %w", err)
	}

	rows := map[string]string{}
	flatten("", generic, rows)

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, rows[k])
	}
	return tw.Flush()
}

func flatten(prefix string, v any, rows map[string]string) {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, item, rows)
		}
	case []any:
		for i, item := range val {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), item, rows)
		}
	case nil:
		rows[prefix] = ""
	default:
		rows[prefix] = fmt.Sprintf("%v", val)
	}
}
