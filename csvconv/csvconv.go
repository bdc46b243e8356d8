// Package csvconv converts CSV records into JSON, YAML or TOML documents.
package csvconv

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// OutputFormat names a supported output document type.
type OutputFormat string

const (
	JSON OutputFormat = "json"
	YAML OutputFormat = "yaml"
	TOML OutputFormat = "toml"
)

var ErrUnsupportedFormat = errors.New("csvconv: unsupported output format")

// ParseOutputFormat is case-insensitive.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, YAML, TOML:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (supported: json, yaml, toml)", ErrUnsupportedFormat, s)
	}
}

func (f OutputFormat) String() string { return string(f) }

// Set implements pflag.Value.
func (f *OutputFormat) Set(s string) error {
	parsed, err := ParseOutputFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *OutputFormat) Type() string { return "format" }

// DefaultOutput is the file name used when no output path is given.
func (f OutputFormat) DefaultOutput() string { return "output." + string(f) }

type Options struct {
	Format OutputFormat
	// Delimiter defaults to ',' when zero.
	Delimiter rune
	// Header treats the first record as column names. Otherwise columns are
	// named column1..N.
	Header bool
}

func DefaultOptions() Options {
	return Options{Format: JSON, Delimiter: ',', Header: true}
}

// record keeps column order, which Go maps do not.
type record struct {
	keys   []string
	values []string
}

// Convert reads all CSV records from r and writes one document to w.
func Convert(r io.Reader, w io.Writer, opts Options) error {
	if _, err := ParseOutputFormat(string(opts.Format)); err != nil {
		return err
	}
	records, err := readRecords(r, opts)
	if err != nil {
		return err
	}
	var out []byte
	switch opts.Format {
	case JSON:
		out, err = encodeJSON(records)
	case YAML:
		out, err = encodeYAML(records)
	case TOML:
		out, err = encodeTOML(records)
	}
	if err != nil {
		return fmt.Errorf("csvconv: encode %s: %w", opts.Format, err)
	}
	_, err = w.Write(out)
	return err
}

// ConvertFile converts the CSV file at in and writes the result to out,
// or to opts.Format.DefaultOutput() when out is empty.
func ConvertFile(in, out string, opts Options) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	if out == "" {
		out = opts.Format.DefaultOutput()
	}
	var buf bytes.Buffer
	if err := Convert(f, &buf, opts); err != nil {
		return err
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}

func readRecords(r io.Reader, opts Options) ([]record, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1

	var header []string
	if opts.Header {
		h, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csvconv: read header: %w", err)
		}
		header = h
	}

	var records []record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csvconv: read record: %w", err)
		}
		keys := header
		if keys == nil {
			keys = syntheticHeader(len(row))
		}
		// Zip semantics: extra fields or extra columns are dropped.
		n := min(len(keys), len(row))
		records = append(records, record{keys: keys[:n], values: row[:n]})
	}
}

func syntheticHeader(n int) []string {
	h := make([]string, n)
	for i := range h {
		h[i] = "column" + strconv.Itoa(i+1)
	}
	return h
}

func encodeJSON(records []record) ([]byte, error) {
	var buf bytes.Buffer
	if len(records) == 0 {
		return []byte("[]\n"), nil
	}
	buf.WriteString("[\n")
	for i, rec := range records {
		buf.WriteString("  {")
		for j, k := range rec.keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := json.Marshal(rec.values[j])
			if err != nil {
				return nil, err
			}
			buf.WriteString("\n    ")
			buf.Write(kb)
			buf.WriteString(": ")
			buf.Write(vb)
		}
		if len(rec.keys) > 0 {
			buf.WriteString("\n  ")
		}
		buf.WriteByte('}')
		if i < len(records)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

func encodeYAML(records []record) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range records {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for j, k := range rec.keys {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rec.values[j]},
			)
		}
		seq.Content = append(seq.Content, m)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeTOML wraps the rows under "data" since TOML has no top-level arrays.
func encodeTOML(records []record) ([]byte, error) {
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		row := make(map[string]string, len(rec.keys))
		for j, k := range rec.keys {
			row[k] = rec.values[j]
		}
		rows = append(rows, row)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any{"data": rows}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
