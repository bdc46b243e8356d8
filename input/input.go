// Package input reads command input from standard input or a named file.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Stdin is the source name that selects the process's standard input.
const Stdin = "-"

// ErrMalformedInput is returned when input that must be text is not valid UTF-8.
var ErrMalformedInput = errors.New("input: not valid UTF-8")

var stdin io.Reader = os.Stdin

// Read returns every byte of source, which is either Stdin or a file path.
//
// If trim is set the bytes must be valid UTF-8; leading and trailing
// whitespace is removed. Interior content is never touched.
func Read(source string, trim bool) ([]byte, error) {
	if source == Stdin {
		return ReadFrom(stdin, trim)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrom(f, trim)
}

// ReadFrom reads r to EOF and applies the same trim rules as Read.
func ReadFrom(r io.Reader, trim bool) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !trim {
		return b, nil
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w (%d bytes)", ErrMalformedInput, len(b))
	}
	return bytes.TrimSpace(b), nil
}

// Exists reports an error unless source is Stdin or names an existing regular file.
func Exists(source string) error {
	if source == Stdin {
		return nil
	}
	fi, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file %s does not exist", source)
		}
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("input %s is a directory", source)
	}
	return nil
}

// Write writes b to w in full.
func Write(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}
