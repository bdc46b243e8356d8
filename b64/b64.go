// Package b64 base64-encodes and decodes command input.
package b64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"xdao.co/rcli/input"
)

// Format selects the base64 alphabet.
type Format int

const (
	// Standard is RFC 4648 base64 with padding.
	Standard Format = iota
	// URLSafe is the URL and filename safe alphabet without padding.
	URLSafe
)

var ErrUnknownFormat = errors.New("b64: unknown format")

// ParseFormat accepts "standard", "urlsafe" or "url_safe".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return Standard, nil
	case "urlsafe", "url_safe":
		return URLSafe, nil
	default:
		return 0, fmt.Errorf("%w %q (use 'standard' or 'urlsafe')", ErrUnknownFormat, s)
	}
}

func (f Format) String() string {
	if f == URLSafe {
		return "urlsafe"
	}
	return "standard"
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

func (f Format) encoding() *base64.Encoding {
	if f == URLSafe {
		return base64.RawURLEncoding
	}
	return base64.StdEncoding
}

// Encode reads source (input.Stdin or a path), trims surrounding whitespace
// and returns its base64 text.
func Encode(source string, format Format) (string, error) {
	b, err := input.Read(source, true)
	if err != nil {
		return "", err
	}
	return EncodeBytes(b, format), nil
}

// Decode reads base64 text from source and returns the decoded bytes, which
// need not be valid UTF-8.
func Decode(source string, format Format) ([]byte, error) {
	b, err := input.Read(source, true)
	if err != nil {
		return nil, err
	}
	return DecodeString(string(b), format)
}

func EncodeBytes(b []byte, format Format) string {
	return format.encoding().EncodeToString(b)
}

func DecodeString(s string, format Format) ([]byte, error) {
	out, err := format.encoding().DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("b64: decode %s: %w", format, err)
	}
	return out, nil
}
