package textsign

import (
	"fmt"
	"strings"
)

// Format selects a signing scheme.
type Format int

const (
	// FormatBlake3 is the symmetric BLAKE3 keyed-hash scheme.
	FormatBlake3 Format = iota + 1
	// FormatEd25519 is the asymmetric Ed25519 signature scheme.
	FormatEd25519
)

// ParseFormat maps a format tag ("blake3" or "ed25519", case-insensitive)
// to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blake3":
		return FormatBlake3, nil
	case "ed25519":
		return FormatEd25519, nil
	default:
		return 0, newError(KindUnknownFormat, "TEXTSIGN-FMT-001", fmt.Sprintf("unknown text sign format %q (expected blake3 or ed25519)", s))
	}
}

func (f Format) String() string {
	switch f {
	case FormatBlake3:
		return "blake3"
	case FormatEd25519:
		return "ed25519"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// KeyFileNames returns the file names a generated KeyBundle is written to,
// index-aligned with the bundle.
func (f Format) KeyFileNames() []string {
	switch f {
	case FormatBlake3:
		return []string{"blake3.txt"}
	case FormatEd25519:
		return []string{"ed25519.sk", "ed25519.pk"}
	default:
		return nil
	}
}

// Set implements pflag.Value so a Format can be bound directly to a flag.
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

func (f Format) validate() error {
	switch f {
	case FormatBlake3, FormatEd25519:
		return nil
	default:
		return newError(KindUnknownFormat, "TEXTSIGN-FMT-002", fmt.Sprintf("unsupported text sign format %s", f))
	}
}
