package keys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"xdao.co/rcli/cidutil"
	"xdao.co/rcli/textsign"
)

// WrittenKey describes one file written by WriteBundle.
type WrittenKey struct {
	Path        string
	Fingerprint string
	Public      bool
}

// WriteBundle writes each element of bundle to dir using the file names of
// format.KeyFileNames.
//
// Private material is written 0600, public keys 0644. Existing files are
// left alone unless overwrite is set. The directory is created if needed.
func WriteBundle(dir string, format textsign.Format, bundle textsign.KeyBundle, overwrite bool) ([]WrittenKey, error) {
	if dir == "" {
		return nil, errors.New("keys: output directory is required")
	}
	names := format.KeyFileNames()
	if names == nil {
		return nil, fmt.Errorf("keys: no key file layout for format %s", format)
	}
	if len(names) != len(bundle) {
		return nil, fmt.Errorf("keys: %s bundle has %d elements, expected %d", format, len(bundle), len(names))
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	written := make([]WrittenKey, 0, len(bundle))
	for i, material := range bundle {
		public := isPublic(format, i)
		perm := os.FileMode(0o600)
		if public {
			perm = 0o644
		}
		path := filepath.Join(dir, names[i])
		if err := writeKeyFile(path, material, perm, overwrite); err != nil {
			return written, fmt.Errorf("keys: write %s: %w", names[i], err)
		}
		written = append(written, WrittenKey{Path: path, Fingerprint: Fingerprint(material), Public: public})
	}
	return written, nil
}

// Fingerprint identifies key material without revealing it.
func Fingerprint(material []byte) string {
	return cidutil.String(material)
}

// isPublic reports whether element i of a format's bundle is public.
func isPublic(format textsign.Format, i int) bool {
	return format == textsign.FormatEd25519 && i == 1
}

func writeKeyFile(path string, material []byte, perm os.FileMode, overwrite bool) error {
	if len(material) == 0 {
		return errors.New("empty key material")
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, perm)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.Write(material); err != nil {
		return err
	}
	return file.Close()
}
