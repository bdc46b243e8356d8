package keys

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xdao.co/rcli/textsign"
)

func TestWriteBundle_Ed25519LayoutAndPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	bundle, err := textsign.GenerateKeys(textsign.FormatEd25519)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	written, err := WriteBundle(dir, textsign.FormatEd25519, bundle, false)
	if err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %d", len(written))
	}
	if filepath.Base(written[0].Path) != "ed25519.sk" || filepath.Base(written[1].Path) != "ed25519.pk" {
		t.Fatalf("unexpected names: %s, %s", written[0].Path, written[1].Path)
	}
	if written[0].Public || !written[1].Public {
		t.Fatalf("expected private then public")
	}

	for i, w := range written {
		got, err := os.ReadFile(w.Path)
		if err != nil {
			t.Fatalf("read %s: %v", w.Path, err)
		}
		if !bytes.Equal(got, bundle[i]) {
			t.Fatalf("%s: content mismatch", w.Path)
		}
		if w.Fingerprint != Fingerprint(bundle[i]) || !strings.HasPrefix(w.Fingerprint, "bafk") {
			t.Fatalf("%s: unexpected fingerprint %q", w.Path, w.Fingerprint)
		}
	}

	fi, err := os.Stat(written[0].Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm()&0o077 != 0 {
		t.Fatalf("private key readable by others: %v", fi.Mode().Perm())
	}

	// The written files must be loadable by the signing core.
	in := filepath.Join(dir, "msg.txt")
	if err := os.WriteFile(in, []byte("hello"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	sig, err := textsign.Sign(in, written[0].Path, textsign.FormatEd25519)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := textsign.Verify(in, written[1].Path, sig, textsign.FormatEd25519)
	if err != nil || !ok {
		t.Fatalf("Verify: ok=%v err=%v", ok, err)
	}
}

func TestWriteBundle_RefusesOverwriteByDefault(t *testing.T) {
	dir := t.TempDir()
	bundle, err := textsign.GenerateKeys(textsign.FormatBlake3)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	if _, err := WriteBundle(dir, textsign.FormatBlake3, bundle, false); err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}
	fresh, err := textsign.GenerateKeys(textsign.FormatBlake3)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	_, err = WriteBundle(dir, textsign.FormatBlake3, fresh, false)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}

	if _, err := WriteBundle(dir, textsign.FormatBlake3, fresh, true); err != nil {
		t.Fatalf("WriteBundle overwrite: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "blake3.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, fresh[0]) {
		t.Fatalf("expected overwritten key")
	}
}

func TestWriteBundle_RejectsMismatchedBundle(t *testing.T) {
	_, err := WriteBundle(t.TempDir(), textsign.FormatEd25519, textsign.KeyBundle{[]byte("only one")}, false)
	if err == nil {
		t.Fatalf("expected error for a one-element ed25519 bundle")
	}
	if _, err := WriteBundle("", textsign.FormatBlake3, textsign.KeyBundle{[]byte("x")}, false); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}
