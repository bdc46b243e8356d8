package textsign

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeBundle(t *testing.T, dir string, format Format) []string {
	t.Helper()
	bundle, err := GenerateKeys(format)
	if err != nil {
		t.Fatalf("GenerateKeys(%s): %v", format, err)
	}
	names := format.KeyFileNames()
	if len(names) != len(bundle) {
		t.Fatalf("bundle/name mismatch: %d vs %d", len(bundle), len(names))
	}
	paths := make([]string, len(bundle))
	for i, b := range bundle {
		paths[i] = writeFile(t, dir, names[i], b)
	}
	return paths
}

// signingKeys returns (sign key path, verify key path) for format.
func signingKeys(t *testing.T, dir string, format Format) (string, string) {
	t.Helper()
	paths := writeBundle(t, dir, format)
	if len(paths) == 1 {
		return paths[0], paths[0]
	}
	return paths[0], paths[1]
}

func TestSignVerify_RoundTripAllFormats(t *testing.T) {
	for _, format := range []Format{FormatBlake3, FormatEd25519} {
		t.Run(format.String(), func(t *testing.T) {
			dir := t.TempDir()
			sk, vk := signingKeys(t, dir, format)
			for name, content := range map[string]string{"empty": "", "fox": fox, "newline": fox + "\n"} {
				in := writeFile(t, dir, name+".txt", []byte(content))
				sig, err := Sign(in, sk, format)
				if err != nil {
					t.Fatalf("Sign(%s): %v", name, err)
				}
				if strings.ContainsAny(sig, "+/=") {
					t.Fatalf("signature %q is not unpadded URL-safe base64", sig)
				}
				ok, err := Verify(in, vk, sig, format)
				if err != nil {
					t.Fatalf("Verify(%s): %v", name, err)
				}
				if !ok {
					t.Fatalf("%s: signature did not verify", name)
				}
			}
		})
	}
}

func TestSign_CoversTrailingWhitespace(t *testing.T) {
	dir := t.TempDir()
	key := writeFile(t, dir, "blake3.txt", repeatedKey(0x41))
	plain := writeFile(t, dir, "plain.txt", []byte(fox))
	withNL := writeFile(t, dir, "nl.txt", []byte(fox+"\n"))

	a, err := Sign(plain, key, FormatBlake3)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	b, err := Sign(withNL, key, FormatBlake3)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if a == b {
		t.Fatalf("trailing newline was not signed")
	}
	ok, err := Verify(withNL, key, a, FormatBlake3)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("signature over untrimmed input must not cover the trimmed input")
	}
}

func TestVerify_MalformedSignatureTextIsError(t *testing.T) {
	dir := t.TempDir()
	key := writeFile(t, dir, "blake3.txt", repeatedKey(0x41))
	in := writeFile(t, dir, "in.txt", []byte(fox))

	ok, err := Verify(in, key, "not*base64!", FormatBlake3)
	if ok {
		t.Fatalf("expected false on malformed signature")
	}
	if !IsKind(err, KindInvalidSignatureEncoding) {
		t.Fatalf("expected KindInvalidSignatureEncoding, got %v", err)
	}
}

func TestVerify_MismatchIsFalseNotError(t *testing.T) {
	dir := t.TempDir()
	key := writeFile(t, dir, "blake3.txt", repeatedKey(0x41))
	in := writeFile(t, dir, "in.txt", []byte(fox))

	ok, err := Verify(in, key, EncodeSignature(make([]byte, Blake3SignatureSize)), FormatBlake3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatalf("zero signature verified")
	}
}

func TestVerify_CrossSchemeSignature(t *testing.T) {
	dir := t.TempDir()
	b3 := writeFile(t, dir, "blake3.txt", repeatedKey(0x41))
	_, pk := signingKeys(t, dir, FormatEd25519)
	in := writeFile(t, dir, "in.txt", []byte(fox))

	sig, err := Sign(in, b3, FormatBlake3)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	_, err = Verify(in, pk, sig, FormatEd25519)
	if !IsKind(err, KindInvalidSignatureEncoding) {
		t.Fatalf("expected KindInvalidSignatureEncoding, got %v", err)
	}
}

func TestKeyLengthGate_AllFormats(t *testing.T) {
	dir := t.TempDir()
	short := writeFile(t, dir, "short.key", make([]byte, 16))
	in := writeFile(t, dir, "in.txt", []byte(fox))

	for _, format := range []Format{FormatBlake3, FormatEd25519} {
		if _, err := Sign(in, short, format); !IsKind(err, KindKeyTooShort) {
			t.Fatalf("%s sign: expected KindKeyTooShort, got %v", format, err)
		}
		if _, err := Verify(in, short, EncodeSignature([]byte("x")), format); !IsKind(err, KindKeyTooShort) {
			t.Fatalf("%s verify: expected KindKeyTooShort, got %v", format, err)
		}
	}
}

func TestUnknownFormatFailsBeforeIO(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := Sign(missing, missing, Format(0)); !IsKind(err, KindUnknownFormat) {
		t.Fatalf("Sign: expected KindUnknownFormat, got %v", err)
	}
	if _, err := Verify(missing, missing, "", Format(42)); !IsKind(err, KindUnknownFormat) {
		t.Fatalf("Verify: expected KindUnknownFormat, got %v", err)
	}
	if _, err := GenerateKeys(Format(0)); !IsKind(err, KindUnknownFormat) {
		t.Fatalf("GenerateKeys: expected KindUnknownFormat, got %v", err)
	}
}

func TestMissingFilesAreIO(t *testing.T) {
	dir := t.TempDir()
	key := writeFile(t, dir, "blake3.txt", repeatedKey(0x41))
	in := writeFile(t, dir, "in.txt", []byte(fox))
	missing := filepath.Join(dir, "missing")

	if _, err := Sign(in, missing, FormatBlake3); !IsKind(err, KindIO) {
		t.Fatalf("missing key: expected KindIO, got %v", err)
	}
	if _, err := Sign(missing, key, FormatBlake3); !IsKind(err, KindIO) {
		t.Fatalf("missing input: expected KindIO, got %v", err)
	}
	if _, err := Sign(missing, key, FormatBlake3); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected underlying not-exist cause, got %v", err)
	}
}

func TestSignReaderVerifyReader(t *testing.T) {
	dir := t.TempDir()
	sk, vk := signingKeys(t, dir, FormatEd25519)

	sig, err := SignReader(bytes.NewReader([]byte(fox)), sk, FormatEd25519)
	if err != nil {
		t.Fatalf("SignReader: %v", err)
	}
	ok, err := VerifyReader(strings.NewReader(fox), vk, sig, FormatEd25519)
	if err != nil {
		t.Fatalf("VerifyReader: %v", err)
	}
	if !ok {
		t.Fatalf("signature did not verify")
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"blake3": FormatBlake3, "BLAKE3": FormatBlake3, " ed25519 ": FormatEd25519}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("rsa"); !IsKind(err, KindUnknownFormat) {
		t.Fatalf("expected KindUnknownFormat, got %v", err)
	}
}

func TestFormatSet(t *testing.T) {
	var f Format
	if err := f.Set("ed25519"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if f != FormatEd25519 {
		t.Fatalf("got %s", f)
	}
	if err := f.Set("nope"); err == nil {
		t.Fatalf("expected error")
	}
	if f != FormatEd25519 {
		t.Fatalf("failed Set must not modify the value")
	}
}

func TestDecodeSignature(t *testing.T) {
	raw := []byte{0xfb, 0xff, 0x00, 0x10}
	enc := EncodeSignature(raw)
	if enc != "-_8AEA" {
		t.Fatalf("unexpected encoding %q", enc)
	}
	got, err := DecodeSignature(enc + "\n")
	if err != nil {
		t.Fatalf("DecodeSignature: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch")
	}
	if _, err := DecodeSignature("-_8AEA=="); !IsKind(err, KindInvalidSignatureEncoding) {
		t.Fatalf("padded text: expected KindInvalidSignatureEncoding, got %v", err)
	}
}
