package textsign

import (
	"bytes"
	"testing"

	"filippo.io/edwards25519"
	"github.com/cloudflare/circl/sign/ed25519"
)

type deterministicReader struct{ b byte }

func (r *deterministicReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
		r.b++
	}
	return len(p), nil
}

func newEd25519Pair(t *testing.T) (*Ed25519Signer, *Ed25519Verifier) {
	t.Helper()
	bundle, err := GenerateEd25519Keys(nil)
	if err != nil {
		t.Fatalf("GenerateEd25519Keys: %v", err)
	}
	signer, err := NewEd25519Signer(bundle[0])
	if err != nil {
		t.Fatalf("NewEd25519Signer: %v", err)
	}
	verifier, err := NewEd25519Verifier(bundle[1])
	if err != nil {
		t.Fatalf("NewEd25519Verifier: %v", err)
	}
	return signer, verifier
}

func TestEd25519_GenerateSignVerify(t *testing.T) {
	signer, verifier := newEd25519Pair(t)

	sig, err := signer.Sign(bytes.NewReader([]byte(fox)))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != Ed25519SignatureSize {
		t.Fatalf("expected %d-byte signature, got %d", Ed25519SignatureSize, len(sig))
	}
	ok, err := verifier.Verify(bytes.NewReader([]byte(fox)), sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("signature did not verify")
	}

	otherSig, err := signer.Sign(bytes.NewReader([]byte("another message")))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err = verifier.Verify(bytes.NewReader([]byte(fox)), otherSig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("signature over a different message verified")
	}
}

func TestEd25519_EmptyInputRoundTrip(t *testing.T) {
	signer, verifier := newEd25519Pair(t)
	sig, err := signer.Sign(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := verifier.Verify(bytes.NewReader(nil), sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("empty input did not verify")
	}
}

func TestEd25519_GenerateBundleLayout(t *testing.T) {
	bundle, err := GenerateEd25519Keys(&deterministicReader{})
	if err != nil {
		t.Fatalf("GenerateEd25519Keys: %v", err)
	}
	if len(bundle) != 2 {
		t.Fatalf("expected [private, public], got %d elements", len(bundle))
	}
	if len(bundle[0]) != ed25519.SeedSize || len(bundle[1]) != ed25519.PublicKeySize {
		t.Fatalf("unexpected sizes %d/%d", len(bundle[0]), len(bundle[1]))
	}
	signer, err := NewEd25519Signer(bundle[0])
	if err != nil {
		t.Fatalf("NewEd25519Signer: %v", err)
	}
	if !bytes.Equal(signer.PublicKey(), bundle[1]) {
		t.Fatalf("public key does not match the private seed")
	}

	again, err := GenerateEd25519Keys(&deterministicReader{})
	if err != nil {
		t.Fatalf("GenerateEd25519Keys: %v", err)
	}
	if !bytes.Equal(bundle[0], again[0]) {
		t.Fatalf("expected the same seed from the same random stream")
	}
}

func TestEd25519_TamperedInputFails(t *testing.T) {
	signer, verifier := newEd25519Pair(t)
	msg := []byte(fox)
	sig, err := signer.Sign(bytes.NewReader(msg))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	for i := range msg {
		for bit := 0; bit < 8; bit++ {
			tampered := append([]byte(nil), msg...)
			tampered[i] ^= 1 << bit
			ok, err := verifier.Verify(bytes.NewReader(tampered), sig)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if ok {
				t.Fatalf("flip of byte %d bit %d still verified", i, bit)
			}
		}
	}
}

func TestEd25519_MalformedSignatureBytesAreFalse(t *testing.T) {
	_, verifier := newEd25519Pair(t)
	garbage := bytes.Repeat([]byte{0xff}, Ed25519SignatureSize)
	ok, err := verifier.Verify(bytes.NewReader([]byte(fox)), garbage)
	if err != nil {
		t.Fatalf("expected malformed signature to be a false result, got %v", err)
	}
	if ok {
		t.Fatalf("garbage signature verified")
	}
}

func TestEd25519_WrongLengthSignatureIsEncodingError(t *testing.T) {
	_, verifier := newEd25519Pair(t)
	for _, n := range []int{0, 32, 63, 65} {
		_, err := verifier.Verify(bytes.NewReader([]byte(fox)), make([]byte, n))
		if !IsKind(err, KindInvalidSignatureEncoding) {
			t.Fatalf("len %d: expected KindInvalidSignatureEncoding, got %v", n, err)
		}
	}
}

func TestCrossScheme_Blake3SignatureRejectedByEd25519(t *testing.T) {
	b3, err := NewBlake3(repeatedKey(0x41))
	if err != nil {
		t.Fatalf("NewBlake3: %v", err)
	}
	sig, err := b3.Sign(bytes.NewReader([]byte(fox)))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	decoded, err := DecodeSignature(EncodeSignature(sig))
	if err != nil {
		t.Fatalf("DecodeSignature: %v", err)
	}
	_, verifier := newEd25519Pair(t)
	_, err = verifier.Verify(bytes.NewReader([]byte(fox)), decoded)
	if !IsKind(err, KindInvalidSignatureEncoding) {
		t.Fatalf("expected KindInvalidSignatureEncoding, got %v", err)
	}
}

func TestEd25519_KeyTooShort(t *testing.T) {
	if _, err := NewEd25519Signer(make([]byte, 31)); !IsKind(err, KindKeyTooShort) {
		t.Fatalf("signer: expected KindKeyTooShort, got %v", err)
	}
	if _, err := NewEd25519Verifier(make([]byte, 31)); !IsKind(err, KindKeyTooShort) {
		t.Fatalf("verifier: expected KindKeyTooShort, got %v", err)
	}
}

func TestEd25519_VerifierRejectsInvalidPointEncoding(t *testing.T) {
	var rejected int
	for b := 0; b < 256; b++ {
		key := make([]byte, KeySize)
		key[0] = byte(b)
		_, perr := new(edwards25519.Point).SetBytes(key)
		_, err := NewEd25519Verifier(key)
		if perr != nil {
			rejected++
			if !IsKind(err, KindInvalidKeyEncoding) {
				t.Fatalf("y=%d: expected KindInvalidKeyEncoding, got %v", b, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("y=%d: valid point rejected: %v", b, err)
		}
	}
	if rejected == 0 {
		t.Fatalf("expected at least one candidate encoding off the curve")
	}
}

func TestEd25519_VerifierCannotSign(t *testing.T) {
	_, verifier := newEd25519Pair(t)
	if _, ok := any(verifier).(Signer); ok {
		t.Fatalf("verifier must not implement Signer")
	}
	signer, _ := newEd25519Pair(t)
	if _, ok := any(signer).(Verifier); ok {
		t.Fatalf("signer must not implement Verifier")
	}
}
