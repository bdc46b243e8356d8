package textsign

import (
	"crypto/rand"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/cloudflare/circl/sign/ed25519"
)

// Ed25519SignatureSize is the length of an Ed25519 signature.
const Ed25519SignatureSize = ed25519.SignatureSize

// Ed25519Signer signs with an Ed25519 private key. It cannot verify.
type Ed25519Signer struct {
	key [ed25519.PrivateKeySize]byte
}

// NewEd25519Signer builds a signer from the first 32 bytes of seed.
func NewEd25519Signer(seed []byte) (*Ed25519Signer, error) {
	k, err := fixedKey(seed, "ed25519 signing")
	if err != nil {
		return nil, err
	}
	s := &Ed25519Signer{}
	copy(s.key[:], ed25519.NewKeyFromSeed(k[:]))
	return s, nil
}

// LoadEd25519Signer reads an Ed25519 private seed from path.
func LoadEd25519Signer(path string) (*Ed25519Signer, error) {
	return loadKeyFile(path, NewEd25519Signer)
}

func (s *Ed25519Signer) Sign(r io.Reader) ([]byte, error) {
	msg, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(ed25519.PrivateKey(s.key[:]), msg), nil
}

// PublicKey returns a copy of the public half of the key.
func (s *Ed25519Signer) PublicKey() []byte {
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, s.key[ed25519.SeedSize:])
	return pub
}

// Ed25519Verifier checks Ed25519 signatures with a public key. It cannot sign.
type Ed25519Verifier struct {
	key [ed25519.PublicKeySize]byte
}

// NewEd25519Verifier builds a verifier from the first 32 bytes of pub. The
// bytes must encode a point on the curve.
func NewEd25519Verifier(pub []byte) (*Ed25519Verifier, error) {
	k, err := fixedKey(pub, "ed25519 verifying")
	if err != nil {
		return nil, err
	}
	if _, err := new(edwards25519.Point).SetBytes(k[:]); err != nil {
		return nil, wrapError(KindInvalidKeyEncoding, "TEXTSIGN-KEY-002", "invalid ed25519 public key encoding", err)
	}
	return &Ed25519Verifier{key: k}, nil
}

// LoadEd25519Verifier reads an Ed25519 public key from path.
func LoadEd25519Verifier(path string) (*Ed25519Verifier, error) {
	return loadKeyFile(path, NewEd25519Verifier)
}

// Verify checks sig over everything read from r.
//
// A sig that is not exactly Ed25519SignatureSize bytes fails with
// KindInvalidSignatureEncoding. Every other failure is (false, nil).
func (v *Ed25519Verifier) Verify(r io.Reader, sig []byte) (bool, error) {
	if len(sig) != Ed25519SignatureSize {
		return false, newError(KindInvalidSignatureEncoding, "TEXTSIGN-SIG-002",
			fmt.Sprintf("ed25519 signature must be %d bytes, got %d", Ed25519SignatureSize, len(sig)))
	}
	var fixed [Ed25519SignatureSize]byte
	copy(fixed[:], sig)

	msg, err := readAll(r)
	if err != nil {
		return false, err
	}
	return ed25519.Verify(ed25519.PublicKey(v.key[:]), msg, fixed[:]), nil
}

// GenerateEd25519Keys returns a [private seed, public key] bundle drawn
// from rand. A nil rand uses crypto/rand.
func GenerateEd25519Keys(rand io.Reader) (KeyBundle, error) {
	if rand == nil {
		rand = cryptoRand
	}
	pub, priv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, wrapError(KindIO, "TEXTSIGN-IO-003", "generate ed25519 key", err)
	}
	return KeyBundle{append([]byte(nil), priv.Seed()...), append([]byte(nil), pub...)}, nil
}

var cryptoRand io.Reader = rand.Reader
