package textsign

import (
	"fmt"
	"io"
	"os"
)

// KeySize is the number of key bytes every scheme consumes. Longer key
// material is accepted and truncated to its first KeySize bytes.
const KeySize = 32

// Signer produces a signature over everything read from r.
type Signer interface {
	Sign(r io.Reader) ([]byte, error)
}

// Verifier checks sig against everything read from r.
//
// A signature that does not match is reported as (false, nil).
type Verifier interface {
	Verify(r io.Reader, sig []byte) (bool, error)
}

// KeyBundle is the ordered output of key generation: one element for
// symmetric schemes, two (private, public) for asymmetric ones.
type KeyBundle [][]byte

// KeyGenerator produces fresh key material for one scheme.
type KeyGenerator func() (KeyBundle, error)

var (
	_ Signer   = (*Blake3)(nil)
	_ Verifier = (*Blake3)(nil)
	_ Signer   = (*Ed25519Signer)(nil)
	_ Verifier = (*Ed25519Verifier)(nil)
)

// loadKeyFile reads a key file and hands its bytes to a scheme constructor.
func loadKeyFile[T any](path string, newKey func([]byte) (T, error)) (T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, wrapError(KindIO, "TEXTSIGN-IO-002", fmt.Sprintf("read key %s", path), err)
	}
	return newKey(b)
}

// fixedKey copies the first KeySize bytes of b, rejecting shorter material.
func fixedKey(b []byte, scheme string) ([KeySize]byte, error) {
	var key [KeySize]byte
	if len(b) < KeySize {
		return key, newError(KindKeyTooShort, "TEXTSIGN-KEY-001",
			fmt.Sprintf("key length is too short for %s, need at least %d bytes, got %d", scheme, KeySize, len(b)))
	}
	copy(key[:], b[:KeySize])
	return key, nil
}

func readAll(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapError(KindIO, "TEXTSIGN-IO-001", "read input", err)
	}
	return b, nil
}
