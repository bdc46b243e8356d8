package textsign

import (
	"crypto/subtle"
	"io"

	"lukechampine.com/blake3"

	"xdao.co/rcli/genpass"
)

// Blake3SignatureSize is the length of a BLAKE3 keyed-hash signature.
const Blake3SignatureSize = 32

// Blake3 signs and verifies with a BLAKE3 keyed hash. The same key does both.
type Blake3 struct {
	key [KeySize]byte
}

// NewBlake3 builds a Blake3 scheme from the first 32 bytes of key.
func NewBlake3(key []byte) (*Blake3, error) {
	k, err := fixedKey(key, "blake3 signing")
	if err != nil {
		return nil, err
	}
	return &Blake3{key: k}, nil
}

// LoadBlake3 reads a Blake3 key from path.
func LoadBlake3(path string) (*Blake3, error) {
	return loadKeyFile(path, NewBlake3)
}

func (b *Blake3) Sign(r io.Reader) ([]byte, error) {
	return b.digest(r)
}

// Verify recomputes the keyed hash over r and compares it with sig in
// constant time. A sig of the wrong length never matches.
func (b *Blake3) Verify(r io.Reader, sig []byte) (bool, error) {
	want, err := b.digest(r)
	if err != nil {
		return false, err
	}
	if len(sig) != Blake3SignatureSize {
		return false, nil
	}
	return subtle.ConstantTimeCompare(want, sig) == 1, nil
}

func (b *Blake3) digest(r io.Reader) ([]byte, error) {
	h := blake3.New(Blake3SignatureSize, b.key[:])
	if _, err := io.Copy(h, r); err != nil {
		return nil, wrapError(KindIO, "TEXTSIGN-IO-001", "read input", err)
	}
	return h.Sum(nil), nil
}

// GenerateBlake3Key returns a single-element bundle holding a fresh
// 32-character key drawn from every password character class.
func GenerateBlake3Key() (KeyBundle, error) {
	pw, err := genpass.Generate(genpass.Options{
		Length: KeySize,
		Upper:  true,
		Lower:  true,
		Number: true,
		Symbol: true,
	})
	if err != nil {
		return nil, err
	}
	return KeyBundle{[]byte(pw.Value)}, nil
}
