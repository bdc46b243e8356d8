package textsign

import (
	"bytes"
	"errors"
	"io"

	"xdao.co/rcli/input"
)

// Sign signs the raw bytes of source (input.Stdin or a file path) with the
// key at keyPath and returns the encoded signature.
//
// The input is never trimmed: trailing newlines are part of what is signed.
func Sign(source, keyPath string, format Format) (string, error) {
	signer, err := loadSigner(keyPath, format)
	if err != nil {
		return "", err
	}
	msg, err := readSource(source)
	if err != nil {
		return "", err
	}
	return sign(signer, bytes.NewReader(msg))
}

// SignReader is Sign over an in-memory or streamed message.
func SignReader(r io.Reader, keyPath string, format Format) (string, error) {
	signer, err := loadSigner(keyPath, format)
	if err != nil {
		return "", err
	}
	return sign(signer, r)
}

// Verify checks signature against the raw bytes of source using the
// verifying key at keyPath.
//
// A malformed signature string is an error of KindInvalidSignatureEncoding;
// a well-formed signature that does not match is (false, nil).
func Verify(source, keyPath, signature string, format Format) (bool, error) {
	verifier, sig, err := prepareVerify(keyPath, signature, format)
	if err != nil {
		return false, err
	}
	msg, err := readSource(source)
	if err != nil {
		return false, err
	}
	return verifier.Verify(bytes.NewReader(msg), sig)
}

// VerifyReader is Verify over an in-memory or streamed message.
func VerifyReader(r io.Reader, keyPath, signature string, format Format) (bool, error) {
	verifier, sig, err := prepareVerify(keyPath, signature, format)
	if err != nil {
		return false, err
	}
	return verifier.Verify(r, sig)
}

// GenerateKeys returns fresh key material for format. Persisting the bundle
// is the caller's job; see Format.KeyFileNames.
func GenerateKeys(format Format) (KeyBundle, error) {
	gen, err := generatorFor(format)
	if err != nil {
		return nil, err
	}
	return gen()
}

func generatorFor(format Format) (KeyGenerator, error) {
	switch format {
	case FormatBlake3:
		return GenerateBlake3Key, nil
	case FormatEd25519:
		return func() (KeyBundle, error) { return GenerateEd25519Keys(nil) }, nil
	default:
		return nil, format.validate()
	}
}

func loadSigner(keyPath string, format Format) (Signer, error) {
	switch format {
	case FormatBlake3:
		return LoadBlake3(keyPath)
	case FormatEd25519:
		return LoadEd25519Signer(keyPath)
	default:
		return nil, format.validate()
	}
}

func loadVerifier(keyPath string, format Format) (Verifier, error) {
	switch format {
	case FormatBlake3:
		return LoadBlake3(keyPath)
	case FormatEd25519:
		return LoadEd25519Verifier(keyPath)
	default:
		return nil, format.validate()
	}
}

func prepareVerify(keyPath, signature string, format Format) (Verifier, []byte, error) {
	verifier, err := loadVerifier(keyPath, format)
	if err != nil {
		return nil, nil, err
	}
	sig, err := DecodeSignature(signature)
	if err != nil {
		return nil, nil, err
	}
	return verifier, sig, nil
}

func sign(signer Signer, r io.Reader) (string, error) {
	sig, err := signer.Sign(r)
	if err != nil {
		return "", err
	}
	return EncodeSignature(sig), nil
}

func readSource(source string) ([]byte, error) {
	b, err := input.Read(source, false)
	if err != nil {
		if errors.Is(err, input.ErrMalformedInput) {
			return nil, wrapError(KindMalformedInput, "TEXTSIGN-IN-001", "malformed input", err)
		}
		return nil, wrapError(KindIO, "TEXTSIGN-IO-001", "read input", err)
	}
	return b, nil
}
