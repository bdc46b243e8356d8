package textsign

import (
	"encoding/base64"
	"strings"
)

// EncodeSignature renders raw signature bytes as unpadded URL-safe base64.
func EncodeSignature(sig []byte) string {
	return base64.RawURLEncoding.EncodeToString(sig)
}

// DecodeSignature parses signature text produced by EncodeSignature.
// Surrounding whitespace is ignored.
func DecodeSignature(s string) ([]byte, error) {
	sig, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, wrapError(KindInvalidSignatureEncoding, "TEXTSIGN-SIG-001", "invalid signature encoding", err)
	}
	return sig, nil
}
