// Package textsign signs and verifies arbitrary byte input with a pluggable
// scheme selected by Format.
//
// Two schemes ship:
//   - blake3: a BLAKE3 keyed hash. One 32-byte key both signs and verifies.
//   - ed25519: Ed25519 signatures. Ed25519Signer holds the private seed and
//     Ed25519Verifier holds the public key; neither can do the other's job.
//
// Key material is read from files, validated (at least 32 bytes, of which
// exactly the first 32 are used) and discarded when the call returns.
// Signatures travel as unpadded URL-safe base64 text.
//
// Nothing in this package logs or persists state. Writing generated keys is
// left to the caller (see package keys).
package textsign
