// Package keys persists key material produced by textsign.GenerateKeys.
//
// textsign never writes files; this package is the caller-side half that
// turns a KeyBundle into named files (blake3.txt, or ed25519.sk and
// ed25519.pk) with restrictive permissions, and reports a CID fingerprint for
// each file so operators can compare keys without printing them.
package keys
