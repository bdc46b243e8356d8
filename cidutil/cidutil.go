// Package cidutil derives content identifiers used as fingerprints for key
// files and as HTTP entity tags.
package cidutil

import (
	"bytes"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Of returns the CIDv1 of data using the "raw" multicodec and a sha2-256
// multihash.
func Of(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// String returns Of(data) as text.
func String(data []byte) string {
	id, err := Of(data)
	if err != nil {
		// multihash.Sum only fails for unknown codes or bad lengths.
		return ""
	}
	return id.String()
}

// Matches reports whether s is the CID of data. Any CID version or base
// encoding of the same multihash matches.
func Matches(data []byte, s string) bool {
	want, err := cid.Decode(s)
	if err != nil || !want.Defined() {
		return false
	}
	got, err := Of(data)
	if err != nil {
		return false
	}
	return bytes.Equal(want.Hash(), got.Hash())
}
