// Package bytecodec provides the small byte-level primitives shared by the
// key and signature codecs: unpadded base64url encoding, constant-time
// comparison, and zero-value detection.
//
// JWK fields use the base64url alphabet without padding (RFC 7515 section 2,
// "Base64url Encoding"). Decode is strict: padded or otherwise malformed
// input is rejected rather than repaired.
package bytecodec

import (
	"crypto/subtle"
	"encoding/base64"
)

// Encode returns the unpadded base64url encoding of b.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode reverses Encode. Input containing padding or characters outside
// the base64url alphabet is an error.
func Decode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// AllZero reports whether b consists entirely of zero bytes. An empty or
// nil slice counts as all-zero. The scan does not short-circuit, so timing
// does not reveal the position of the first nonzero byte.
func AllZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

// Equal reports whether a and b have the same length and contents in
// constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
