// Package jwk converts keys between their raw byte forms and JSON Web Keys.
//
// Two key types are produced and accepted, with this fixed field profile:
//
//	kty "EC"  (RFC 7518): crv P-256 | P-384 | P-521 | secp256k1,
//	                      alg ES256 | ES384 | ES512 | ES256K, x, y, d
//	kty "OKP" (RFC 8037): crv Ed25519, alg EdDSA, x, d
//
// All binary fields are unpadded base64url. Decoding validates fields
// strictly, in the order kty, crv, x, y, alg, then d: each must decode
// cleanly and have the exact length the curve dictates, and each failure
// names the offending field. Only alg may be absent (Web Crypto exports
// EC keys without it); when present it must match the curve. Private keys are additionally checked
// for consistency: the public key derived from d must equal the x (and y)
// the JWK claims, so a JWK cannot smuggle a mismatched pair through.
//
// Decoding a public JWK deliberately stops at the structural checks and
// does not test that (x, y) lies on the curve; that is the public key
// validator's job, at the moment the key is used.
//
// X25519 has no entry in the profile above, so the codec rejects it.
package jwk

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/curvekey/curvekey-go/pkg/bytecodec"
	"github.com/curvekey/curvekey-go/pkg/crypto/curve"
)

// Key is a JSON Web Key restricted to the EC and OKP members this codec
// emits. Field order here is marshal order, so encoding is deterministic:
// kty, crv, x, y, alg, d.
type Key struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y,omitempty"`
	Alg string `json:"alg,omitempty"`
	D   string `json:"d,omitempty"`
	Kid string `json:"kid,omitempty"`
	Use string `json:"use,omitempty"`
}

var (
	// ErrFieldMissing indicates a required JWK field that is absent or
	// empty.
	ErrFieldMissing = fmt.Errorf("jwk field missing")

	// ErrFieldType indicates a JWK field carrying the wrong JSON type.
	ErrFieldType = fmt.Errorf("jwk field has wrong type")

	// ErrFieldMalformed indicates a JWK field that is not valid unpadded
	// base64url.
	ErrFieldMalformed = fmt.Errorf("jwk field is not valid base64url")

	// ErrFieldLength indicates a JWK field that decodes to the wrong
	// number of bytes.
	ErrFieldLength = fmt.Errorf("jwk field has wrong decoded length")

	// ErrFieldMismatch indicates a JWK field whose value contradicts the
	// curve: wrong kty, crv or alg.
	ErrFieldMismatch = fmt.Errorf("jwk field mismatch")

	// ErrKeyMismatch indicates a private JWK whose d does not derive the
	// public key in x/y.
	ErrKeyMismatch = fmt.Errorf("jwk private key does not derive its public key")

	// ErrUnsupportedKey indicates a curve outside the JWK profile, such
	// as X25519.
	ErrUnsupportedKey = fmt.Errorf("curve has no jwk mapping")
)

// Parse decodes JSON into a Key. A field of the wrong JSON type is
// reported as ErrFieldType naming the field; content validation happens
// later, in DecodePublic or DecodePrivate.
func Parse(data []byte) (*Key, error) {
	var k Key
	if err := json.Unmarshal(data, &k); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, fmt.Errorf("%w: %s", ErrFieldType, typeErr.Field)
		}
		return nil, fmt.Errorf("parse jwk: %w", err)
	}
	return &k, nil
}

// fieldValue requires a field to be present, base64url, and exactly size
// bytes once decoded.
func fieldValue(field, value string, size int) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: %s", ErrFieldMissing, field)
	}
	b, err := bytecodec.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldMalformed, field)
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: %s decodes to %d bytes, want %d", ErrFieldLength, field, len(b), size)
	}
	return b, nil
}

// fieldLiteral requires a field to be present and equal to want.
func fieldLiteral(field, value, want string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrFieldMissing, field)
	}
	if value != want {
		return fmt.Errorf("%w: %s is %q, want %q", ErrFieldMismatch, field, value, want)
	}
	return nil
}

// fieldOptionalLiteral is fieldLiteral for fields that may be absent: an
// empty value passes, a present one must still equal want.
func fieldOptionalLiteral(field, value, want string) error {
	if value == "" {
		return nil
	}
	return fieldLiteral(field, value, want)
}

// checkSupported rejects curves outside the JWK profile. The rule is
// simple: a curve with no JOSE signature algorithm has no JWK mapping.
func checkSupported(c curve.Curve) error {
	if c.Algorithm() == "" {
		return fmt.Errorf("%w: %s", ErrUnsupportedKey, c.Name())
	}
	switch c.KeyType() {
	case curve.KeyTypeEC, curve.KeyTypeOKP:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedKey, c.Name())
	}
}
