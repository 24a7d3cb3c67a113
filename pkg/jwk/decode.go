package jwk

import (
	"fmt"

	"github.com/curvekey/curvekey-go/pkg/bytecodec"
	"github.com/curvekey/curvekey-go/pkg/crypto/curve"
)

// DecodePublic converts a public JWK to the raw public key for c.
// Fields are validated in order kty, crv, x, y, alg; the first failure
// wins and names its field. alg is the one optional field: Web Crypto
// exports EC keys without it, so an absent alg passes, but a present alg
// must match the curve. Weierstrass output is the uncompressed point
// 0x04||x||y, assembled without an on-curve check; Ed25519 output is the
// 32-byte x.
func DecodePublic(c curve.Curve, k *Key) ([]byte, error) {
	if err := checkSupported(c); err != nil {
		return nil, err
	}
	switch c.KeyType() {
	case curve.KeyTypeEC:
		return decodePublicEC(c, k)
	default: // OKP
		return decodePublicOKP(c, k)
	}
}

func decodePublicEC(c curve.Curve, k *Key) ([]byte, error) {
	if err := fieldLiteral("kty", k.Kty, curve.KeyTypeEC); err != nil {
		return nil, err
	}
	if err := fieldLiteral("crv", k.Crv, c.Name()); err != nil {
		return nil, err
	}
	n := c.ScalarSize()
	x, err := fieldValue("x", k.X, n)
	if err != nil {
		return nil, err
	}
	y, err := fieldValue("y", k.Y, n)
	if err != nil {
		return nil, err
	}
	if err := fieldOptionalLiteral("alg", k.Alg, c.Algorithm()); err != nil {
		return nil, err
	}
	raw := make([]byte, 0, 2*n+1)
	raw = append(raw, 0x04)
	raw = append(raw, x...)
	raw = append(raw, y...)
	return raw, nil
}

func decodePublicOKP(c curve.Curve, k *Key) ([]byte, error) {
	if err := fieldLiteral("kty", k.Kty, curve.KeyTypeOKP); err != nil {
		return nil, err
	}
	if err := fieldLiteral("crv", k.Crv, c.Name()); err != nil {
		return nil, err
	}
	x, err := fieldValue("x", k.X, c.ScalarSize())
	if err != nil {
		return nil, err
	}
	if err := fieldOptionalLiteral("alg", k.Alg, c.Algorithm()); err != nil {
		return nil, err
	}
	return x, nil
}

// DecodePrivate converts a private JWK to the raw private key for c. It
// runs the full public validation first, then requires d and cross-checks
// it: the public key derived from d must byte-equal the one the JWK
// claims. The comparison is constant time.
func DecodePrivate(c curve.Curve, k *Key) ([]byte, error) {
	pub, err := DecodePublic(c, k)
	if err != nil {
		return nil, err
	}
	d, err := fieldValue("d", k.D, c.ScalarSize())
	if err != nil {
		return nil, err
	}
	derived, err := c.PublicKey(d, false)
	if err != nil {
		return nil, fmt.Errorf("%w: d: %v", ErrKeyMismatch, err)
	}
	if !bytecodec.Equal(derived, pub) {
		return nil, ErrKeyMismatch
	}
	return d, nil
}
