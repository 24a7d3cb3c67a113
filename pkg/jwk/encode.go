package jwk

import (
	"fmt"

	"github.com/curvekey/curvekey-go/pkg/bytecodec"
	"github.com/curvekey/curvekey-go/pkg/crypto/curve"
)

// EncodePublic converts a raw public key to its public JWK. Weierstrass
// keys are accepted in either SEC1 form and always emitted from the
// uncompressed point, so compressed and uncompressed input produce the
// same JWK.
func EncodePublic(c curve.Curve, pub []byte) (*Key, error) {
	if err := checkSupported(c); err != nil {
		return nil, err
	}
	point, err := c.NormalizePublicKey(pub, false)
	if err != nil {
		return nil, fmt.Errorf("convert public key to JWK: %w", err)
	}

	switch c.KeyType() {
	case curve.KeyTypeEC:
		n := c.ScalarSize()
		if len(point) != 2*n+1 {
			return nil, fmt.Errorf("convert public key to JWK: %w: uncompressed point is %d bytes, want %d",
				curve.ErrInvalidPublicKey, len(point), 2*n+1)
		}
		return &Key{
			Kty: curve.KeyTypeEC,
			Crv: c.Name(),
			X:   bytecodec.Encode(point[1 : 1+n]),
			Y:   bytecodec.Encode(point[1+n:]),
			Alg: c.Algorithm(),
		}, nil
	default: // OKP
		return &Key{
			Kty: curve.KeyTypeOKP,
			Crv: c.Name(),
			X:   bytecodec.Encode(point),
			Alg: c.Algorithm(),
		}, nil
	}
}

// EncodePrivate converts a raw private key to its private JWK: the public
// JWK of the derived key plus the seed in d. The 64-byte Ed25519 form is
// reduced to its seed first, so both private forms encode identically.
func EncodePrivate(c curve.Curve, priv []byte) (*Key, error) {
	if err := checkSupported(c); err != nil {
		return nil, err
	}
	seed, err := c.NormalizePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	pub, err := c.PublicKey(seed, false)
	if err != nil {
		return nil, err
	}
	k, err := EncodePublic(c, pub)
	if err != nil {
		return nil, err
	}
	k.D = bytecodec.Encode(seed)
	return k, nil
}
