package jose

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/golang-jwt/jwt/v5"

	"github.com/curvekey/curvekey-go/pkg/crypto/curve"
)

// methodForCurve picks the golang-jwt method for a signing curve: the
// native methods where golang-jwt has them, the ES256K adapter where it
// does not.
func methodForCurve(name string) (jwt.SigningMethod, error) {
	switch name {
	case curve.P256:
		return jwt.SigningMethodES256, nil
	case curve.P384:
		return jwt.SigningMethodES384, nil
	case curve.P521:
		return jwt.SigningMethodES512, nil
	case curve.Secp256k1:
		return SigningMethodES256K, nil
	case curve.Ed25519:
		return jwt.SigningMethodEdDSA, nil
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, name)
	}
}

func nistParams(name string) elliptic.Curve {
	switch name {
	case curve.P256:
		return elliptic.P256()
	case curve.P384:
		return elliptic.P384()
	case curve.P521:
		return elliptic.P521()
	default:
		return nil
	}
}

// signingKey converts a normalized seed into whatever the curve's method
// expects: *ecdsa.PrivateKey for the NIST algorithms, ed25519.PrivateKey
// for EdDSA, and the seed itself for ES256K.
func signingKey(c curve.Signer, seed []byte) (interface{}, error) {
	switch c.Name() {
	case curve.P256, curve.P384, curve.P521:
		pub, err := c.PublicKey(seed, false)
		if err != nil {
			return nil, err
		}
		ecdsaPub, err := nistPublicKey(c, pub)
		if err != nil {
			return nil, err
		}
		return &ecdsa.PrivateKey{
			PublicKey: *ecdsaPub,
			D:         new(big.Int).SetBytes(seed),
		}, nil
	case curve.Secp256k1:
		return bytes.Clone(seed), nil
	case curve.Ed25519:
		return ed25519.NewKeyFromSeed(seed), nil
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, c.Name())
	}
}

// verifyingKey converts a raw public key into whatever the curve's method
// expects for verification.
func verifyingKey(c curve.Signer, pub []byte) (interface{}, error) {
	switch c.Name() {
	case curve.P256, curve.P384, curve.P521:
		return nistPublicKey(c, pub)
	case curve.Secp256k1:
		normalized, err := c.NormalizePublicKey(pub, true)
		if err != nil {
			return nil, err
		}
		return normalized, nil
	case curve.Ed25519:
		normalized, err := c.NormalizePublicKey(pub, false)
		if err != nil {
			return nil, err
		}
		return ed25519.PublicKey(normalized), nil
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, c.Name())
	}
}

func nistPublicKey(c curve.Curve, pub []byte) (*ecdsa.PublicKey, error) {
	point, err := c.NormalizePublicKey(pub, false)
	if err != nil {
		return nil, err
	}
	n := c.ScalarSize()
	return &ecdsa.PublicKey{
		Curve: nistParams(c.Name()),
		X:     new(big.Int).SetBytes(point[1 : 1+n]),
		Y:     new(big.Int).SetBytes(point[1+n:]),
	}, nil
}
