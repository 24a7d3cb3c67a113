package curve

import (
	"fmt"
)

// FromName returns the Curve implementation for a curve name. Names are
// exact wire names, matching JWK "crv" values case-sensitively. The random
// source feeds key generation only; pass NoRandom for a curve restricted
// to deterministic operations.
func FromName(name string, random RandomSource) (Curve, error) {
	switch name {
	case P256:
		return NewP256(random), nil
	case P384:
		return NewP384(random), nil
	case P521:
		return NewP521(random), nil
	case Secp256k1:
		return NewSecp256k1(random), nil
	case Ed25519:
		return NewEd25519(random), nil
	case X25519:
		return NewX25519(random), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, name)
	}
}

// FromAlgorithm resolves a JOSE algorithm to its curve and constructs it.
// EdDSA fails here: it identifies a family, not a curve.
func FromAlgorithm(algorithm string, random RandomSource) (Curve, error) {
	name, err := ResolveName("", algorithm)
	if err != nil {
		return nil, err
	}
	return FromName(name, random)
}

// SupportedCurves lists the curve names understood by FromName.
func SupportedCurves() []string {
	return []string{P256, P384, P521, Secp256k1, Ed25519, X25519}
}
