package engine

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
)

// edwardsEngine drives Ed25519 through crypto/ed25519. Point validation
// goes through filippo.io/edwards25519, which rejects 32-byte strings
// that decode to no point on the curve.
//
// Ed25519 is a pure scheme: no prehash, and signatures never carry a
// recovery code.
type edwardsEngine struct{}

// NewEd25519 returns the Ed25519 engine (32-byte seeds, 64-byte signatures).
func NewEd25519() SignEngine {
	return edwardsEngine{}
}

func (edwardsEngine) ScalarSize() int { return ed25519.SeedSize }

func (edwardsEngine) GenerateSeed(random func(size int) ([]byte, error)) ([]byte, error) {
	seed, err := random(ed25519.SeedSize)
	if err != nil {
		return nil, err
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: random source returned %d bytes, want %d", ErrInvalidScalar, len(seed), ed25519.SeedSize)
	}
	return seed, nil
}

func (edwardsEngine) PublicKey(seed []byte, _ bool) ([]byte, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidScalar, len(seed), ed25519.SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return bytes.Clone(priv[ed25519.SeedSize:]), nil
}

func (edwardsEngine) NormalizePoint(point []byte, _ bool) ([]byte, error) {
	if len(point) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPoint, len(point), ed25519.PublicKeySize)
	}
	if _, err := edwards25519.NewIdentityPoint().SetBytes(point); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return bytes.Clone(point), nil
}

func (edwardsEngine) Sign(message, seed []byte) ([]byte, byte, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, 0, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidScalar, len(seed), ed25519.SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return ed25519.Sign(priv, message), 0, nil
}

func (edwardsEngine) Verify(sig, message, point []byte) bool {
	if len(sig) != ed25519.SignatureSize || len(point) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(point), message, sig)
}
