package engine

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// montgomeryEngine drives X25519 through x/crypto/curve25519. The family
// only does key agreement; there is no signature capability to implement.
//
// Every 32-byte string is a syntactically valid u coordinate, so point
// validation is a length check. Hostile low-order points surface at
// agreement time as the all-zero secret, which curve25519.X25519 rejects.
type montgomeryEngine struct{}

// NewX25519 returns the X25519 engine (32-byte scalars and coordinates).
func NewX25519() ECDHEngine {
	return montgomeryEngine{}
}

func (montgomeryEngine) ScalarSize() int { return curve25519.ScalarSize }

func (montgomeryEngine) GenerateSeed(random func(size int) ([]byte, error)) ([]byte, error) {
	seed, err := random(curve25519.ScalarSize)
	if err != nil {
		return nil, err
	}
	if len(seed) != curve25519.ScalarSize {
		return nil, fmt.Errorf("%w: random source returned %d bytes, want %d", ErrInvalidScalar, len(seed), curve25519.ScalarSize)
	}
	return seed, nil
}

// PublicKey derives the public u coordinate. Clamping of the scalar happens
// inside X25519, so the stored seed stays exactly as supplied.
func (montgomeryEngine) PublicKey(seed []byte, _ bool) ([]byte, error) {
	if len(seed) != curve25519.ScalarSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidScalar, len(seed), curve25519.ScalarSize)
	}
	pub, err := curve25519.X25519(seed, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return pub, nil
}

func (montgomeryEngine) NormalizePoint(point []byte, _ bool) ([]byte, error) {
	if len(point) != curve25519.PointSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPoint, len(point), curve25519.PointSize)
	}
	return bytes.Clone(point), nil
}

func (montgomeryEngine) SharedSecret(seed, point []byte) ([]byte, error) {
	if len(seed) != curve25519.ScalarSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidScalar, len(seed), curve25519.ScalarSize)
	}
	if len(point) != curve25519.PointSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPoint, len(point), curve25519.PointSize)
	}
	secret, err := curve25519.X25519(seed, point)
	if err != nil {
		// With the lengths checked, the only failure left is the all-zero
		// output from a low-order peer point.
		return nil, ErrDegenerateSecret
	}
	return secret, nil
}
