package curve

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/curvekey/curvekey-go/pkg/bytecodec"
	"github.com/curvekey/curvekey-go/pkg/crypto/engine"
)

// Montgomery is the X25519 curve. It only does key agreement: there is no
// signature algorithm bound to it, so Algorithm returns "" and the JWK
// codec refuses it.
type Montgomery struct {
	name   string
	eng    engine.ECDHEngine
	random RandomSource
}

var _ KeyAgreer = (*Montgomery)(nil)

// NewX25519 returns X25519 backed by the given random source, or the
// system source if random is nil.
func NewX25519(random RandomSource) *Montgomery {
	if random == nil {
		random = System
	}
	return &Montgomery{name: X25519, eng: engine.NewX25519(), random: random}
}

func (c *Montgomery) Name() string      { return c.name }
func (c *Montgomery) Algorithm() string { return "" }
func (c *Montgomery) KeyType() string   { return KeyTypeOKP }
func (c *Montgomery) ScalarSize() int   { return c.eng.ScalarSize() }

func (c *Montgomery) GeneratePrivateKey() ([]byte, error) {
	return c.eng.GenerateSeed(c.random)
}

func (c *Montgomery) NormalizePrivateKey(raw []byte) ([]byte, error) {
	n := c.ScalarSize()
	if len(raw) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKey, len(raw), n)
	}
	if bytecodec.AllZero(raw) {
		return nil, fmt.Errorf("%w: all-zero seed", ErrInvalidPrivateKey)
	}
	return bytes.Clone(raw), nil
}

func (c *Montgomery) PublicKey(priv []byte, _ bool) ([]byte, error) {
	seed, err := c.NormalizePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	pub, err := c.eng.PublicKey(seed, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return pub, nil
}

func (c *Montgomery) NormalizePublicKey(pub []byte, _ bool) ([]byte, error) {
	if err := c.ValidatePublicKey(pub); err != nil {
		return nil, err
	}
	return bytes.Clone(pub), nil
}

// ValidatePublicKey checks length and the all-zero case. Any other
// 32-byte string is a legal u coordinate; hostile low-order points are
// caught at agreement time by the zero-secret check.
func (c *Montgomery) ValidatePublicKey(pub []byte) error {
	if len(pub) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPublicKey)
	}
	if bytecodec.AllZero(pub) {
		return fmt.Errorf("%w: all-zero", ErrInvalidPublicKey)
	}
	if _, err := c.eng.NormalizePoint(pub, false); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return nil
}

func (c *Montgomery) IsValidPublicKey(pub []byte) bool {
	return c.ValidatePublicKey(pub) == nil
}

// SharedSecret returns the raw 32-byte u coordinate of the agreement. No
// prefix stripping: the Montgomery ladder output has no format byte.
func (c *Montgomery) SharedSecret(priv, pub []byte) ([]byte, error) {
	seed, err := c.NormalizePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	if err := c.ValidatePublicKey(pub); err != nil {
		return nil, err
	}
	secret, err := c.eng.SharedSecret(seed, pub)
	if err != nil {
		if errors.Is(err, engine.ErrDegenerateSecret) {
			return nil, ErrDegenerateSharedSecret
		}
		return nil, fmt.Errorf("%w: %v", ErrSharedSecretFailed, err)
	}
	if bytecodec.AllZero(secret) {
		return nil, ErrDegenerateSharedSecret
	}
	return secret, nil
}
