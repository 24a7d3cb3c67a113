package curve

import (
	"bytes"
	"fmt"

	"github.com/curvekey/curvekey-go/pkg/bytecodec"
	"github.com/curvekey/curvekey-go/pkg/crypto/engine"
)

// Edwards is the Ed25519 curve. It signs and verifies but has no key
// agreement, and its signatures carry no recovery information: the
// recovery operations exist on its surface and fail with
// ErrRecoveryNotSupported.
type Edwards struct {
	name   string
	eng    engine.SignEngine
	random RandomSource
}

var _ Signer = (*Edwards)(nil)

// NewEd25519 returns Ed25519 (EdDSA) backed by the given random source, or
// the system source if random is nil.
func NewEd25519(random RandomSource) *Edwards {
	if random == nil {
		random = System
	}
	return &Edwards{name: Ed25519, eng: engine.NewEd25519(), random: random}
}

func (c *Edwards) Name() string      { return c.name }
func (c *Edwards) Algorithm() string { return AlgEdDSA }
func (c *Edwards) KeyType() string   { return KeyTypeOKP }
func (c *Edwards) ScalarSize() int   { return c.eng.ScalarSize() }

func (c *Edwards) GeneratePrivateKey() ([]byte, error) {
	return c.eng.GenerateSeed(c.random)
}

// NormalizePrivateKey accepts the 32-byte seed and the 64-byte
// seed||publickey form that tweetnacl-style stacks emit. For the long form
// the embedded public key must match the one derived from the seed; the
// comparison is constant time.
func (c *Edwards) NormalizePrivateKey(raw []byte) ([]byte, error) {
	n := c.ScalarSize()
	switch len(raw) {
	case n:
		if bytecodec.AllZero(raw) {
			return nil, fmt.Errorf("%w: all-zero seed", ErrInvalidPrivateKey)
		}
		return bytes.Clone(raw), nil
	case 2 * n:
		seed := raw[:n]
		if bytecodec.AllZero(seed) {
			return nil, fmt.Errorf("%w: all-zero seed", ErrInvalidPrivateKey)
		}
		derived, err := c.eng.PublicKey(seed, false)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
		}
		if !bytecodec.Equal(derived, raw[n:]) {
			return nil, ErrInvalidEmbeddedKey
		}
		return bytes.Clone(seed), nil
	default:
		return nil, fmt.Errorf("%w: got %d bytes, want %d or %d", ErrInvalidPrivateKey, len(raw), n, 2*n)
	}
}

func (c *Edwards) PublicKey(priv []byte, _ bool) ([]byte, error) {
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

func (c *Edwards) NormalizePublicKey(pub []byte, _ bool) ([]byte, error) {
	if err := c.ValidatePublicKey(pub); err != nil {
		return nil, err
	}
	return bytes.Clone(pub), nil
}

func (c *Edwards) ValidatePublicKey(pub []byte) error {
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

func (c *Edwards) IsValidPublicKey(pub []byte) bool {
	return c.ValidatePublicKey(pub) == nil
}

func (c *Edwards) Sign(message, priv []byte) ([]byte, error) {
	seed, err := c.NormalizePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	sig, _, err := c.eng.Sign(message, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return sig, nil
}

func (c *Edwards) SignRecovered(message, priv []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s signatures identify no recovery point", ErrRecoveryNotSupported, c.name)
}

func (c *Edwards) Verify(sig, message, pub []byte) bool {
	if len(sig) != 2*c.ScalarSize() {
		return false
	}
	if !c.IsValidPublicKey(pub) {
		return false
	}
	return c.eng.Verify(sig, message, pub)
}

func (c *Edwards) RecoverPublicKey(sig, message []byte, compressed bool) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s signatures identify no recovery point", ErrRecoveryNotSupported, c.name)
}
