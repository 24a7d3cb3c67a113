package curve

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/curvekey/curvekey-go/pkg/bytecodec"
	"github.com/curvekey/curvekey-go/pkg/crypto/engine"
)

// Weierstrass is a short Weierstrass curve: P-256, P-384, P-521 or
// secp256k1. It carries the full capability set: ECDSA signing with
// optional recovery, verification, ECDH, and both SEC1 point forms.
type Weierstrass struct {
	name   string
	alg    string
	eng    engine.WeierstrassEngine
	random RandomSource
}

var (
	_ Signer    = (*Weierstrass)(nil)
	_ KeyAgreer = (*Weierstrass)(nil)
)

// NewP256 returns P-256 (ES256) backed by the given random source, or the
// system source if random is nil.
func NewP256(random RandomSource) *Weierstrass {
	return newWeierstrass(P256, AlgES256, engine.NewP256(), random)
}

// NewP384 returns P-384 (ES384).
func NewP384(random RandomSource) *Weierstrass {
	return newWeierstrass(P384, AlgES384, engine.NewP384(), random)
}

// NewP521 returns P-521 (ES512).
func NewP521(random RandomSource) *Weierstrass {
	return newWeierstrass(P521, AlgES512, engine.NewP521(), random)
}

// NewSecp256k1 returns secp256k1 (ES256K).
func NewSecp256k1(random RandomSource) *Weierstrass {
	return newWeierstrass(Secp256k1, AlgES256K, engine.NewSecp256k1(), random)
}

func newWeierstrass(name, alg string, eng engine.WeierstrassEngine, random RandomSource) *Weierstrass {
	if random == nil {
		random = System
	}
	return &Weierstrass{name: name, alg: alg, eng: eng, random: random}
}

func (c *Weierstrass) Name() string      { return c.name }
func (c *Weierstrass) Algorithm() string { return c.alg }
func (c *Weierstrass) KeyType() string   { return KeyTypeEC }
func (c *Weierstrass) ScalarSize() int   { return c.eng.ScalarSize() }

func (c *Weierstrass) GeneratePrivateKey() ([]byte, error) {
	seed, err := c.eng.GenerateSeed(c.random)
	if err != nil {
		return nil, err
	}
	return seed, nil
}

func (c *Weierstrass) NormalizePrivateKey(raw []byte) ([]byte, error) {
	n := c.ScalarSize()
	if len(raw) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKey, len(raw), n)
	}
	if bytecodec.AllZero(raw) {
		return nil, fmt.Errorf("%w: all-zero seed", ErrInvalidPrivateKey)
	}
	return bytes.Clone(raw), nil
}

func (c *Weierstrass) PublicKey(priv []byte, compressed bool) ([]byte, error) {
	seed, err := c.NormalizePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	pub, err := c.eng.PublicKey(seed, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return pub, nil
}

// checkEncoding enforces the structural part of SEC1: a known prefix byte
// and the length it implies. The point itself is checked by the engine.
func (c *Weierstrass) checkEncoding(pub []byte) error {
	if len(pub) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPublicKey)
	}
	if bytecodec.AllZero(pub) {
		return fmt.Errorf("%w: all-zero", ErrInvalidPublicKey)
	}
	n := c.ScalarSize()
	var want int
	switch pub[0] {
	case 0x02, 0x03:
		want = n + 1
	case 0x04:
		want = 2*n + 1
	default:
		return fmt.Errorf("%w: unknown point prefix 0x%02x", ErrInvalidPublicKey, pub[0])
	}
	if len(pub) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for prefix 0x%02x", ErrInvalidPublicKey, len(pub), want, pub[0])
	}
	return nil
}

func (c *Weierstrass) NormalizePublicKey(pub []byte, compressed bool) ([]byte, error) {
	if err := c.checkEncoding(pub); err != nil {
		return nil, err
	}
	out, err := c.eng.NormalizePoint(pub, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return out, nil
}

func (c *Weierstrass) ValidatePublicKey(pub []byte) error {
	_, err := c.NormalizePublicKey(pub, true)
	return err
}

func (c *Weierstrass) IsValidPublicKey(pub []byte) bool {
	return c.ValidatePublicKey(pub) == nil
}

func (c *Weierstrass) Sign(message, priv []byte) ([]byte, error) {
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

func (c *Weierstrass) SignRecovered(message, priv []byte) ([]byte, error) {
	seed, err := c.NormalizePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	sig, recovery, err := c.eng.Sign(message, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return append(sig, recovery), nil
}

func (c *Weierstrass) Verify(sig, message, pub []byte) bool {
	n := c.ScalarSize()
	switch len(sig) {
	case 2 * n:
	case 2*n + 1:
		sig = sig[:2*n]
	default:
		return false
	}
	if !c.IsValidPublicKey(pub) {
		return false
	}
	return c.eng.Verify(sig, message, pub)
}

func (c *Weierstrass) RecoverPublicKey(sig, message []byte, compressed bool) ([]byte, error) {
	n := c.ScalarSize()
	switch len(sig) {
	case 2*n + 1:
	case 2 * n:
		return nil, fmt.Errorf("%w: signature has no recovery byte", ErrRecoveryImpossible)
	default:
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrRecoveryImpossible, len(sig), 2*n+1)
	}
	recovery := sig[2*n]
	if recovery > 3 {
		return nil, fmt.Errorf("%w: recovery byte %d out of range", ErrRecoveryImpossible, recovery)
	}
	pub, err := c.eng.Recover(sig[:2*n], recovery, message, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecoveryImpossible, err)
	}
	return pub, nil
}

// SharedSecret returns the x coordinate of priv * pub. The engine hands
// back the shared point in compressed SEC1 form; dropping the parity
// prefix leaves exactly the coordinate.
func (c *Weierstrass) SharedSecret(priv, pub []byte) ([]byte, error) {
	seed, err := c.NormalizePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	if err := c.ValidatePublicKey(pub); err != nil {
		return nil, err
	}
	point, err := c.eng.SharedSecret(seed, pub)
	if err != nil {
		if errors.Is(err, engine.ErrDegenerateSecret) {
			return nil, ErrDegenerateSharedSecret
		}
		return nil, fmt.Errorf("%w: %v", ErrSharedSecretFailed, err)
	}
	secret := point[1:]
	if bytecodec.AllZero(secret) {
		return nil, ErrDegenerateSharedSecret
	}
	return secret, nil
}
