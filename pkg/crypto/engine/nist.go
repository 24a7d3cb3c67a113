package engine

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	_ "crypto/sha256" // registers SHA-256
	_ "crypto/sha512" // registers SHA-384 and SHA-512
)

// nistEngine drives the three NIST prime curves through crypto/ecdsa and
// crypto/elliptic. One instance per curve, parameterized by the curve, its
// designated hash, and the scalar width.
type nistEngine struct {
	curve elliptic.Curve
	hash  crypto.Hash
	size  int
}

// NewP256 returns the P-256 engine (SHA-256, 32-byte scalars).
func NewP256() WeierstrassEngine {
	return &nistEngine{curve: elliptic.P256(), hash: crypto.SHA256, size: 32}
}

// NewP384 returns the P-384 engine (SHA-384, 48-byte scalars).
func NewP384() WeierstrassEngine {
	return &nistEngine{curve: elliptic.P384(), hash: crypto.SHA384, size: 48}
}

// NewP521 returns the P-521 engine (SHA-512, 66-byte scalars).
func NewP521() WeierstrassEngine {
	return &nistEngine{curve: elliptic.P521(), hash: crypto.SHA512, size: 66}
}

func (e *nistEngine) ScalarSize() int { return e.size }

func (e *nistEngine) digest(message []byte) []byte {
	h := e.hash.New()
	h.Write(message)
	return h.Sum(nil)
}

// checkScalar rejects seeds outside [1, N-1].
func (e *nistEngine) checkScalar(seed []byte) (*big.Int, error) {
	if len(seed) != e.size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidScalar, len(seed), e.size)
	}
	k := new(big.Int).SetBytes(seed)
	if k.Sign() == 0 || k.Cmp(e.curve.Params().N) >= 0 {
		return nil, ErrInvalidScalar
	}
	return k, nil
}

// GenerateSeed draws size+8 bytes and reduces them into [1, N-1]. The extra
// bytes make the modular bias negligible, so a single draw always yields a
// usable scalar (FIPS 186-4 B.4.1). P-521 makes plain rejection sampling
// unusable here: its order starts at 0x01, so almost every 66-byte draw
// overflows it.
func (e *nistEngine) GenerateSeed(random func(size int) ([]byte, error)) ([]byte, error) {
	material, err := random(e.size + 8)
	if err != nil {
		return nil, err
	}
	if len(material) != e.size+8 {
		return nil, fmt.Errorf("%w: random source returned %d bytes, want %d", ErrInvalidScalar, len(material), e.size+8)
	}
	nMinusOne := new(big.Int).Sub(e.curve.Params().N, big.NewInt(1))
	k := new(big.Int).SetBytes(material)
	k.Mod(k, nMinusOne)
	k.Add(k, big.NewInt(1))
	seed := make([]byte, e.size)
	k.FillBytes(seed)
	return seed, nil
}

func (e *nistEngine) PublicKey(seed []byte, compressed bool) ([]byte, error) {
	if _, err := e.checkScalar(seed); err != nil {
		return nil, err
	}
	x, y := e.curve.ScalarBaseMult(seed)
	return e.marshalPoint(x, y, compressed), nil
}

func (e *nistEngine) marshalPoint(x, y *big.Int, compressed bool) []byte {
	if compressed {
		return elliptic.MarshalCompressed(e.curve, x, y)
	}
	return elliptic.Marshal(e.curve, x, y)
}

// decodePoint accepts compressed (0x02/0x03) and uncompressed (0x04) SEC1
// encodings, sizing each by its prefix. elliptic.Unmarshal and
// UnmarshalCompressed reject points off the curve and the point at infinity.
func (e *nistEngine) decodePoint(point []byte) (x, y *big.Int, err error) {
	if len(point) == 0 {
		return nil, nil, fmt.Errorf("%w: empty encoding", ErrInvalidPoint)
	}
	switch point[0] {
	case 0x02, 0x03:
		if len(point) != e.size+1 {
			return nil, nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPoint, len(point), e.size+1)
		}
		x, y = elliptic.UnmarshalCompressed(e.curve, point)
	case 0x04:
		if len(point) != 2*e.size+1 {
			return nil, nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPoint, len(point), 2*e.size+1)
		}
		x, y = elliptic.Unmarshal(e.curve, point)
	default:
		return nil, nil, fmt.Errorf("%w: prefix 0x%02x", ErrInvalidPoint, point[0])
	}
	if x == nil {
		return nil, nil, fmt.Errorf("%w: not on curve", ErrInvalidPoint)
	}
	return x, y, nil
}

func (e *nistEngine) NormalizePoint(point []byte, compressed bool) ([]byte, error) {
	x, y, err := e.decodePoint(point)
	if err != nil {
		return nil, err
	}
	return e.marshalPoint(x, y, compressed), nil
}

// Sign hashes message with the designated hash, signs the digest, and
// normalizes s to the low half of the order. The recovery code is found by
// recovering candidate keys from the finished signature and matching them
// against the signer's own public key.
func (e *nistEngine) Sign(message, seed []byte) ([]byte, byte, error) {
	d, err := e.checkScalar(seed)
	if err != nil {
		return nil, 0, err
	}
	priv := &ecdsa.PrivateKey{D: d}
	priv.Curve = e.curve
	priv.X, priv.Y = e.curve.ScalarBaseMult(seed)

	digest := e.digest(message)
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, 0, fmt.Errorf("ecdsa sign: %w", err)
	}

	n := e.curve.Params().N
	halfN := new(big.Int).Rsh(n, 1)
	if s.Cmp(halfN) > 0 {
		s = new(big.Int).Sub(n, s)
	}

	sig := make([]byte, 2*e.size)
	r.FillBytes(sig[:e.size])
	s.FillBytes(sig[e.size:])

	recovery, err := e.findRecovery(sig, digest, priv.X, priv.Y)
	if err != nil {
		return nil, 0, err
	}
	return sig, recovery, nil
}

// findRecovery tries each recovery code against the signer's public key.
// Codes 0 and 1 select the parity of the ephemeral point's y; 2 and 3 cover
// the rare case of its x exceeding the order.
func (e *nistEngine) findRecovery(sig, digest []byte, pubX, pubY *big.Int) (byte, error) {
	for recovery := byte(0); recovery < 4; recovery++ {
		qx, qy, err := recoverWeierstrass(e.curve, e.size, digest, sig, recovery)
		if err != nil {
			continue
		}
		if qx.Cmp(pubX) == 0 && qy.Cmp(pubY) == 0 {
			return recovery, nil
		}
	}
	return 0, fmt.Errorf("%w: no recovery code reproduces the public key", ErrInvalidSignature)
}

func (e *nistEngine) Verify(sig, message, point []byte) bool {
	if len(sig) != 2*e.size {
		return false
	}
	x, y, err := e.decodePoint(point)
	if err != nil {
		return false
	}
	pub := &ecdsa.PublicKey{Curve: e.curve, X: x, Y: y}
	r := new(big.Int).SetBytes(sig[:e.size])
	s := new(big.Int).SetBytes(sig[e.size:])
	return ecdsa.Verify(pub, e.digest(message), r, s)
}

func (e *nistEngine) Recover(sig []byte, recovery byte, message []byte, compressed bool) ([]byte, error) {
	if len(sig) != 2*e.size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignature, len(sig), 2*e.size)
	}
	if recovery > 3 {
		return nil, fmt.Errorf("%w: recovery code %d", ErrInvalidSignature, recovery)
	}
	x, y, err := recoverWeierstrass(e.curve, e.size, e.digest(message), sig, recovery)
	if err != nil {
		return nil, err
	}
	return e.marshalPoint(x, y, compressed), nil
}

func (e *nistEngine) SharedSecret(seed, point []byte) ([]byte, error) {
	if _, err := e.checkScalar(seed); err != nil {
		return nil, err
	}
	x, y, err := e.decodePoint(point)
	if err != nil {
		return nil, err
	}
	sx, sy := e.curve.ScalarMult(x, y, seed)
	if sx.Sign() == 0 && sy.Sign() == 0 {
		return nil, ErrDegenerateSecret
	}
	return elliptic.MarshalCompressed(e.curve, sx, sy), nil
}
