package engine

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// secpEngine drives secp256k1 through btcec. btcec's compact signature
// format carries the recovery header first (27 + code, plus 4 for
// compressed keys); this engine rearranges it into plain r||s plus a bare
// 0..3 code, which is what the layers above expect.
type secpEngine struct{}

// NewSecp256k1 returns the secp256k1 engine (SHA-256, 32-byte scalars).
func NewSecp256k1() WeierstrassEngine {
	return secpEngine{}
}

func (secpEngine) ScalarSize() int { return 32 }

func (secpEngine) parseSeed(seed []byte) (*btcec.PrivateKey, error) {
	if len(seed) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes, want 32", ErrInvalidScalar, len(seed))
	}
	var s btcec.ModNScalar
	if overflow := s.SetByteSlice(seed); overflow {
		return nil, fmt.Errorf("%w: not below the group order", ErrInvalidScalar)
	}
	if s.IsZero() {
		return nil, ErrInvalidScalar
	}
	return btcec.PrivKeyFromBytes(seed), nil
}

// parsePoint restricts btcec's parser to the two SEC1 forms the codec
// accepts; btcec itself would also take the legacy hybrid encoding.
func (secpEngine) parsePoint(point []byte) (*btcec.PublicKey, error) {
	if len(point) == 0 {
		return nil, fmt.Errorf("%w: empty encoding", ErrInvalidPoint)
	}
	switch point[0] {
	case 0x02, 0x03:
		if len(point) != 33 {
			return nil, fmt.Errorf("%w: got %d bytes, want 33", ErrInvalidPoint, len(point))
		}
	case 0x04:
		if len(point) != 65 {
			return nil, fmt.Errorf("%w: got %d bytes, want 65", ErrInvalidPoint, len(point))
		}
	default:
		return nil, fmt.Errorf("%w: prefix 0x%02x", ErrInvalidPoint, point[0])
	}
	pub, err := btcec.ParsePubKey(point)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return pub, nil
}

func (e secpEngine) GenerateSeed(random func(size int) ([]byte, error)) ([]byte, error) {
	material, err := random(40)
	if err != nil {
		return nil, err
	}
	if len(material) != 40 {
		return nil, fmt.Errorf("%w: random source returned %d bytes, want 40", ErrInvalidScalar, len(material))
	}
	nMinusOne := new(big.Int).Sub(btcec.S256().Params().N, big.NewInt(1))
	k := new(big.Int).SetBytes(material)
	k.Mod(k, nMinusOne)
	k.Add(k, big.NewInt(1))
	seed := make([]byte, 32)
	k.FillBytes(seed)
	return seed, nil
}

func (e secpEngine) PublicKey(seed []byte, compressed bool) ([]byte, error) {
	priv, err := e.parseSeed(seed)
	if err != nil {
		return nil, err
	}
	if compressed {
		return priv.PubKey().SerializeCompressed(), nil
	}
	return priv.PubKey().SerializeUncompressed(), nil
}

func (e secpEngine) NormalizePoint(point []byte, compressed bool) ([]byte, error) {
	pub, err := e.parsePoint(point)
	if err != nil {
		return nil, err
	}
	if compressed {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

func (e secpEngine) Sign(message, seed []byte) ([]byte, byte, error) {
	priv, err := e.parseSeed(seed)
	if err != nil {
		return nil, 0, err
	}
	digest := sha256.Sum256(message)
	compact, err := btcecdsa.SignCompact(priv, digest[:], false)
	if err != nil {
		return nil, 0, fmt.Errorf("secp256k1 sign: %w", err)
	}
	sig := make([]byte, 64)
	copy(sig, compact[1:])
	return sig, compact[0] - 27, nil
}

func (e secpEngine) Verify(sig, message, point []byte) bool {
	if len(sig) != 64 {
		return false
	}
	pub, err := e.parsePoint(point)
	if err != nil {
		return false
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return false
	}
	digest := sha256.Sum256(message)
	return btcecdsa.NewSignature(&r, &s).Verify(digest[:], pub)
}

func (e secpEngine) Recover(sig []byte, recovery byte, message []byte, compressed bool) ([]byte, error) {
	if len(sig) != 64 {
		return nil, fmt.Errorf("%w: got %d bytes, want 64", ErrInvalidSignature, len(sig))
	}
	if recovery > 3 {
		return nil, fmt.Errorf("%w: recovery code %d", ErrInvalidSignature, recovery)
	}
	compact := make([]byte, 65)
	compact[0] = 27 + recovery
	copy(compact[1:], sig)
	digest := sha256.Sum256(message)
	pub, _, err := btcecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if compressed {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

func (e secpEngine) SharedSecret(seed, point []byte) ([]byte, error) {
	if _, err := e.parseSeed(seed); err != nil {
		return nil, err
	}
	pub, err := e.parsePoint(point)
	if err != nil {
		return nil, err
	}
	x, y := btcec.S256().ScalarMult(pub.X(), pub.Y(), seed)
	if x.Sign() == 0 && y.Sign() == 0 {
		return nil, ErrDegenerateSecret
	}
	out := make([]byte, 33)
	out[0] = 0x02 + byte(y.Bit(0))
	x.FillBytes(out[1:])
	return out, nil
}
