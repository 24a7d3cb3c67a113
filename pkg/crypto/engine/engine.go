// Package engine wraps the low-level elliptic curve implementations behind a
// small set of capability interfaces. Everything above this package works on
// plain byte slices; everything below is a specific curve library:
//
//   - P-256, P-384, P-521: crypto/ecdsa and crypto/elliptic
//   - secp256k1:           github.com/btcsuite/btcd/btcec/v2
//   - Ed25519:             crypto/ed25519, with filippo.io/edwards25519 for
//     canonical point decoding
//   - X25519:              golang.org/x/crypto/curve25519
//
// Engines own the hashing step of ECDSA: Sign and Verify take the raw
// message and apply the curve's designated hash (SHA-256 for P-256 and
// secp256k1, SHA-384 for P-384, SHA-512 for P-521) before the group
// operation. Ed25519 signs the message directly, as the scheme defines.
//
// Signatures cross this boundary in fixed-width r||s form, each half
// exactly ScalarSize bytes, with the recovery code carried separately.
// ECDSA nonces come from crypto/rand inside the engine; the random source
// injected by callers feeds key generation only.
package engine

import (
	"fmt"
)

var (
	// ErrInvalidScalar marks a private scalar that is the wrong length,
	// zero, or not below the group order.
	ErrInvalidScalar = fmt.Errorf("invalid scalar")

	// ErrInvalidPoint marks a public key encoding that does not decode to
	// a point on the curve.
	ErrInvalidPoint = fmt.Errorf("invalid point")

	// ErrInvalidSignature marks signature halves outside the valid range.
	ErrInvalidSignature = fmt.Errorf("invalid signature")

	// ErrDegenerateSecret marks a key agreement that produced the all-zero
	// secret, which happens only with low-order or otherwise hostile input.
	ErrDegenerateSecret = fmt.Errorf("degenerate shared secret")
)

// Engine is the capability every curve has: deterministic public key
// derivation and point validation.
type Engine interface {
	// ScalarSize returns the byte length n of a private scalar. Coordinates
	// are also n bytes; uncompressed Weierstrass points are 2n+1.
	ScalarSize() int

	// GenerateSeed draws fresh key material from random and maps it to a
	// valid private scalar. random is called exactly once; its failure is
	// returned unwrapped so callers can classify it.
	GenerateSeed(random func(size int) ([]byte, error)) ([]byte, error)

	// PublicKey derives the public key for seed. The compressed flag
	// selects the SEC1 form on Weierstrass curves and is ignored by
	// families with a single encoding.
	PublicKey(seed []byte, compressed bool) ([]byte, error)

	// NormalizePoint decodes point in any encoding the curve accepts,
	// validates it, and re-encodes it in the requested form.
	NormalizePoint(point []byte, compressed bool) ([]byte, error)
}

// SignEngine is implemented by curves that sign: Weierstrass and Edwards.
type SignEngine interface {
	Engine

	// Sign produces a fixed-width r||s signature over message. For
	// Weierstrass curves the message is hashed with the designated hash
	// and recovery is the 0..3 code identifying the signer's public key;
	// Edwards signs the message directly and always reports recovery 0.
	Sign(message, seed []byte) (sig []byte, recovery byte, err error)

	// Verify reports whether sig (fixed-width r||s) is valid for message
	// under point. It never panics on malformed input.
	Verify(sig, message, point []byte) bool
}

// RecoverEngine is implemented by curves whose signatures identify the
// signer: the Weierstrass family.
type RecoverEngine interface {
	SignEngine

	// Recover returns the public key that produced sig (fixed-width r||s)
	// over message, as selected by the recovery code.
	Recover(sig []byte, recovery byte, message []byte, compressed bool) ([]byte, error)
}

// ECDHEngine is implemented by curves that derive shared secrets:
// Weierstrass and Montgomery.
type ECDHEngine interface {
	Engine

	// SharedSecret combines the local seed with the peer's point.
	// Weierstrass engines return the shared point in compressed SEC1 form
	// (prefix byte plus x coordinate); X25519 returns the raw u
	// coordinate.
	SharedSecret(seed, point []byte) ([]byte, error)
}

// WeierstrassEngine bundles the full capability set of the short
// Weierstrass curves.
type WeierstrassEngine interface {
	RecoverEngine
	ECDHEngine
}
