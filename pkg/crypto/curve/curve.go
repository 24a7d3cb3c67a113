// Package curve provides a uniform byte-level interface to the elliptic
// curves used in JOSE-style systems, spanning three curve families.
//
// # Supported Curves
//
//   - Weierstrass: P-256, P-384, P-521, secp256k1. ECDSA signatures, ECDH
//     key agreement, and public key recovery from signatures.
//   - Edwards: Ed25519. EdDSA signatures; no key agreement, no recovery.
//   - Montgomery: X25519. ECDH key agreement only.
//
// # Canonical Byte Forms
//
// Keys and signatures are plain byte slices in fixed forms:
//
//   - Private keys are scalar seeds of exactly ScalarSize bytes (32 for
//     P-256, secp256k1, Ed25519 and X25519; 48 for P-384; 66 for P-521).
//     Ed25519 additionally accepts the 64-byte legacy form seed||publickey
//     on input and reduces it to the 32-byte seed.
//   - Weierstrass public keys are SEC1 points, compressed (0x02/0x03
//     prefix, ScalarSize+1 bytes) or uncompressed (0x04 prefix,
//     2*ScalarSize+1 bytes). Ed25519 and X25519 public keys are single
//     32-byte encodings.
//   - Signatures are fixed-width r||s (2*ScalarSize bytes). The
//     recoverable Weierstrass form appends one recovery byte in 0..3.
//
// # Capabilities
//
// Capabilities differ per family and are expressed as interfaces: every
// curve implements Curve, the signing families add Signer, and the key
// agreement families add KeyAgreer. An operation a family can name but not
// perform fails with a typed error (Ed25519 key recovery); an operation a
// family cannot even express is absent from its type (X25519 signing,
// Ed25519 key agreement).
//
// # Error Discipline
//
// Two rules hold everywhere:
//
//  1. Anything that validates or converts returns an error describing what
//     was wrong with the input.
//  2. Verify returns a plain bool and never an error. A malformed
//     signature, message or key verifies as false.
//
// # Randomness
//
// Randomness is injected. Constructors take a RandomSource that feeds key
// generation and nothing else; pass NoRandom to get a curve that performs
// only deterministic operations and refuses to generate keys.
//
// All curve values are immutable and safe for concurrent use.
package curve

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Curve names, as they appear in JWK "crv" fields.
const (
	P256      = "P-256"
	P384      = "P-384"
	P521      = "P-521"
	Secp256k1 = "secp256k1"
	Ed25519   = "Ed25519"
	X25519    = "X25519"
)

// Signature algorithm names, as they appear in JOSE "alg" fields.
const (
	AlgES256  = "ES256"
	AlgES384  = "ES384"
	AlgES512  = "ES512"
	AlgES256K = "ES256K"
	AlgEdDSA  = "EdDSA"
)

// JWK key types.
const (
	KeyTypeEC  = "EC"
	KeyTypeOKP = "OKP"
)

var (
	// ErrInvalidPrivateKey indicates a private key of the wrong length or
	// with an all-zero seed.
	ErrInvalidPrivateKey = fmt.Errorf("invalid private key")

	// ErrInvalidEmbeddedKey indicates a 64-byte Ed25519 private key whose
	// trailing public half does not match the key derived from the seed.
	ErrInvalidEmbeddedKey = fmt.Errorf("embedded public key does not match its seed")

	// ErrInvalidPublicKey indicates a public key that is empty, all-zero,
	// wrongly sized, or not a valid point.
	ErrInvalidPublicKey = fmt.Errorf("invalid public key")

	// ErrSigningFailed wraps an engine failure during signing.
	ErrSigningFailed = fmt.Errorf("signing failed")

	// ErrRecoveryNotSupported is returned by curves whose signatures carry
	// no recovery information, such as Ed25519.
	ErrRecoveryNotSupported = fmt.Errorf("public key recovery not supported")

	// ErrRecoveryImpossible indicates a Weierstrass signature that cannot
	// yield a public key: it lacks the recovery byte or fails the
	// recovery math.
	ErrRecoveryImpossible = fmt.Errorf("cannot recover public key from signature")

	// ErrSharedSecretFailed wraps an engine failure during key agreement.
	ErrSharedSecretFailed = fmt.Errorf("shared secret derivation failed")

	// ErrDegenerateSharedSecret indicates a key agreement that produced
	// the all-zero secret, the signature of a low-order peer point.
	ErrDegenerateSharedSecret = fmt.Errorf("degenerate all-zero shared secret")

	// ErrAlgorithmMismatch indicates a curve name and algorithm name that
	// are both known but do not belong together.
	ErrAlgorithmMismatch = fmt.Errorf("curve and algorithm do not match")

	// ErrUnresolvableCurve indicates a resolution request with nothing to
	// resolve from, or an algorithm that does not pin down a single curve.
	ErrUnresolvableCurve = fmt.Errorf("cannot resolve curve")

	// ErrUnsupportedCurve indicates a curve name outside the supported set.
	ErrUnsupportedCurve = fmt.Errorf("unsupported curve")

	// ErrRandomUnavailable is what NoRandom returns, and therefore what
	// key generation fails with on a deterministic-only curve.
	ErrRandomUnavailable = fmt.Errorf("random source unavailable")
)

// RandomSource supplies cryptographic randomness. It is called with the
// number of bytes required and must return exactly that many. Key
// generation calls it once; there are no retries.
type RandomSource func(size int) ([]byte, error)

// System reads from crypto/rand.
func System(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// NoRandom always fails with ErrRandomUnavailable. Constructing a curve
// with it yields a deterministic-only curve: signing, verification and
// conversion work, key generation does not.
func NoRandom(int) ([]byte, error) {
	return nil, ErrRandomUnavailable
}

// Curve is the capability set common to every supported curve.
type Curve interface {
	// Name returns the curve name, e.g. "P-256".
	Name() string

	// Algorithm returns the JOSE signature algorithm bound to the curve,
	// e.g. "ES256". X25519 signs nothing and returns "".
	Algorithm() string

	// KeyType returns the JWK key type: "EC" for Weierstrass curves,
	// "OKP" for Ed25519 and X25519.
	KeyType() string

	// ScalarSize returns the byte length of a private scalar and of one
	// point coordinate.
	ScalarSize() int

	// GeneratePrivateKey draws a fresh private key from the curve's
	// random source.
	GeneratePrivateKey() ([]byte, error)

	// NormalizePrivateKey checks raw and returns it in canonical seed
	// form. It accepts exactly ScalarSize bytes, plus the 64-byte
	// seed||publickey form on Ed25519, and rejects all-zero seeds.
	NormalizePrivateKey(raw []byte) ([]byte, error)

	// PublicKey derives the public key for priv, normalizing priv first.
	// On Weierstrass curves compressed selects the SEC1 form; families
	// with a single encoding ignore it.
	PublicKey(priv []byte, compressed bool) ([]byte, error)

	// NormalizePublicKey validates pub and re-encodes it in the requested
	// form. For single-encoding families it returns a validated copy.
	NormalizePublicKey(pub []byte, compressed bool) ([]byte, error)

	// IsValidPublicKey reports whether pub is acceptable. It never panics.
	IsValidPublicKey(pub []byte) bool

	// ValidatePublicKey explains why pub is not acceptable, or returns
	// nil.
	ValidatePublicKey(pub []byte) error
}

// Signer is implemented by curves that sign: the Weierstrass family and
// Ed25519.
type Signer interface {
	Curve

	// Sign returns the fixed-width r||s signature over message. The
	// private key is normalized first, so the 64-byte Ed25519 form works
	// here too. Weierstrass engines hash the message with the curve's
	// designated hash; Ed25519 signs it directly.
	Sign(message, priv []byte) ([]byte, error)

	// SignRecovered returns r||s plus a trailing recovery byte. Curves
	// without recoverable signatures fail with ErrRecoveryNotSupported.
	SignRecovered(message, priv []byte) ([]byte, error)

	// Verify reports whether sig is valid for message under pub. On
	// Weierstrass curves it also accepts the recoverable form, ignoring
	// the trailing byte. It never returns an error: malformed input is
	// simply false.
	Verify(sig, message, pub []byte) bool

	// RecoverPublicKey extracts the signer's public key from a
	// recoverable signature. A signature without the recovery byte fails
	// with ErrRecoveryImpossible; curves without recovery fail with
	// ErrRecoveryNotSupported.
	RecoverPublicKey(sig, message []byte, compressed bool) ([]byte, error)
}

// KeyAgreer is implemented by curves that derive shared secrets: the
// Weierstrass family and X25519.
type KeyAgreer interface {
	Curve

	// SharedSecret combines the local private key with the peer's public
	// key. Weierstrass secrets are the x coordinate of the shared point
	// (ScalarSize bytes); X25519 secrets are the 32-byte u coordinate.
	// The all-zero secret fails with ErrDegenerateSharedSecret.
	SharedSecret(priv, pub []byte) ([]byte, error)
}
