// Package jose bridges the curve layer into JOSE tooling: golang-jwt
// signing methods that consume this module's raw byte keys, a token signer
// and verifier around them, and JWKS publication through lestrrat-go/jwx.
//
// golang-jwt ships ES256, ES384, ES512 and EdDSA but not ES256K; the
// SigningMethod here closes that gap. JWS ECDSA signatures are the same
// fixed-width r||s the curve layer produces, and the hash JOSE prescribes
// per algorithm is the curve's designated hash, so the curve layer's Sign
// and Verify are exactly the JWS primitives.
package jose

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/curvekey/curvekey-go/pkg/crypto/curve"
)

// SigningMethod adapts a signing curve to the golang-jwt interface. Keys
// are raw bytes: private keys are scalar seeds (the 64-byte Ed25519 form
// also works), public keys are SEC1 or Edwards points.
type SigningMethod struct {
	alg string
	crv curve.Signer
}

// SigningMethodES256K signs JWS with secp256k1. It registers itself with
// golang-jwt under "ES256K" so jwt.Parse resolves tokens carrying that alg
// here; the stock algorithms keep their native golang-jwt methods.
var SigningMethodES256K = &SigningMethod{
	alg: curve.AlgES256K,
	crv: curve.NewSecp256k1(curve.NoRandom),
}

func init() {
	jwt.RegisterSigningMethod(SigningMethodES256K.Alg(), func() jwt.SigningMethod {
		return SigningMethodES256K
	})
}

// Alg returns the JOSE algorithm name.
func (m *SigningMethod) Alg() string { return m.alg }

// Sign signs the JWS signing string. key must be the raw private key
// bytes.
func (m *SigningMethod) Sign(signingString string, key interface{}) ([]byte, error) {
	priv, ok := key.([]byte)
	if !ok {
		return nil, jwt.ErrInvalidKeyType
	}
	return m.crv.Sign([]byte(signingString), priv)
}

// Verify checks a JWS signature. key must be the raw public key bytes.
func (m *SigningMethod) Verify(signingString string, sig []byte, key interface{}) error {
	pub, ok := key.([]byte)
	if !ok {
		return jwt.ErrInvalidKeyType
	}
	if !m.crv.Verify(sig, []byte(signingString), pub) {
		return jwt.ErrSignatureInvalid
	}
	return nil
}
