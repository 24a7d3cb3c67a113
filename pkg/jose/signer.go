package jose

import (
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	jwxjwk "github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/curvekey/curvekey-go/pkg/crypto/curve"
	"github.com/curvekey/curvekey-go/pkg/jwk"
)

// Signer mints JWTs with one signing curve and one private key. The key
// ID travels in the token header and on the published JWK, so verifiers
// can look the key up by kid.
type Signer struct {
	crv    curve.Signer
	seed   []byte
	method jwt.SigningMethod
	key    interface{}
	keyID  string
}

// NewSigner wraps a raw private key for c. An empty keyID gets a fresh
// UUID.
func NewSigner(c curve.Signer, priv []byte, keyID string) (*Signer, error) {
	seed, err := c.NormalizePrivateKey(priv)
	if err != nil {
		return nil, err
	}
	method, err := methodForCurve(c.Name())
	if err != nil {
		return nil, err
	}
	key, err := signingKey(c, seed)
	if err != nil {
		return nil, err
	}
	if keyID == "" {
		keyID = uuid.NewString()
	}
	return &Signer{crv: c, seed: seed, method: method, key: key, keyID: keyID}, nil
}

// KeyID returns the signer's key ID.
func (s *Signer) KeyID() string { return s.keyID }

// Algorithm returns the JOSE algorithm the signer uses.
func (s *Signer) Algorithm() string { return s.crv.Algorithm() }

// Sign creates a JWT with the given claims.
func (s *Signer) Sign(claims map[string]interface{}) (string, error) {
	token := jwt.NewWithClaims(s.method, jwt.MapClaims(claims))
	token.Header["kid"] = s.keyID
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// PublicJWK returns the public half as a JWK with kid and use set.
func (s *Signer) PublicJWK() (*jwk.Key, error) {
	pub, err := s.crv.PublicKey(s.seed, false)
	if err != nil {
		return nil, err
	}
	k, err := jwk.EncodePublic(s.crv, pub)
	if err != nil {
		return nil, err
	}
	k.Kid = s.keyID
	k.Use = "sig"
	return k, nil
}

// JWKS returns the public key as a jwx key set, the shape verification
// middleware consumes. jwx must know the curve: the NIST curves and
// Ed25519 always work, secp256k1 only when jwx is built with its
// jwx_es256k tag.
func (s *Signer) JWKS() (jwxjwk.Set, error) {
	k, err := s.PublicJWK()
	if err != nil {
		return nil, err
	}
	blob, err := json.Marshal(k)
	if err != nil {
		return nil, fmt.Errorf("build jwks: %w", err)
	}
	parsed, err := jwxjwk.ParseKey(blob)
	if err != nil {
		return nil, fmt.Errorf("build jwks: %w", err)
	}
	set := jwxjwk.NewSet()
	if err := set.AddKey(parsed); err != nil {
		return nil, fmt.Errorf("build jwks: %w", err)
	}
	return set, nil
}

// Verifier checks JWTs against a jwx key set, resolving keys by the kid
// header.
type Verifier struct {
	jwks jwxjwk.Set
}

// NewVerifier wraps a jwx key set.
func NewVerifier(jwks jwxjwk.Set) *Verifier {
	return &Verifier{jwks: jwks}
}

// Verify parses and verifies a JWT, returning its claims.
func (v *Verifier) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		switch t.Method.(type) {
		case *jwt.SigningMethodECDSA, *jwt.SigningMethodEd25519:
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, ok := t.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing key ID")
		}
		key, ok := v.jwks.LookupKeyID(kid)
		if !ok {
			return nil, fmt.Errorf("key %q not in set", kid)
		}
		var pub interface{}
		if err := key.Raw(&pub); err != nil {
			return nil, fmt.Errorf("extract public key: %w", err)
		}
		return pub, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse jwt: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	return claims, nil
}

// VerifyWithKey verifies a JWT against one raw public key for c. This is
// the path that covers ES256K, whose keys a stock jwx set cannot carry.
func VerifyWithKey(tokenString string, c curve.Signer, pub []byte) (jwt.MapClaims, error) {
	method, err := methodForCurve(c.Name())
	if err != nil {
		return nil, err
	}
	key, err := verifyingKey(c, pub)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{method.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse jwt: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	return claims, nil
}
