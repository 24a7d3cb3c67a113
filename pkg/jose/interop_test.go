package jose

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwa"
	jwxjwk "github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/require"

	"github.com/curvekey/curvekey-go/pkg/crypto/curve"
	"github.com/curvekey/curvekey-go/pkg/jwk"
)

// The JWKs this module emits must be readable by jwx, and jwx-produced
// JWKs must decode here, or the published key sets are useless to anyone
// else's middleware.

func TestJWXReadsOurKeys(t *testing.T) {
	t.Run("P256Public", func(t *testing.T) {
		c := curve.NewP256(nil)
		priv, err := c.GeneratePrivateKey()
		require.NoError(t, err)
		pub, err := c.PublicKey(priv, false)
		require.NoError(t, err)

		k, err := jwk.EncodePublic(c, pub)
		require.NoError(t, err)
		blob, err := json.Marshal(k)
		require.NoError(t, err)

		parsed, err := jwxjwk.ParseKey(blob)
		require.NoError(t, err)

		var raw ecdsa.PublicKey
		require.NoError(t, parsed.Raw(&raw))
		require.Equal(t, pub[1:33], raw.X.FillBytes(make([]byte, 32)))
		require.Equal(t, pub[33:], raw.Y.FillBytes(make([]byte, 32)))
	})

	t.Run("P256Private", func(t *testing.T) {
		c := curve.NewP256(nil)
		priv, err := c.GeneratePrivateKey()
		require.NoError(t, err)

		k, err := jwk.EncodePrivate(c, priv)
		require.NoError(t, err)
		blob, err := json.Marshal(k)
		require.NoError(t, err)

		parsed, err := jwxjwk.ParseKey(blob)
		require.NoError(t, err)

		var raw ecdsa.PrivateKey
		require.NoError(t, parsed.Raw(&raw))
		require.Equal(t, priv, raw.D.FillBytes(make([]byte, 32)))
	})

	t.Run("Ed25519Public", func(t *testing.T) {
		c := curve.NewEd25519(nil)
		priv, err := c.GeneratePrivateKey()
		require.NoError(t, err)
		pub, err := c.PublicKey(priv, false)
		require.NoError(t, err)

		k, err := jwk.EncodePublic(c, pub)
		require.NoError(t, err)
		blob, err := json.Marshal(k)
		require.NoError(t, err)

		parsed, err := jwxjwk.ParseKey(blob)
		require.NoError(t, err)

		var raw ed25519.PublicKey
		require.NoError(t, parsed.Raw(&raw))
		require.Equal(t, pub, []byte(raw))
	})

	t.Run("SignerJWKSDocument", func(t *testing.T) {
		c := curve.NewP384(nil)
		priv, err := c.GeneratePrivateKey()
		require.NoError(t, err)
		signer, err := NewSigner(c, priv, "doc-key")
		require.NoError(t, err)

		set, err := signer.JWKS()
		require.NoError(t, err)
		blob, err := json.Marshal(set)
		require.NoError(t, err)

		reparsed, err := jwxjwk.Parse(blob)
		require.NoError(t, err)
		require.Equal(t, 1, reparsed.Len())
		key, ok := reparsed.LookupKeyID("doc-key")
		require.True(t, ok)
		require.Equal(t, jwa.ES384.String(), key.Algorithm().String())
	})
}

func TestWeReadJWXKeys(t *testing.T) {
	t.Run("P256Public", func(t *testing.T) {
		ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		jwxKey, err := jwxjwk.FromRaw(ecKey.Public())
		require.NoError(t, err)
		require.NoError(t, jwxKey.Set(jwxjwk.AlgorithmKey, jwa.ES256))
		blob, err := json.Marshal(jwxKey)
		require.NoError(t, err)

		k, err := jwk.Parse(blob)
		require.NoError(t, err)
		c := curve.NewP256(nil)
		pub, err := jwk.DecodePublic(c, k)
		require.NoError(t, err)

		want := make([]byte, 0, 65)
		want = append(want, 0x04)
		want = append(want, ecKey.X.FillBytes(make([]byte, 32))...)
		want = append(want, ecKey.Y.FillBytes(make([]byte, 32))...)
		require.Equal(t, want, pub)
		require.NoError(t, c.ValidatePublicKey(pub))
	})

	t.Run("P256PublicNoAlg", func(t *testing.T) {
		// Web Crypto and most jwx callers export EC keys without alg;
		// those must decode as-is.
		ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		jwxKey, err := jwxjwk.FromRaw(ecKey.Public())
		require.NoError(t, err)
		blob, err := json.Marshal(jwxKey)
		require.NoError(t, err)

		k, err := jwk.Parse(blob)
		require.NoError(t, err)
		require.Empty(t, k.Alg)
		pub, err := jwk.DecodePublic(curve.NewP256(nil), k)
		require.NoError(t, err)
		require.Equal(t, byte(0x04), pub[0])
	})

	t.Run("P256Private", func(t *testing.T) {
		ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		jwxKey, err := jwxjwk.FromRaw(ecKey)
		require.NoError(t, err)
		require.NoError(t, jwxKey.Set(jwxjwk.AlgorithmKey, jwa.ES256))
		blob, err := json.Marshal(jwxKey)
		require.NoError(t, err)

		k, err := jwk.Parse(blob)
		require.NoError(t, err)
		priv, err := jwk.DecodePrivate(curve.NewP256(nil), k)
		require.NoError(t, err)
		require.Equal(t, ecKey.D.FillBytes(make([]byte, 32)), priv)
	})

	t.Run("Ed25519Public", func(t *testing.T) {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		jwxKey, err := jwxjwk.FromRaw(pub)
		require.NoError(t, err)
		require.NoError(t, jwxKey.Set(jwxjwk.AlgorithmKey, jwa.EdDSA))
		blob, err := json.Marshal(jwxKey)
		require.NoError(t, err)

		k, err := jwk.Parse(blob)
		require.NoError(t, err)
		got, err := jwk.DecodePublic(curve.NewEd25519(nil), k)
		require.NoError(t, err)
		require.Equal(t, []byte(pub), got)
	})
}
