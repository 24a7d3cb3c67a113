package curve

import (
	"errors"
	"testing"
)

func TestFromName(t *testing.T) {
	for _, name := range SupportedCurves() {
		c, err := FromName(name, nil)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", name, err)
		}
		if c.Name() != name {
			t.Fatalf("expected %s, got %s", name, c.Name())
		}
	}

	// Names are exact wire names; no case folding.
	for _, name := range []string{"p-256", "P256", "ED25519", "Secp256k1", "x25519", "unknown", ""} {
		if _, err := FromName(name, nil); !errors.Is(err, ErrUnsupportedCurve) {
			t.Errorf("expected ErrUnsupportedCurve for %q, got %v", name, err)
		}
	}
}

func TestFromAlgorithm(t *testing.T) {
	algorithms := map[string]string{
		AlgES256:  P256,
		AlgES384:  P384,
		AlgES512:  P521,
		AlgES256K: Secp256k1,
	}

	for alg, want := range algorithms {
		c, err := FromAlgorithm(alg, nil)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", alg, err)
		}
		if c.Name() != want {
			t.Fatalf("expected %s for %s, got %s", want, alg, c.Name())
		}
	}

	// EdDSA names the Edwards family, not one curve.
	if _, err := FromAlgorithm(AlgEdDSA, nil); !errors.Is(err, ErrUnresolvableCurve) {
		t.Errorf("expected ErrUnresolvableCurve for EdDSA, got %v", err)
	}
	if _, err := FromAlgorithm("HS256", nil); !errors.Is(err, ErrUnresolvableCurve) {
		t.Errorf("expected ErrUnresolvableCurve for HS256, got %v", err)
	}
}

func TestCurveCapabilities(t *testing.T) {
	cases := []struct {
		name      string
		signs     bool
		agreesKey bool
	}{
		{P256, true, true},
		{P384, true, true},
		{P521, true, true},
		{Secp256k1, true, true},
		{Ed25519, true, false},
		{X25519, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := FromName(tc.name, nil)
			if err != nil {
				t.Fatalf("failed to construct curve: %v", err)
			}
			if _, ok := c.(Signer); ok != tc.signs {
				t.Errorf("Signer capability = %t, want %t", ok, tc.signs)
			}
			if _, ok := c.(KeyAgreer); ok != tc.agreesKey {
				t.Errorf("KeyAgreer capability = %t, want %t", ok, tc.agreesKey)
			}
		})
	}
}

func TestNoRandom(t *testing.T) {
	for _, name := range SupportedCurves() {
		t.Run(name, func(t *testing.T) {
			c, err := FromName(name, NoRandom)
			if err != nil {
				t.Fatalf("failed to construct curve: %v", err)
			}
			if _, err := c.GeneratePrivateKey(); !errors.Is(err, ErrRandomUnavailable) {
				t.Errorf("expected ErrRandomUnavailable, got %v", err)
			}
		})
	}

	// Deterministic operations still work without randomness.
	t.Run("DeterministicOperationsStillWork", func(t *testing.T) {
		seed := make([]byte, 32)
		seed[31] = 7

		c, err := FromName(Ed25519, NoRandom)
		if err != nil {
			t.Fatalf("failed to construct curve: %v", err)
		}
		signer := c.(Signer)
		pub, err := signer.PublicKey(seed, false)
		if err != nil {
			t.Fatalf("failed to derive public key: %v", err)
		}
		sig, err := signer.Sign([]byte("deterministic"), seed)
		if err != nil {
			t.Fatalf("failed to sign: %v", err)
		}
		if !signer.Verify(sig, []byte("deterministic"), pub) {
			t.Error("signature should verify")
		}
	})

	// ECDSA nonces come from the operating system, not the injected
	// source, so Weierstrass signing works on a NoRandom curve too.
	t.Run("WeierstrassSigningStillWorks", func(t *testing.T) {
		seed := make([]byte, 32)
		seed[31] = 7

		c, err := FromName(Secp256k1, NoRandom)
		if err != nil {
			t.Fatalf("failed to construct curve: %v", err)
		}
		signer := c.(Signer)
		pub, err := signer.PublicKey(seed, true)
		if err != nil {
			t.Fatalf("failed to derive public key: %v", err)
		}
		sig, err := signer.Sign([]byte("still signs"), seed)
		if err != nil {
			t.Fatalf("failed to sign: %v", err)
		}
		if !signer.Verify(sig, []byte("still signs"), pub) {
			t.Error("signature should verify")
		}
	})
}

func TestSystemRandomDefault(t *testing.T) {
	// A nil random source falls back to the system source.
	c, err := FromName(P256, nil)
	if err != nil {
		t.Fatalf("failed to construct curve: %v", err)
	}
	priv, err := c.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("failed to generate private key: %v", err)
	}
	if len(priv) != 32 {
		t.Errorf("expected 32 byte private key, got %d", len(priv))
	}
}
