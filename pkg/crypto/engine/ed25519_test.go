package engine

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// RFC 8032 section 7.1 test vectors. Ed25519 signing is deterministic, so
// the signatures pin down the whole pipeline, not just key derivation.
var ed25519Vectors = []struct {
	name    string
	seed    string
	pub     string
	message string
	sig     string
}{
	{
		name:    "Test1",
		seed:    "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
		pub:     "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
		message: "",
		sig: "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb882" +
			"1590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
	},
	{
		name:    "Test2",
		seed:    "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
		pub:     "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
		message: "72",
		sig: "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da085ac1" +
			"e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00",
	},
}

func TestEd25519KnownValues(t *testing.T) {
	eng := NewEd25519()

	for _, v := range ed25519Vectors {
		t.Run(v.name, func(t *testing.T) {
			seed, _ := hex.DecodeString(v.seed)
			message, _ := hex.DecodeString(v.message)

			pub, err := eng.PublicKey(seed, false)
			if err != nil {
				t.Fatalf("failed to derive public key: %v", err)
			}
			if hex.EncodeToString(pub) != v.pub {
				t.Errorf("expected public key %s, got %s", v.pub, hex.EncodeToString(pub))
			}

			sig, recovery, err := eng.Sign(message, seed)
			if err != nil {
				t.Fatalf("failed to sign: %v", err)
			}
			if recovery != 0 {
				t.Errorf("expected recovery code 0, got %d", recovery)
			}
			if hex.EncodeToString(sig) != v.sig {
				t.Errorf("expected signature %s, got %s", v.sig, hex.EncodeToString(sig))
			}

			if !eng.Verify(sig, message, pub) {
				t.Error("signature should verify")
			}
		})
	}
}

func TestEd25519Engine(t *testing.T) {
	eng := NewEd25519()

	seed, err := eng.GenerateSeed(systemRandom)
	if err != nil {
		t.Fatalf("failed to generate seed: %v", err)
	}
	pub, err := eng.PublicKey(seed, false)
	if err != nil {
		t.Fatalf("failed to derive public key: %v", err)
	}
	message := []byte("engine test message")

	t.Run("ScalarSize", func(t *testing.T) {
		if eng.ScalarSize() != 32 {
			t.Errorf("expected scalar size 32, got %d", eng.ScalarSize())
		}
	})

	t.Run("SignVerify", func(t *testing.T) {
		sig, _, err := eng.Sign(message, seed)
		if err != nil {
			t.Fatalf("failed to sign: %v", err)
		}
		if len(sig) != 64 {
			t.Fatalf("expected 64 byte signature, got %d", len(sig))
		}
		if !eng.Verify(sig, message, pub) {
			t.Error("signature should verify")
		}

		tampered := bytes.Clone(sig)
		tampered[5] ^= 0x01
		if eng.Verify(tampered, message, pub) {
			t.Error("tampered signature should not verify")
		}
		if eng.Verify(sig, []byte("different message"), pub) {
			t.Error("signature should not verify for a different message")
		}
		if eng.Verify(sig[:63], message, pub) {
			t.Error("truncated signature should not verify")
		}
		if eng.Verify(sig, message, pub[:31]) {
			t.Error("truncated public key should not verify")
		}
	})

	t.Run("InvalidSeed", func(t *testing.T) {
		if _, _, err := eng.Sign(message, seed[:31]); !errors.Is(err, ErrInvalidScalar) {
			t.Errorf("expected ErrInvalidScalar for short seed, got %v", err)
		}
		if _, err := eng.PublicKey(append(seed, 0x00), false); !errors.Is(err, ErrInvalidScalar) {
			t.Errorf("expected ErrInvalidScalar for long seed, got %v", err)
		}
	})

	t.Run("NormalizePoint", func(t *testing.T) {
		out, err := eng.NormalizePoint(pub, false)
		if err != nil {
			t.Fatalf("failed to normalize valid point: %v", err)
		}
		if !bytes.Equal(out, pub) {
			t.Errorf("normalization changed the point: %x", out)
		}

		// The returned slice is a copy, not an alias.
		out[0] ^= 0xff
		if bytes.Equal(out, pub) {
			t.Error("normalized point should be an independent copy")
		}

		if _, err := eng.NormalizePoint(pub[:31], false); !errors.Is(err, ErrInvalidPoint) {
			t.Errorf("expected ErrInvalidPoint for short encoding, got %v", err)
		}
		if _, err := eng.NormalizePoint(append(pub, 0x00), false); !errors.Is(err, ErrInvalidPoint) {
			t.Errorf("expected ErrInvalidPoint for long encoding, got %v", err)
		}
	})
}
