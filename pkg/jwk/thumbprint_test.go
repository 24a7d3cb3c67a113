package jwk

import (
	"errors"
	"strings"
	"testing"
)

func TestThumbprintKnownValues(t *testing.T) {
	// The Ed25519 value is the worked example from RFC 8037 appendix A.3.
	cases := []struct {
		name string
		key  Key
		want string
	}{
		{"Ed25519RFC8037", ed25519TestKey, "kPrK_qmxVWaYVA9wwBF6Iuo3vVzz7TxHCTwXBygrS4k"},
		{"P256Generator", p256GeneratorKey, "xx0BcA-wMohw8atYDJOe6peGModklG2wRHBlXHMvl0M"},
		{"Secp256k1Generator", secp256k1GeneratorKey, "2JF8vg9etJzjFwZwmkvhBLLZ0bfMVVOPivYR5lFtcec"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Thumbprint(&tc.key)
			if err != nil {
				t.Fatalf("failed to compute thumbprint: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
			if len(got) != 43 {
				t.Errorf("expected 43 base64url characters, got %d", len(got))
			}
		})
	}
}

func TestThumbprintIgnoresOptionalMembers(t *testing.T) {
	base, err := Thumbprint(&p256GeneratorKey)
	if err != nil {
		t.Fatalf("failed to compute thumbprint: %v", err)
	}

	decorated := p256GeneratorKey
	decorated.Kid = "key-1"
	decorated.Use = "sig"
	decorated.D = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAE"
	got, err := Thumbprint(&decorated)
	if err != nil {
		t.Fatalf("failed to compute thumbprint: %v", err)
	}
	if got != base {
		t.Error("kid, use, alg and d should not change the thumbprint")
	}
}

func TestThumbprintErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Key)
		wantErr error
		field   string
	}{
		{"MissingKty", func(k *Key) { k.Kty = "" }, ErrFieldMissing, "kty"},
		{"MissingCrv", func(k *Key) { k.Crv = "" }, ErrFieldMissing, "crv"},
		{"MissingX", func(k *Key) { k.X = "" }, ErrFieldMissing, "x"},
		{"MissingY", func(k *Key) { k.Y = "" }, ErrFieldMissing, "y"},
		{"UnknownKty", func(k *Key) { k.Kty = "RSA" }, ErrUnsupportedKey, "RSA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := p256GeneratorKey
			tc.mutate(&k)
			_, err := Thumbprint(&k)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error should mention %q: %v", tc.field, err)
			}
		})
	}

	t.Run("OKPWithoutY", func(t *testing.T) {
		if _, err := Thumbprint(&ed25519TestKey); err != nil {
			t.Errorf("OKP keys carry no y: %v", err)
		}
	})
}
