package jwk

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/curvekey/curvekey-go/pkg/bytecodec"
)

// Thumbprint computes the RFC 7638 thumbprint of k: the base64url SHA-256
// of the canonical JSON holding only the required members, sorted by name.
//
//	EC:  {"crv":...,"kty":"EC","x":...,"y":...}
//	OKP: {"crv":...,"kty":"OKP","x":...}        (RFC 8037 section 2)
//
// Marshaling a map gives the sorted member order for free. The thumbprint
// of a private JWK equals the thumbprint of its public part, since d is
// never a required member.
func Thumbprint(k *Key) (string, error) {
	if k.Kty == "" {
		return "", fmt.Errorf("%w: kty", ErrFieldMissing)
	}
	if k.Crv == "" {
		return "", fmt.Errorf("%w: crv", ErrFieldMissing)
	}
	if k.X == "" {
		return "", fmt.Errorf("%w: x", ErrFieldMissing)
	}
	canonical := map[string]string{"crv": k.Crv, "kty": k.Kty, "x": k.X}
	switch k.Kty {
	case "EC":
		if k.Y == "" {
			return "", fmt.Errorf("%w: y", ErrFieldMissing)
		}
		canonical["y"] = k.Y
	case "OKP":
	default:
		return "", fmt.Errorf("%w: kty %q", ErrUnsupportedKey, k.Kty)
	}

	blob, err := json.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("canonicalize jwk: %w", err)
	}
	sum := sha256.Sum256(blob)
	return bytecodec.Encode(sum[:]), nil
}
