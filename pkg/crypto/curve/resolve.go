package curve

import "fmt"

// algorithmCurves maps each JOSE algorithm to the single curve it implies.
// EdDSA is deliberately absent: it names the Edwards family, not one curve,
// so it cannot resolve to a curve name on its own.
var algorithmCurves = map[string]string{
	AlgES256:  P256,
	AlgES384:  P384,
	AlgES512:  P521,
	AlgES256K: Secp256k1,
}

// ResolveName determines the curve name from an optional curve name and an
// optional algorithm name (either may be empty, not both).
//
//   - Only the curve name given: it passes through untouched; whether it is
//     supported is the factory's question.
//   - Only the algorithm given: it is looked up in the algorithm table. An
//     algorithm outside the table cannot pin down a curve by itself.
//   - Both given: an explicit curve name always wins; if the algorithm is in
//     the table it must agree with it, otherwise ErrAlgorithmMismatch. So
//     (Ed25519, EdDSA) resolves to Ed25519 while (EdDSA) alone does not.
func ResolveName(curveName, algorithm string) (string, error) {
	if curveName == "" && algorithm == "" {
		return "", fmt.Errorf("%w: neither curve nor algorithm given", ErrUnresolvableCurve)
	}
	mapped, ok := algorithmCurves[algorithm]
	if !ok {
		if curveName == "" {
			return "", fmt.Errorf("%w: algorithm %q names no single curve", ErrUnresolvableCurve, algorithm)
		}
		return curveName, nil
	}
	if curveName != "" && curveName != mapped {
		return "", fmt.Errorf("%w: curve %q vs algorithm %q", ErrAlgorithmMismatch, curveName, algorithm)
	}
	return mapped, nil
}

// AlgorithmForCurve returns the JOSE algorithm bound to a supported signing
// curve name, or "" when the curve signs nothing or is unknown.
func AlgorithmForCurve(curveName string) string {
	for alg, name := range algorithmCurves {
		if name == curveName {
			return alg
		}
	}
	if curveName == Ed25519 {
		return AlgEdDSA
	}
	return ""
}
