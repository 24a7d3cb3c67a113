package engine

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
)

// recoverWeierstrass computes the public key Q = r^-1 (s*R - e*G) that
// produced the signature (r, s) over digest, where R is the ephemeral point
// reconstructed from r and the recovery code: bit 0 carries the parity of
// R.y, bit 1 is set when R.x overflowed the group order and r = R.x - N.
//
// The math targets the stdlib NIST curves (a = -3, p congruent to 3 mod 4);
// secp256k1 recovery lives in its own engine.
func recoverWeierstrass(curve elliptic.Curve, size int, digest, sig []byte, recovery byte) (x, y *big.Int, err error) {
	params := curve.Params()

	r := new(big.Int).SetBytes(sig[:size])
	s := new(big.Int).SetBytes(sig[size : 2*size])
	if r.Sign() == 0 || r.Cmp(params.N) >= 0 {
		return nil, nil, fmt.Errorf("%w: r out of range", ErrInvalidSignature)
	}
	if s.Sign() == 0 || s.Cmp(params.N) >= 0 {
		return nil, nil, fmt.Errorf("%w: s out of range", ErrInvalidSignature)
	}

	rx := new(big.Int).Set(r)
	if recovery >= 2 {
		rx.Add(rx, params.N)
	}
	if rx.Cmp(params.P) >= 0 {
		return nil, nil, fmt.Errorf("%w: ephemeral x outside the field", ErrInvalidSignature)
	}
	ry, err := decompressY(params, rx, recovery&1 == 1)
	if err != nil {
		return nil, nil, err
	}

	e := hashToInt(digest, params.N)

	rInv := new(big.Int).ModInverse(r, params.N)
	if rInv == nil {
		return nil, nil, fmt.Errorf("%w: r not invertible", ErrInvalidSignature)
	}

	// s*R
	srx, sry := curve.ScalarMult(rx, ry, s.Bytes())
	// -e*G
	negE := new(big.Int).Neg(e)
	negE.Mod(negE, params.N)
	egx, egy := curve.ScalarBaseMult(negE.Bytes())
	// r^-1 (s*R - e*G)
	sumX, sumY := curve.Add(srx, sry, egx, egy)
	qx, qy := curve.ScalarMult(sumX, sumY, rInv.Bytes())
	if qx.Sign() == 0 && qy.Sign() == 0 {
		return nil, nil, fmt.Errorf("%w: recovered the point at infinity", ErrInvalidSignature)
	}
	return qx, qy, nil
}

// decompressY solves y^2 = x^3 - 3x + b for the root with the requested
// parity. All three NIST primes are congruent to 3 mod 4, so the square
// root, when it exists, is a^((p+1)/4) mod p.
func decompressY(params *elliptic.CurveParams, x *big.Int, odd bool) (*big.Int, error) {
	p := params.P

	y2 := new(big.Int).Mul(x, x)
	y2.Mul(y2, x)
	threeX := new(big.Int).Lsh(x, 1)
	threeX.Add(threeX, x)
	y2.Sub(y2, threeX)
	y2.Add(y2, params.B)
	y2.Mod(y2, p)

	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Rsh(exp, 2)
	y := new(big.Int).Exp(y2, exp, p)

	check := new(big.Int).Mul(y, y)
	check.Mod(check, p)
	if check.Cmp(y2) != 0 {
		return nil, fmt.Errorf("%w: x has no square root on the curve", ErrInvalidSignature)
	}
	if (y.Bit(0) == 1) != odd {
		y.Sub(p, y)
	}
	return y, nil
}

// hashToInt converts a digest to an integer the way ECDSA prescribes: take
// the leftmost bits up to the bit length of the order.
func hashToInt(digest []byte, n *big.Int) *big.Int {
	orderBits := n.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(digest) > orderBytes {
		digest = digest[:orderBytes]
	}
	e := new(big.Int).SetBytes(digest)
	if excess := len(digest)*8 - orderBits; excess > 0 {
		e.Rsh(e, uint(excess))
	}
	return e
}
