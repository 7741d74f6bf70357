// Package kzg verifies KZG10 opening proofs over BN254.
//
// The verification key is the fixed generator pair plus [τ]₂ pinned at
// setup. The pairing equation is rearranged so that no G2 scalar
// multiplication is needed: with rhs = [claim]G₁ − [point]H − commitment,
// the opening holds iff e(H, [τ]₂)·e(rhs, G₂) == 1.
package kzg

import (
	"errors"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	// ErrVerifyOpeningProof is returned when the pairing equation does not
	// hold; the commitment, point and claimed value are consistent inputs
	// but do not form a valid opening.
	ErrVerifyOpeningProof = errors.New("kzg: can't verify opening proof")

	// ErrInvalidPoint is returned when a supplied coordinate pair is not a
	// point of the expected group. This is a malformed input, not a proof
	// that fails to open.
	ErrInvalidPoint = errors.New("kzg: point not on curve")
)

// Digest is a commitment to a polynomial.
type Digest = curve.G1Affine

// OpeningProof opens a committed polynomial at a single point.
type OpeningProof struct {
	// H is the quotient commitment (f(X)-f(point))/(X-point).
	H curve.G1Affine

	// ClaimedValue is the purported f(point).
	ClaimedValue fr.Element
}

// VerifyingKey holds the setup constants needed to check openings.
type VerifyingKey struct {
	G1    curve.G1Affine // generator of G₁
	G2    curve.G2Affine // generator of G₂
	TauG2 curve.G2Affine // [τ]₂
}

// Verify checks that proof opens commitment at point to proof.ClaimedValue.
func Verify(commitment *Digest, proof *OpeningProof, point fr.Element, vk VerifyingKey) error {
	if !commitment.IsOnCurve() || !proof.H.IsOnCurve() {
		return ErrInvalidPoint
	}

	// rhs = [claim]G₁ − [point]H − commitment
	var s big.Int
	var claimG1, pointH, negC, rhs curve.G1Affine
	claimG1.ScalarMultiplication(&vk.G1, proof.ClaimedValue.BigInt(&s))
	pointH.ScalarMultiplication(&proof.H, point.BigInt(&s))
	pointH.Neg(&pointH)
	negC.Neg(commitment)
	rhs.Add(&claimG1, &pointH)
	rhs.Add(&rhs, &negC)

	ok, err := curve.PairingCheck(
		[]curve.G1Affine{proof.H, rhs},
		[]curve.G2Affine{vk.TauG2, vk.G2},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerifyOpeningProof
	}
	return nil
}

// Eval evaluates a polynomial given by its coefficients (constant term
// first) at point, by Horner accumulation. Utility only; Verify does not
// depend on it.
func Eval(p []fr.Element, point fr.Element) fr.Element {
	var res fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		res.Mul(&res, &point)
		res.Add(&res, &p[i])
	}
	return res
}
