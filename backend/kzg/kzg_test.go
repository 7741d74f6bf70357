package kzg

import (
	"math/big"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

// testSetup builds a verifying key from a known trapdoor τ, so openings can
// be synthesized without an SRS.
func testSetup(t *testing.T) (VerifyingKey, fr.Element) {
	t.Helper()
	var tau fr.Element
	_, err := tau.SetRandom()
	require.NoError(t, err)

	_, _, g1, g2 := curve.Generators()
	var b big.Int
	var tauG2 curve.G2Affine
	tauG2.ScalarMultiplication(&g2, tau.BigInt(&b))

	return VerifyingKey{G1: g1, G2: g2, TauG2: tauG2}, tau
}

func g1Scalar(s *fr.Element) curve.G1Affine {
	_, _, g1, _ := curve.Generators()
	var b big.Int
	var p curve.G1Affine
	p.ScalarMultiplication(&g1, s.BigInt(&b))
	return p
}

// open computes the quotient commitment for f at point x using the trapdoor.
func open(f []fr.Element, x, tau fr.Element) OpeningProof {
	y := Eval(f, x)
	fTau := Eval(f, tau)

	var num, den, q fr.Element
	num.Sub(&fTau, &y)
	den.Sub(&tau, &x)
	q.Div(&num, &den)

	return OpeningProof{H: g1Scalar(&q), ClaimedValue: y}
}

func randomPoly(t *testing.T, degree int) []fr.Element {
	t.Helper()
	f := make([]fr.Element, degree+1)
	for i := range f {
		_, err := f[i].SetRandom()
		require.NoError(t, err)
	}
	return f
}

func TestVerify(t *testing.T) {
	assert := require.New(t)
	vk, tau := testSetup(t)

	f := randomPoly(t, 4)
	fTau := Eval(f, tau)
	commitment := g1Scalar(&fTau)

	var x fr.Element
	_, err := x.SetRandom()
	assert.NoError(err)

	proof := open(f, x, tau)
	assert.NoError(Verify(&commitment, &proof, x, vk))

	// tampered claimed value
	bad := proof
	bad.ClaimedValue.Add(&bad.ClaimedValue, new(fr.Element).SetOne())
	assert.ErrorIs(Verify(&commitment, &bad, x, vk), ErrVerifyOpeningProof)

	// opening checked at the wrong point
	var x2 fr.Element
	x2.Add(&x, new(fr.Element).SetOne())
	assert.ErrorIs(Verify(&commitment, &proof, x2, vk), ErrVerifyOpeningProof)

	// tampered quotient commitment
	bad = proof
	bad.H.Neg(&bad.H)
	assert.ErrorIs(Verify(&commitment, &bad, x, vk), ErrVerifyOpeningProof)
}

func TestVerifyMalformedPoint(t *testing.T) {
	assert := require.New(t)
	vk, tau := testSetup(t)

	f := randomPoly(t, 2)
	fTau := Eval(f, tau)
	commitment := g1Scalar(&fTau)

	var x fr.Element
	_, err := x.SetRandom()
	assert.NoError(err)
	proof := open(f, x, tau)

	// (1,1) is not on y² = x³ + 3
	var off Digest
	off.X.SetOne()
	off.Y.SetOne()
	assert.ErrorIs(Verify(&off, &proof, x, vk), ErrInvalidPoint)

	bad := proof
	bad.H = off
	assert.ErrorIs(Verify(&commitment, &bad, x, vk), ErrInvalidPoint)
}

func TestEval(t *testing.T) {
	assert := require.New(t)

	f := randomPoly(t, 6)
	var x fr.Element
	_, err := x.SetRandom()
	assert.NoError(err)

	// naive power sum
	var acc, pow, term fr.Element
	pow.SetOne()
	for i := range f {
		term.Mul(&pow, &f[i])
		acc.Add(&acc, &term)
		pow.Mul(&pow, &x)
	}

	got := Eval(f, x)
	assert.True(got.Equal(&acc))

	// empty polynomial evaluates to zero
	var zero fr.Element
	got = Eval(nil, x)
	assert.True(got.Equal(&zero))
}
