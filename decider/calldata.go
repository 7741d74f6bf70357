package decider

import (
	"errors"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/0xKarl98/sonobe/backend/groth16"
)

// Opaque calling conventions: the same verification logic reachable from
// callers that can only supply flat word arrays. Adapters reshape and
// delegate; field placement is fixed and must never change, it is part of
// the wire contract. Both fix the state arity at one word.
const (
	// FlatProofLen is the word count of the flat proof tuple:
	// accCmW(2), accCmE(2), incCmW(2), cmT(2), r, Ar(2),
	// Bs(4: X.A1, X.A0, Y.A1, Y.A0), Krs(2),
	// challengeW, challengeE, evalW, evalE, piW(2), piE(2).
	FlatProofLen = 25

	// CalldataLen prepends the step count and the two state words:
	// steps, z0, zi, proof[FlatProofLen].
	CalldataLen = FlatProofLen + 3
)

var errCalldataLen = errors.New("decider: unexpected calldata length")

// VerifyFlatProof is the opaque counterpart of Verify for state arity one:
// the step count, the single initial and final state words, and the proof
// flattened to FlatProofLen words.
func VerifyFlatProof(vk *VerifyingKey, steps, z0, zi *big.Int, proof []*big.Int) error {
	if len(proof) != FlatProofLen {
		return errCalldataLen
	}
	if steps == nil || !steps.IsUint64() {
		return ErrStepCount
	}

	var z0El, ziEl [1]fr.Element
	if err := setScalar(&z0El[0], z0); err != nil {
		return err
	}
	if err := setScalar(&ziEl[0], zi); err != nil {
		return err
	}

	p, err := parseFlatProof(proof)
	if err != nil {
		return err
	}

	return Verify(vk, steps.Uint64(), z0El[:], ziEl[:], p)
}

// parseFlatProof reshapes the FlatProofLen words into a structured proof,
// enforcing the boundary checks of every slot.
func parseFlatProof(proof []*big.Int) (*Proof, error) {
	var p Proof
	if err := setG1(&p.AccCmW, proof[0], proof[1]); err != nil {
		return nil, err
	}
	if err := setG1(&p.AccCmE, proof[2], proof[3]); err != nil {
		return nil, err
	}
	if err := setG1(&p.IncCmW, proof[4], proof[5]); err != nil {
		return nil, err
	}
	if err := setG1(&p.CmT, proof[6], proof[7]); err != nil {
		return nil, err
	}
	if err := setScalar(&p.R, proof[8]); err != nil {
		return nil, err
	}
	if err := setG1(&p.SNARK.Ar, proof[9], proof[10]); err != nil {
		return nil, err
	}
	if err := setG2(&p.SNARK.Bs, proof[11], proof[12], proof[13], proof[14]); err != nil {
		return nil, err
	}
	if err := setG1(&p.SNARK.Krs, proof[15], proof[16]); err != nil {
		return nil, err
	}
	if err := setScalar(&p.ChallengeW, proof[17]); err != nil {
		return nil, err
	}
	if err := setScalar(&p.ChallengeE, proof[18]); err != nil {
		return nil, err
	}
	if err := setScalar(&p.EvalW, proof[19]); err != nil {
		return nil, err
	}
	if err := setScalar(&p.EvalE, proof[20]); err != nil {
		return nil, err
	}
	if err := setG1(&p.PiW, proof[21], proof[22]); err != nil {
		return nil, err
	}
	if err := setG1(&p.PiE, proof[23], proof[24]); err != nil {
		return nil, err
	}

	return &p, nil
}

// VerifyCalldata is the fully flat entry point: a single CalldataLen word
// array laid out [steps, z0, zi, proof...].
func VerifyCalldata(vk *VerifyingKey, calldata []*big.Int) error {
	if len(calldata) != CalldataLen {
		return errCalldataLen
	}
	return VerifyFlatProof(vk, calldata[0], calldata[1], calldata[2], calldata[3:])
}

// setScalar rejects words outside [0, r) rather than reducing them.
func setScalar(e *fr.Element, w *big.Int) error {
	if w == nil || w.Sign() < 0 || w.Cmp(fr.Modulus()) >= 0 {
		return groth16.ErrPublicInputNotInField
	}
	e.SetBigInt(w)
	return nil
}

// setG1 parses a coordinate pair; out-of-range words and coordinate pairs
// off the curve are malformed points, not wrong proofs. (0,0) is the
// identity and is accepted.
func setG1(p *curve.G1Affine, x, y *big.Int) error {
	if x == nil || y == nil ||
		x.Sign() < 0 || x.Cmp(fp.Modulus()) >= 0 ||
		y.Sign() < 0 || y.Cmp(fp.Modulus()) >= 0 {
		return ErrInvalidPoint
	}
	p.X.SetBigInt(x)
	p.Y.SetBigInt(y)
	if !p.IsOnCurve() {
		return ErrInvalidPoint
	}
	return nil
}

// setG2 parses a G2 coordinate quadruple in the conventional encoding
// order (imaginary part first: X.A1, X.A0, Y.A1, Y.A0).
func setG2(p *curve.G2Affine, x1, x0, y1, y0 *big.Int) error {
	for _, w := range []*big.Int{x1, x0, y1, y0} {
		if w == nil || w.Sign() < 0 || w.Cmp(fp.Modulus()) >= 0 {
			return ErrInvalidPoint
		}
	}
	p.X.A1.SetBigInt(x1)
	p.X.A0.SetBigInt(x0)
	p.Y.A1.SetBigInt(y1)
	p.Y.A0.SetBigInt(y0)
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return ErrInvalidPoint
	}
	return nil
}
