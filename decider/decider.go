// Package decider verifies the final proof of a Nova-style IVC chain folded
// with an auxiliary CycleFold curve, over BN254.
//
// A decider proof bundle carries the accumulated and incoming instance
// commitments, the cross-term commitment and folding challenge of the last
// fold, two KZG opening proofs for the folded witness and error-term
// commitments, and a Groth16 proof that the openings satisfy the final
// relaxed R1CS relation. Verification re-folds the commitments, rebuilds
// the SNARK public-input vector from their limb decomposition, and checks
// the two openings and the SNARK in a fixed short-circuit order.
//
// The verification keys are constants of one (circuit, parameter set)
// instance, established at generation time and never mutated; a
// verification call holds no state and has no side effects.
package decider

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/0xKarl98/sonobe/backend/groth16"
	"github.com/0xKarl98/sonobe/backend/kzg"
	"github.com/0xKarl98/sonobe/internal/limbs"
	"github.com/0xKarl98/sonobe/logger"
)

var (
	// ErrStepCount rejects chains that never folded: below two steps the
	// decider relation does not apply.
	ErrStepCount = errors.New("decider: step count below folding threshold")

	// ErrInvalidPoint is returned when a supplied coordinate pair is not a
	// valid curve point; a hard failure, distinct from a wrong proof.
	ErrInvalidPoint = errors.New("decider: point not on curve")

	// ErrCmWOpening and ErrCmEOpening identify which folded commitment
	// failed to open at its evaluation challenge.
	ErrCmWOpening = errors.New("decider: folded witness commitment opening failed")
	ErrCmEOpening = errors.New("decider: folded error term commitment opening failed")

	errInvalidStateLen = errors.New("decider: state vector length does not match verifying key")
	errKeyArity        = errors.New("decider: verifying key public input arity mismatch")
)

// VerifyingKey holds the fixed constants of one verifier instance.
type VerifyingKey struct {
	Groth16 groth16.VerifyingKey
	KZG     kzg.VerifyingKey

	// PPHash binds the instance to the folding-scheme parameters it was
	// generated for; it occupies the first public-input slot.
	PPHash fr.Element

	// StateLen is the arity of the IVC state vector z.
	StateLen int
}

// NbPublicInputs returns the public-input arity of the decider circuit:
// PPHash, step count, z0, zi, 5 limbs per coordinate of cmW, cmE and cmT,
// and the four evaluation challenges and claims.
func (vk *VerifyingKey) NbPublicInputs() int {
	return 2 + 2*vk.StateLen + 2*3*limbs.Count + 4
}

// Proof is a decider proof bundle, produced by the folding scheme's proving
// side.
type Proof struct {
	// AccCmW, AccCmE commit to the accumulated relaxed instance U_i.
	AccCmW, AccCmE curve.G1Affine

	// IncCmW commits to the incoming strict instance witness (its error
	// term is zero by construction and carries no commitment).
	IncCmW curve.G1Affine

	// CmT commits to the cross term of the final fold; R is the folding
	// challenge of that fold, produced by the scheme's transcript.
	CmT curve.G1Affine
	R   fr.Element

	// SNARK proves that the folded instance satisfies the final relaxed
	// R1CS relation at the openings below.
	SNARK groth16.Proof

	// ChallengeW, ChallengeE are the KZG evaluation challenges for the
	// folded witness and error-term commitments; EvalW, EvalE the claimed
	// evaluations; PiW, PiE the opening proofs.
	ChallengeW, ChallengeE fr.Element
	EvalW, EvalE           fr.Element
	PiW, PiE               curve.G1Affine
}

// Verify checks a decider proof for an IVC execution of the given number of
// steps from state z0 to state zi. Checks run in a fixed order and
// short-circuit on the first failure: step-count precondition, point
// well-formedness, KZG opening of the folded witness commitment, KZG
// opening of the folded error-term commitment, Groth16.
func Verify(vk *VerifyingKey, steps uint64, z0, zi []fr.Element, proof *Proof) error {
	log := logger.Logger().With().Str("curve", "bn254").Str("protocol", "nova/decider").Logger()
	start := time.Now()

	if steps < 2 {
		return ErrStepCount
	}
	if len(z0) != vk.StateLen || len(zi) != vk.StateLen {
		return errInvalidStateLen
	}
	if len(vk.Groth16.G1.K) != vk.NbPublicInputs()+1 {
		return errKeyArity
	}
	for _, p := range []*curve.G1Affine{
		&proof.AccCmW, &proof.AccCmE, &proof.IncCmW, &proof.CmT, &proof.PiW, &proof.PiE,
	} {
		if !p.IsOnCurve() {
			return ErrInvalidPoint
		}
	}

	// re-fold the commitments the proving side claims to have produced:
	// cmW = U.cmW + r·u.cmW, cmE = U.cmE + r·cmT
	var r big.Int
	proof.R.BigInt(&r)
	var cmW, cmE, tmp curve.G1Affine
	tmp.ScalarMultiplication(&proof.IncCmW, &r)
	cmW.Add(&proof.AccCmW, &tmp)
	tmp.ScalarMultiplication(&proof.CmT, &r)
	cmE.Add(&proof.AccCmE, &tmp)

	openingW := kzg.OpeningProof{H: proof.PiW, ClaimedValue: proof.EvalW}
	if err := kzg.Verify(&cmW, &openingW, proof.ChallengeW, vk.KZG); err != nil {
		return fmt.Errorf("%w: %w", ErrCmWOpening, err)
	}
	openingE := kzg.OpeningProof{H: proof.PiE, ClaimedValue: proof.EvalE}
	if err := kzg.Verify(&cmE, &openingE, proof.ChallengeE, vk.KZG); err != nil {
		return fmt.Errorf("%w: %w", ErrCmEOpening, err)
	}

	publicInputs := vk.publicInputs(steps, z0, zi, &cmW, &cmE, proof)
	if err := groth16.Verify(&proof.SNARK, &vk.Groth16, publicInputs); err != nil {
		return fmt.Errorf("decider snark: %w", err)
	}

	log.Debug().Uint64("steps", steps).Dur("took", time.Since(start)).Msg("decider proof verified")
	return nil
}

// publicInputs assembles the SNARK public-input vector in the fixed slot
// order the decider circuit was compiled with: PPHash, step count, z0, zi,
// limbs of cmW, cmE, cmT (x then y, least significant limb first), then
// challengeW, challengeE, evalW, evalE.
func (vk *VerifyingKey) publicInputs(steps uint64, z0, zi []fr.Element, cmW, cmE *curve.G1Affine, proof *Proof) []big.Int {
	words := make([]big.Int, 0, vk.NbPublicInputs())
	push := func(e *fr.Element) {
		var w big.Int
		e.BigInt(&w)
		words = append(words, w)
	}

	var stepsEl fr.Element
	stepsEl.SetUint64(steps)
	push(&vk.PPHash)
	push(&stepsEl)
	for i := range z0 {
		push(&z0[i])
	}
	for i := range zi {
		push(&zi[i])
	}
	for _, p := range []*curve.G1Affine{cmW, cmE, &proof.CmT} {
		for _, coord := range []*fp.Element{&p.X, &p.Y} {
			dec := limbs.Decompose(coord)
			for i := range dec {
				push(&dec[i])
			}
		}
	}
	push(&proof.ChallengeW)
	push(&proof.ChallengeE)
	push(&proof.EvalW)
	push(&proof.EvalE)
	return words
}
