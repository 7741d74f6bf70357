package groth16

import (
	"math/big"
	"time"

	"github.com/0xKarl98/sonobe/logger"
	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Verify checks a Groth16 proof against vk and the public-input words.
//
// Every word must satisfy 0 ≤ w < r; out-of-field inputs are rejected
// before any group operation runs. The check itself is the single combined
// pairing product e(−Ar, Bs)·e(α, β)·e(vkx, γ)·e(Krs, δ) == 1 with
// vkx = K[0] + Σ inputsᵢ·K[i+1].
func Verify(proof *Proof, vk *VerifyingKey, publicInputs []big.Int) error {
	log := logger.Logger().With().Str("curve", "bn254").Str("backend", "groth16").Logger()
	start := time.Now()

	if len(vk.G1.K) == 0 {
		return errInvalidWitness
	}
	if len(publicInputs) != vk.NbPublicInputs() {
		return errInvalidWitness
	}

	if !proof.Ar.IsOnCurve() || !proof.Krs.IsOnCurve() {
		return ErrInvalidPoint
	}
	if !proof.Bs.IsOnCurve() || !proof.Bs.IsInSubGroup() {
		return ErrInvalidPoint
	}

	r := fr.Modulus()
	scalars := make([]fr.Element, len(publicInputs))
	for i := range publicInputs {
		if publicInputs[i].Sign() < 0 || publicInputs[i].Cmp(r) >= 0 {
			return ErrPublicInputNotInField
		}
		scalars[i].SetBigInt(&publicInputs[i])
	}

	// vkx = K[0] + Σ inputsᵢ·K[i+1]
	var kSum curve.G1Jac
	if _, err := kSum.MultiExp(vk.G1.K[1:], scalars, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	kSum.AddMixed(&vk.G1.K[0])
	var vkx curve.G1Affine
	vkx.FromJacobian(&kSum)

	var negAr curve.G1Affine
	negAr.Neg(&proof.Ar)

	ok, err := curve.PairingCheck(
		[]curve.G1Affine{negAr, vk.G1.Alpha, vkx, proof.Krs},
		[]curve.G2Affine{proof.Bs, vk.G2.Beta, vk.G2.Gamma, vk.G2.Delta},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidProof
	}

	log.Debug().Dur("took", time.Since(start)).Msg("verifier done")
	return nil
}
