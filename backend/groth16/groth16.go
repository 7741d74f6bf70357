// Package groth16 verifies Groth16 proofs over BN254 against a fixed
// verification key.
//
// Only the verifying side lives here: proving keys, witness generation and
// circuit compilation belong to the upstream toolchain that generated the
// key. Public inputs cross the package boundary as raw unsigned words and
// are rejected, never reduced, when they fall outside the scalar field.
package groth16

import (
	"errors"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
)

var (
	// ErrInvalidProof is returned when the pairing product is not the
	// identity: the proof points are well formed but do not prove the
	// statement for the supplied public inputs.
	ErrInvalidProof = errors.New("groth16: invalid proof")

	// ErrPublicInputNotInField is returned when a public input word is not
	// strictly below the scalar field modulus.
	ErrPublicInputNotInField = errors.New("groth16: public input is not in the scalar field")

	// ErrInvalidPoint is returned when a proof point is not on its curve or
	// outside its subgroup; distinguished from a valid-but-wrong proof.
	ErrInvalidPoint = errors.New("groth16: point not in correct subgroup")

	errInvalidWitness = errors.New("groth16: public input length does not match verifying key")
)

// Proof is a Groth16 proof: [Ar]₁, [Bs]₂, [Krs]₁.
type Proof struct {
	Ar  curve.G1Affine
	Bs  curve.G2Affine
	Krs curve.G1Affine
}

// VerifyingKey holds the fixed per-circuit verification constants.
// K carries one G1 point per public input plus the constant wire, so the
// public-input arity of the circuit is len(K)-1.
type VerifyingKey struct {
	G1 struct {
		Alpha curve.G1Affine
		K     []curve.G1Affine
	}
	G2 struct {
		Beta, Gamma, Delta curve.G2Affine
	}
}

// NbPublicInputs returns the public-input arity the key was generated for.
func (vk *VerifyingKey) NbPublicInputs() int {
	return len(vk.G1.K) - 1
}
