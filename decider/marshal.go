package decider

import (
	"io"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/crypto/sha3"
)

// WriteTo serializes the verifying key: the Groth16 part first, then the
// KZG constants, PPHash and the state arity.
func (vk *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	n, err := vk.Groth16.WriteTo(w)
	if err != nil {
		return n, err
	}

	enc := curve.NewEncoder(w)
	toEncode := []interface{}{
		&vk.KZG.G1,
		&vk.KZG.G2,
		&vk.KZG.TauG2,
		&vk.PPHash,
		uint64(vk.StateLen),
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return n + enc.BytesWritten(), err
		}
	}
	return n + enc.BytesWritten(), nil
}

// ReadFrom reads a verifying key written by WriteTo.
func (vk *VerifyingKey) ReadFrom(r io.Reader) (int64, error) {
	n, err := vk.Groth16.ReadFrom(r)
	if err != nil {
		return n, err
	}

	dec := curve.NewDecoder(r)
	var stateLen uint64
	toDecode := []interface{}{
		&vk.KZG.G1,
		&vk.KZG.G2,
		&vk.KZG.TauG2,
		&vk.PPHash,
		&stateLen,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return n + dec.BytesRead(), err
		}
	}
	vk.StateLen = int(stateLen)
	return n + dec.BytesRead(), nil
}

// WriteTo serializes a proof bundle in field order.
func (proof *Proof) WriteTo(w io.Writer) (int64, error) {
	n, err := proof.SNARK.WriteTo(w)
	if err != nil {
		return n, err
	}

	enc := curve.NewEncoder(w)
	toEncode := []interface{}{
		&proof.AccCmW,
		&proof.AccCmE,
		&proof.IncCmW,
		&proof.CmT,
		&proof.R,
		&proof.ChallengeW,
		&proof.ChallengeE,
		&proof.EvalW,
		&proof.EvalE,
		&proof.PiW,
		&proof.PiE,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return n + enc.BytesWritten(), err
		}
	}
	return n + enc.BytesWritten(), nil
}

// ReadFrom reads a proof bundle written by WriteTo.
func (proof *Proof) ReadFrom(r io.Reader) (int64, error) {
	n, err := proof.SNARK.ReadFrom(r)
	if err != nil {
		return n, err
	}

	dec := curve.NewDecoder(r)
	toDecode := []interface{}{
		&proof.AccCmW,
		&proof.AccCmE,
		&proof.IncCmW,
		&proof.CmT,
		&proof.R,
		&proof.ChallengeW,
		&proof.ChallengeE,
		&proof.EvalW,
		&proof.EvalE,
		&proof.PiW,
		&proof.PiE,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return n + dec.BytesRead(), err
		}
	}
	return n + dec.BytesRead(), nil
}

// Fingerprint returns the SHA3-256 digest of the serialized key, a stable
// identifier for logs and tooling.
func (vk *VerifyingKey) Fingerprint() ([32]byte, error) {
	var digest [32]byte
	h := sha3.New256()
	if _, err := vk.WriteTo(h); err != nil {
		return digest, err
	}
	copy(digest[:], h.Sum(nil))
	return digest, nil
}
