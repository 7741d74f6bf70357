// Package limbs converts BN254 base field elements into fixed-width limbs
// representable in the scalar field.
//
// The decider SNARK runs over fr while the commitments it binds live over
// fp, which is larger. Coordinates are therefore re-expressed as 5 limbs of
// 55 bits each (275 bits ≥ 254) so they can sit in the circuit's
// public-input vector without foreign-field arithmetic inside the circuit.
package limbs

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	// Count is the number of limbs per base field element.
	Count = 5
	// Width is the bit width of one limb.
	Width = 55
)

var errLimbOverflow = errors.New("limbs: limb exceeds 55 bits")

var mask = new(big.Int).SetUint64(1<<Width - 1)

// Decompose splits x into Count limbs of Width bits, least significant limb
// first. Each limb fits in the scalar field by construction.
func Decompose(x *fp.Element) [Count]fr.Element {
	var b big.Int
	x.BigInt(&b)

	var out [Count]fr.Element
	var limb big.Int
	for i := 0; i < Count; i++ {
		limb.And(&b, mask)
		out[i].SetBigInt(&limb)
		b.Rsh(&b, Width)
	}
	return out
}

// Recompose is the inverse of Decompose: it returns Σ lᵢ·2^(Width·i) mod p.
// It errors if a limb does not fit in Width bits.
func Recompose(l [Count]fr.Element) (fp.Element, error) {
	var acc, limb big.Int
	var res fp.Element
	for i := Count - 1; i >= 0; i-- {
		l[i].BigInt(&limb)
		if limb.BitLen() > Width {
			return res, errLimbOverflow
		}
		acc.Lsh(&acc, Width)
		acc.Add(&acc, &limb)
	}
	res.SetBigInt(&acc)
	return res, nil
}
