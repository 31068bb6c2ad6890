// commitment.go - Commitment and nullifier derivation for the shielded pool.
//
// A secret scalar maps to a public key on BLS12-377 by fixed-base scalar
// multiplication; the published leaf commitment is the x-coordinate of that
// point. The nullifier is the MiMC hash of the secret itself. Both
// derivations have bit-identical in-circuit counterparts in circuit.go.

package pool

import (
	"crypto/rand"
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	bls12377_fr "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr"
	mimcNative "github.com/consensys/gnark-crypto/ecc/bw6-761/fr/mimc"
)

// GroupOrder returns the order of the BLS12-377 G1 group. Secrets are
// sampled strictly below it so that each secret has a unique field
// representation inside the circuit's range check.
func GroupOrder() *big.Int {
	return bls12377_fr.Modulus()
}

// NewSecret samples a uniform secret scalar in [0, GroupOrder).
func NewSecret() (fr.Element, error) {
	var s fr.Element
	k, err := rand.Int(rand.Reader, GroupOrder())
	if err != nil {
		return s, err
	}
	s.SetBigInt(k)
	return s, nil
}

// DeriveCommitment computes the public key secret * G and the leaf
// commitment, which is the x-coordinate of that point lifted into the
// accumulator's field. Pure; no side effects.
func DeriveCommitment(secret fr.Element) (bls12377.G1Affine, fr.Element) {
	g1Jac, _, _, _ := bls12377.Generators()
	var g, pk bls12377.G1Affine
	g.FromJacobian(&g1Jac)
	pk.ScalarMultiplication(&g, secret.BigInt(new(big.Int)))

	// BLS12-377's base field and BW6-761's scalar field share a modulus,
	// so the lift is a plain re-encoding.
	var leaf fr.Element
	leaf.SetBigInt(pk.X.BigInt(new(big.Int)))
	return pk, leaf
}

// Nullifier derives the value published at spend time: the leaf hash of the
// secret alone.
func Nullifier(secret fr.Element) fr.Element {
	return LeafHash(secret)
}

// MirrorSecret returns GroupOrder - secret. The mirrored secret derives the
// negated public key, which shares the x-coordinate of the original and
// therefore the same leaf commitment and the same membership path, while
// hashing to a different nullifier. This is the double-spend equivalence
// the x-only leaf binding admits.
func MirrorSecret(secret fr.Element) fr.Element {
	m := new(big.Int).Sub(GroupOrder(), secret.BigInt(new(big.Int)))
	var out fr.Element
	out.SetBigInt(m)
	return out
}

// LeafHash hashes a sequence of field elements with the pool's leaf hash.
// Writes use the canonical encoding so the digest matches the in-circuit
// MiMC gadget on the same inputs.
func LeafHash(elements ...fr.Element) fr.Element {
	h := mimcNative.NewMiMC()
	for i := range elements {
		b := elements[i].Bytes()
		h.Write(b[:])
	}
	var d fr.Element
	d.SetBytes(h.Sum(nil))
	return d
}

// CompressDigests is the two-to-one hash for internal tree nodes.
func CompressDigests(left, right fr.Element) fr.Element {
	h := mimcNative.NewMiMC()
	lb := left.Bytes()
	rb := right.Bytes()
	h.Write(lb[:])
	h.Write(rb[:])
	var d fr.Element
	d.SetBytes(h.Sum(nil))
	return d
}
