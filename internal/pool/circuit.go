// circuit.go - The spend relation: membership of a derived commitment plus
// correct nullifier derivation, with (root, nullifier) as the only public
// inputs.

package pool

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/sw_bls12377"
	"github.com/consensys/gnark/std/hash/mimc"
)

// SpendCircuit proves knowledge of a secret whose derived public key is a
// leaf commitment included under Root, and whose leaf hash equals Nullifier.
// One instance is built per spend attempt and consumed once by the prover.
type SpendCircuit struct {
	// Public inputs
	Root      frontend.Variable `gnark:",public"`
	Nullifier frontend.Variable `gnark:",public"`

	// Private inputs
	Secret    frontend.Variable
	LeafIndex frontend.Variable
	Siblings  [TreeDepth]frontend.Variable
}

func (c *SpendCircuit) Define(api frontend.API) error {
	// Step 1: Range-check the secret below the BLS12-377 group order, so a
	// residue has exactly one admissible representation as a witness.
	scalarMax := new(big.Int).Sub(GroupOrder(), big.NewInt(1))
	api.AssertIsLessOrEqual(c.Secret, scalarMax)

	// Step 2: Nullifier derivation (nullifier = H(secret))
	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	hasher.Write(c.Secret)
	api.AssertIsEqual(c.Nullifier, hasher.Sum())

	// Step 3: Public key derivation (pk = secret * G); the leaf commitment
	// is the x-coordinate only, which is what lets a mirrored secret reuse
	// the same leaf.
	var pk sw_bls12377.G1Affine
	pk.ScalarMulBase(api, c.Secret)
	leaf := pk.X

	// Step 4: Membership check, the same walk VerifyPath performs natively.
	// Index bit 0 means the running digest is the left child.
	hasher.Reset()
	hasher.Write(leaf)
	current := hasher.Sum()
	directions := api.ToBinary(c.LeafIndex, TreeDepth)
	for i := 0; i < TreeDepth; i++ {
		left := api.Select(directions[i], c.Siblings[i], current)
		right := api.Select(directions[i], current, c.Siblings[i])
		hasher.Reset()
		hasher.Write(left, right)
		current = hasher.Sum()
	}
	api.AssertIsEqual(current, c.Root)

	return nil
}
