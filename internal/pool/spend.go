// spend.go - Spend attempt construction and verification.
//
// A spend attempt bundles the public (root, nullifier) pair with an opaque
// Groth16 proof. Spends are all-or-nothing: a witness that violates any
// circuit constraint makes the prover fail, and a tampered proof or public
// input makes the verifier reject; callers treat both as the same rejected
// outcome.

package pool

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
)

// Spend is a published spend attempt. Root and Nullifier are the circuit's
// public inputs as decimal strings; Proof is the serialized Groth16 proof.
// The leaf index and path stay private with the spender.
type Spend struct {
	Root      string `json:"root"`
	Nullifier string `json:"nullifier"`
	Proof     []byte `json:"proof"`
}

// CreateSpend proves that the secret's derived commitment is accumulated at
// the given slot. Steps:
//  1. Derive the leaf commitment from the secret
//  2. Generate the authentication path and sanity-check it natively, so a
//     stale root or wrong slot is caught before proof generation
//  3. Derive the nullifier and build the full witness
//  4. Generate the Groth16 proof
func CreateSpend(acc *Accumulator, index int, secret fr.Element, ccs constraint.ConstraintSystem, pk groth16.ProvingKey) (*Spend, error) {
	_, leaf := DeriveCommitment(secret)

	path, err := acc.Path(index)
	if err != nil {
		return nil, err
	}
	root := acc.Root()
	if !VerifyPath(acc.Params(), root, leaf, path) {
		return nil, fmt.Errorf("pool: commitment derived from secret is not accumulated at slot %d", index)
	}

	nullifier := Nullifier(secret)

	assignment := &SpendCircuit{
		Root:      root.String(),
		Nullifier: nullifier.String(),
		Secret:    secret.String(),
		LeafIndex: path.Index,
	}
	for i := 0; i < TreeDepth; i++ {
		assignment.Siblings[i] = path.Siblings[i].String()
	}

	w, err := frontend.NewWitness(assignment, ecc.BW6_761.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness creation failed: %w", err)
	}
	proof, err := groth16.Prove(ccs, pk, w)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}
	var proofBuf bytes.Buffer
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		return nil, fmt.Errorf("proof marshaling failed: %w", err)
	}

	return &Spend{
		Root:      root.String(),
		Nullifier: nullifier.String(),
		Proof:     proofBuf.Bytes(),
	}, nil
}

// VerifySpend checks a spend attempt against the verifying key. Steps:
//  1. Rebuild the public witness from (root, nullifier)
//  2. Unmarshal the proof
//  3. Verify the Groth16 proof
//
// Returns an error if verification fails; the caller decides policy.
func VerifySpend(spend *Spend, vk groth16.VerifyingKey) error {
	public := &SpendCircuit{
		Root:      spend.Root,
		Nullifier: spend.Nullifier,
	}
	w, err := frontend.NewWitness(public, ecc.BW6_761.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("public witness creation failed: %w", err)
	}

	proof := groth16.NewProof(ecc.BW6_761)
	if _, err := proof.ReadFrom(bytes.NewReader(spend.Proof)); err != nil {
		return fmt.Errorf("proof unmarshaling failed: %w", err)
	}

	if err := groth16.Verify(proof, vk, w); err != nil {
		return fmt.Errorf("proof verification failed: %w", err)
	}
	return nil
}
