// main.go - Shielded-pool spend-proof demonstration.
//
// The scenario accumulates a small pool of leaf commitments, spends one of
// them honestly with a leaked secret, and then spends the very same
// commitment a second time using the mirrored secret (GroupOrder - secret).
// Both proofs verify against the same root and the ledger accepts both,
// because the two spends publish different nullifiers.
//
// Usage:
//   go run main.go
//
// Fixtures (leaves.json, leaked_secret.json) and Groth16 keys (proving.key,
// verifying.key) are created on first run and reused afterwards.

package main

import (
	"fmt"
	"log"

	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr"

	"shieldpool/internal/pool"
)

const (
	provingKeyPath   = "proving.key"
	verifyingKeyPath = "verifying.key"
	leavesPath       = "leaves.json"
	leakedSecretPath = "leaked_secret.json"

	poolSize  = 8
	leakIndex = 2
)

// loadOrCreateFixtures returns the accumulated leaf list and the leaked
// secret, generating and persisting both on first run. The leaked secret
// owns the commitment at leakIndex.
func loadOrCreateFixtures() ([]fr.Element, fr.Element, error) {
	leaves, leavesErr := pool.LoadLeaves(leavesPath)
	secret, secretErr := pool.LoadSecret(leakedSecretPath)
	if leavesErr == nil && secretErr == nil {
		return leaves, secret, nil
	}

	log.Println("No fixtures found, generating a fresh pool...")
	leaves = make([]fr.Element, poolSize)
	for i := 0; i < poolSize; i++ {
		s, err := pool.NewSecret()
		if err != nil {
			return nil, fr.Element{}, err
		}
		_, leaves[i] = pool.DeriveCommitment(s)
		if i == leakIndex {
			secret = s
		}
	}
	if err := pool.SaveLeaves(leavesPath, leaves); err != nil {
		return nil, fr.Element{}, err
	}
	if err := pool.SaveSecret(leakedSecretPath, secret); err != nil {
		return nil, fr.Element{}, err
	}
	return leaves, secret, nil
}

func main() {
	fmt.Println("=== Shielded pool spend proof ===")
	fmt.Println("A spender proves membership of a secret-derived commitment in a")
	fmt.Println("public accumulator and publishes a nullifier to mark it spent.")
	fmt.Println("The leaf binds only the x-coordinate of the spender's public key;")
	fmt.Println("this run shows what that costs.")
	fmt.Println()

	// Setup: compile the relation and load or generate the Groth16 keys.
	log.Println("Compiling the spend circuit (BW6-761)...")
	ccs, err := pool.Compile()
	if err != nil {
		log.Fatalf("circuit compilation failed: %v", err)
	}
	pk, vk, err := pool.SetupOrLoadKeys(ccs, provingKeyPath, verifyingKeyPath)
	if err != nil {
		log.Fatalf("key setup failed: %v", err)
	}

	leaves, leakedSecret, err := loadOrCreateFixtures()
	if err != nil {
		log.Fatalf("fixture setup failed: %v", err)
	}

	// Build the accumulator and sanity-check the leaked secret's membership
	// natively before paying for any proof.
	params := pool.DefaultParams()
	acc, err := pool.Build(params, leaves)
	if err != nil {
		log.Fatalf("accumulator build failed: %v", err)
	}
	root := acc.Root()
	log.Printf("Accumulated %d commitments, root = %s", len(leaves), root.String())

	_, leaf := pool.DeriveCommitment(leakedSecret)
	path, err := acc.Path(leakIndex)
	if err != nil {
		log.Fatalf("path generation failed: %v", err)
	}
	if !pool.VerifyPath(params, root, leaf, path) {
		log.Fatalf("leaked secret does not own the commitment at slot %d", leakIndex)
	}

	ledger := pool.NewLedger()

	// Honest spend with the leaked secret.
	log.Printf("Spending the commitment at slot %d...", leakIndex)
	spend, err := pool.CreateSpend(acc, leakIndex, leakedSecret, ccs, pk)
	if err != nil {
		log.Fatalf("spend failed: %v", err)
	}
	if err := pool.VerifySpend(spend, vk); err != nil {
		log.Fatalf("spend verification failed: %v", err)
	}
	if err := ledger.Append(spend); err != nil {
		log.Fatalf("ledger rejected the spend: %v", err)
	}
	log.Printf("Spend accepted, nullifier = %s", spend.Nullifier)

	// Second spend of the same commitment with the mirrored secret.
	log.Println("Spending the same commitment again with the mirrored secret...")
	mirror := pool.MirrorSecret(leakedSecret)
	second, err := pool.CreateSpend(acc, leakIndex, mirror, ccs, pk)
	if err != nil {
		log.Fatalf("mirrored spend failed: %v", err)
	}
	if err := pool.VerifySpend(second, vk); err != nil {
		log.Fatalf("mirrored spend verification failed: %v", err)
	}
	if err := ledger.Append(second); err != nil {
		log.Fatalf("ledger rejected the mirrored spend: %v", err)
	}
	log.Printf("Second spend accepted, nullifier = %s", second.Nullifier)

	if spend.Nullifier == second.Nullifier {
		log.Fatalf("expected distinct nullifiers for the two spends")
	}

	fmt.Println()
	fmt.Println("One commitment, one root, two verified spends, two nullifiers.")
	fmt.Println("The ledger has no way to tell the second spend from a fresh one:")
	fmt.Printf("  nullifier #1: %s\n", spend.Nullifier)
	fmt.Printf("  nullifier #2: %s\n", second.Nullifier)
}
