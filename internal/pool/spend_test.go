package pool

import (
	"errors"
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
)

// Compilation and trusted setup over BW6-761 dominate test time, so all
// circuit tests share one setup.
var (
	setupOnce sync.Once
	setupErr  error
	testCCS   constraint.ConstraintSystem
	testPK    groth16.ProvingKey
	testVK    groth16.VerifyingKey
)

func circuitSetup(t *testing.T) (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey) {
	t.Helper()
	setupOnce.Do(func() {
		testCCS, setupErr = Compile()
		if setupErr != nil {
			return
		}
		testPK, testVK, setupErr = groth16.Setup(testCCS)
	})
	if setupErr != nil {
		t.Fatalf("circuit setup: %v", setupErr)
	}
	return testCCS, testPK, testVK
}

// buildTestPool accumulates n fresh commitments and returns their secrets.
func buildTestPool(t *testing.T, n int) ([]fr.Element, *Accumulator) {
	t.Helper()
	secrets := make([]fr.Element, n)
	leaves := make([]fr.Element, n)
	for i := range secrets {
		s, err := NewSecret()
		if err != nil {
			t.Fatalf("NewSecret failed: %v", err)
		}
		secrets[i] = s
		_, leaves[i] = DeriveCommitment(s)
	}
	acc, err := Build(DefaultParams(), leaves)
	if err != nil {
		t.Fatalf("build accumulator: %v", err)
	}
	return secrets, acc
}

func TestSpendEndToEnd(t *testing.T) {
	ccs, pk, vk := circuitSetup(t)
	secrets, acc := buildTestPool(t, 8)

	spend, err := CreateSpend(acc, 2, secrets[2], ccs, pk)
	if err != nil {
		t.Fatalf("CreateSpend failed: %v", err)
	}
	if err := VerifySpend(spend, vk); err != nil {
		t.Fatalf("VerifySpend failed: %v", err)
	}

	nullifier := Nullifier(secrets[2])
	if spend.Nullifier != nullifier.String() {
		t.Errorf("published nullifier does not match the secret's derivation")
	}

	ledger := NewLedger()
	if err := ledger.Append(spend); err != nil {
		t.Fatalf("ledger append failed: %v", err)
	}
	if err := ledger.Append(spend); !errors.Is(err, ErrDoubleSpend) {
		t.Errorf("replaying the identical spend should hit the nullifier check, got %v", err)
	}
}

func TestSpendForeignSecretRejected(t *testing.T) {
	ccs, pk, _ := circuitSetup(t)
	_, acc := buildTestPool(t, 8)

	foreign, err := NewSecret()
	if err != nil {
		t.Fatalf("NewSecret failed: %v", err)
	}
	if _, err := CreateSpend(acc, 2, foreign, ccs, pk); err == nil {
		t.Errorf("spending a secret whose commitment is not accumulated should fail")
	}
}

func TestSpendWrongNullifierUnsatisfiable(t *testing.T) {
	ccs, pk, vk := circuitSetup(t)
	secrets, acc := buildTestPool(t, 8)

	path, err := acc.Path(2)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	root := acc.Root()
	wrong := Nullifier(secrets[3]) // valid-looking digest, wrong secret

	assignment := &SpendCircuit{
		Root:      root.String(),
		Nullifier: wrong.String(),
		Secret:    secrets[2].String(),
		LeafIndex: 2,
	}
	for i := 0; i < TreeDepth; i++ {
		assignment.Siblings[i] = path.Siblings[i].String()
	}
	w, err := frontend.NewWitness(assignment, ecc.BW6_761.ScalarField())
	if err != nil {
		t.Fatalf("witness: %v", err)
	}

	// Either the prover refuses the unsatisfied witness or the resulting
	// proof fails verification; both count as a rejected spend.
	proof, err := groth16.Prove(ccs, pk, w)
	if err != nil {
		return
	}
	public, err := frontend.NewWitness(assignment, ecc.BW6_761.ScalarField(), frontend.PublicOnly())
	if err != nil {
		t.Fatalf("public witness: %v", err)
	}
	if err := groth16.Verify(proof, vk, public); err == nil {
		t.Errorf("a spend with a mismatched nullifier must not verify")
	}
}

func TestSpendWrongRootRejected(t *testing.T) {
	ccs, pk, vk := circuitSetup(t)
	secrets, acc := buildTestPool(t, 8)

	spend, err := CreateSpend(acc, 2, secrets[2], ccs, pk)
	if err != nil {
		t.Fatalf("CreateSpend failed: %v", err)
	}

	var bogus fr.Element
	if _, err := bogus.SetRandom(); err != nil {
		t.Fatalf("random root: %v", err)
	}
	spend.Root = bogus.String()
	if err := VerifySpend(spend, vk); err == nil {
		t.Errorf("a spend verified against a different root should be rejected")
	}
}

// TestDoubleNullifier exercises the break in the one-nullifier-per-commitment
// invariant: the mirror of an accumulated secret derives the same leaf (the
// negated public key shares its x-coordinate) but a different nullifier, so
// the same commitment is spent twice and the ledger accepts both.
func TestDoubleNullifier(t *testing.T) {
	ccs, pk, vk := circuitSetup(t)
	secrets, acc := buildTestPool(t, 8)
	ledger := NewLedger()

	spend, err := CreateSpend(acc, 2, secrets[2], ccs, pk)
	if err != nil {
		t.Fatalf("honest spend failed: %v", err)
	}
	if err := VerifySpend(spend, vk); err != nil {
		t.Fatalf("honest spend should verify: %v", err)
	}
	if err := ledger.Append(spend); err != nil {
		t.Fatalf("honest spend should be accepted: %v", err)
	}

	mirror := MirrorSecret(secrets[2])
	second, err := CreateSpend(acc, 2, mirror, ccs, pk)
	if err != nil {
		t.Fatalf("mirrored spend failed: %v", err)
	}
	if second.Nullifier == spend.Nullifier {
		t.Fatalf("mirrored spend should carry a distinct nullifier")
	}
	if second.Root != spend.Root {
		t.Fatalf("both spends should be against the same root")
	}
	if err := VerifySpend(second, vk); err != nil {
		t.Fatalf("mirrored spend should verify: %v", err)
	}
	if err := ledger.Append(second); err != nil {
		t.Fatalf("ledger cannot connect the mirrored spend to the first one: %v", err)
	}
}
