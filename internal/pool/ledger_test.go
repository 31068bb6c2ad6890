package pool

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLedgerDoubleSpendDetection(t *testing.T) {
	ledger := NewLedger()
	spend := &Spend{Root: "11", Nullifier: "42", Proof: []byte{0x01}}

	if err := ledger.Append(spend); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if !ledger.HasNullifier("42") {
		t.Errorf("ledger should contain the nullifier after append")
	}
	if err := ledger.Append(spend); !errors.Is(err, ErrDoubleSpend) {
		t.Errorf("expected ErrDoubleSpend on repeated nullifier, got %v", err)
	}

	// A spend of the same root under a fresh nullifier is indistinguishable
	// from an honest spend and must be accepted.
	other := &Spend{Root: "11", Nullifier: "43", Proof: []byte{0x02}}
	if err := ledger.Append(other); err != nil {
		t.Errorf("append with distinct nullifier failed: %v", err)
	}
}

func TestLedgerSaveLoad(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Append(&Spend{Root: "7", Nullifier: "13", Proof: []byte{0xab}}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := ledger.SaveToFile(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadLedgerFromFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Spends) != 1 {
		t.Fatalf("loaded ledger should have 1 spend, got %d", len(loaded.Spends))
	}
	if !loaded.HasNullifier("13") {
		t.Errorf("loaded ledger should keep recorded nullifiers")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	leaves := randomLeaves(t, 5)
	leavesPath := filepath.Join(dir, "leaves.json")
	if err := SaveLeaves(leavesPath, leaves); err != nil {
		t.Fatalf("save leaves: %v", err)
	}
	loaded, err := LoadLeaves(leavesPath)
	if err != nil {
		t.Fatalf("load leaves: %v", err)
	}
	if len(loaded) != len(leaves) {
		t.Fatalf("loaded %d leaves, want %d", len(loaded), len(leaves))
	}
	for i := range leaves {
		if !loaded[i].Equal(&leaves[i]) {
			t.Errorf("leaf %d changed across the round trip", i)
		}
	}

	secret, err := NewSecret()
	if err != nil {
		t.Fatalf("NewSecret failed: %v", err)
	}
	secretPath := filepath.Join(dir, "secret.json")
	if err := SaveSecret(secretPath, secret); err != nil {
		t.Fatalf("save secret: %v", err)
	}
	got, err := LoadSecret(secretPath)
	if err != nil {
		t.Fatalf("load secret: %v", err)
	}
	if !got.Equal(&secret) {
		t.Errorf("secret changed across the round trip")
	}
}
