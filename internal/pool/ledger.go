// ledger.go - Append-only spend ledger keyed by published nullifiers.
//
// The ledger is the verifier-side defense against double spending: a spend
// whose nullifier is already recorded is rejected. The defense is only as
// strong as nullifier uniqueness per commitment, which the x-only leaf
// binding breaks; a mirrored-secret spend arrives with a fresh nullifier and
// the ledger has no way to connect it to the commitment already spent.
//
// NOTE: Ledger is not thread-safe by itself; guard it with a sync.Mutex for
// concurrent access.

package pool

import (
	"encoding/json"
	"errors"
	"os"
)

// ErrDoubleSpend is returned when a spend's nullifier is already recorded.
var ErrDoubleSpend = errors.New("pool: double spend detected, nullifier already in ledger")

// Ledger records all accepted spends and their nullifiers.
type Ledger struct {
	Nullifiers []string `json:"nullifiers"`
	Spends     []*Spend `json:"spends"`
}

// NewLedger creates a new, empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		Nullifiers: make([]string, 0),
		Spends:     make([]*Spend, 0),
	}
}

// Append records a verified spend. Returns ErrDoubleSpend if the nullifier
// is already present; verification of the proof itself is the caller's job.
func (l *Ledger) Append(spend *Spend) error {
	if l.HasNullifier(spend.Nullifier) {
		return ErrDoubleSpend
	}
	l.Nullifiers = append(l.Nullifiers, spend.Nullifier)
	l.Spends = append(l.Spends, spend)
	return nil
}

// HasNullifier returns true if the nullifier is already recorded.
func (l *Ledger) HasNullifier(nullifier string) bool {
	for _, n := range l.Nullifiers {
		if n == nullifier {
			return true
		}
	}
	return false
}

// SaveToFile saves the ledger as JSON, overwriting any existing file.
func (l *Ledger) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// LoadLedgerFromFile loads a ledger from a JSON file.
func LoadLedgerFromFile(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var l Ledger
	if err := json.NewDecoder(f).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}
