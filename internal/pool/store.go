// store.go - Fixture persistence: the accumulated leaf list and a leaked
// spender secret, stored as JSON decimal strings.
//
// These loaders play the role of external collaborators: the pool itself
// never writes state, it only consumes what they return. A failure here is a
// startup abort, not a recoverable core error.

package pool

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr"
)

// SaveLeaves writes the ordered leaf commitments to a JSON file.
func SaveLeaves(path string, leaves []fr.Element) error {
	out := make([]string, len(leaves))
	for i := range leaves {
		out[i] = leaves[i].String()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// LoadLeaves reads an ordered leaf commitment list from a JSON file.
func LoadLeaves(path string) ([]fr.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var raw []string
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, err
	}
	leaves := make([]fr.Element, len(raw))
	for i, s := range raw {
		if _, err := leaves[i].SetString(s); err != nil {
			return nil, fmt.Errorf("pool: leaf %d is not a field element: %w", i, err)
		}
	}
	return leaves, nil
}

// SaveSecret writes a single secret scalar to a JSON file.
func SaveSecret(path string, secret fr.Element) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(secret.String())
}

// LoadSecret reads a single secret scalar from a JSON file.
func LoadSecret(path string) (fr.Element, error) {
	var s fr.Element
	f, err := os.Open(path)
	if err != nil {
		return s, err
	}
	defer f.Close()
	var raw string
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return s, err
	}
	if _, err := s.SetString(raw); err != nil {
		return s, fmt.Errorf("pool: secret is not a field element: %w", err)
	}
	return s, nil
}
