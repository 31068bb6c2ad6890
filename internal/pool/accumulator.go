// accumulator.go - Fixed-depth Merkle accumulator over leaf commitments.
//
// The tree is stored as an arena of digests indexed by level and position,
// not as a pointer-linked structure: levels[0] holds the leaf digests,
// levels[Depth] holds the single root. Path generation and verification walk
// the same index arithmetic the in-circuit gadget uses, so a path that
// passes VerifyPath is exactly a path the circuit accepts.

package pool

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr"
)

// ErrIndexOutOfRange is returned when a leaf or path index exceeds the
// accumulator's capacity.
var ErrIndexOutOfRange = errors.New("pool: leaf index out of range")

// Path is an authentication path from a leaf slot to the root: one sibling
// digest per level, leaf level first. Direction at each level is the
// corresponding bit of Index (bit 0 meaning the node is the left child).
type Path struct {
	Index    int
	Siblings []fr.Element
}

// Accumulator commits to an ordered set of leaf commitments under a single
// root digest. Built once, immutable afterward.
type Accumulator struct {
	params Params
	leaves []fr.Element   // padded raw leaf values
	levels [][]fr.Element // levels[0] = leaf digests, levels[Depth][0] = root
}

// Build constructs the accumulator for the given ordered leaves, padding
// unused slots with zero-valued leaves. The root is a deterministic function
// of the leaf sequence and the params.
func Build(params Params, leaves []fr.Element) (*Accumulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(leaves) > params.Capacity() {
		return nil, fmt.Errorf("pool: %d leaves exceed accumulator capacity %d", len(leaves), params.Capacity())
	}

	padded := make([]fr.Element, params.Capacity())
	copy(padded, leaves)

	levels := make([][]fr.Element, params.Depth+1)
	levels[0] = make([]fr.Element, len(padded))
	for i := range padded {
		levels[0][i] = LeafHash(padded[i])
	}
	for lvl := 1; lvl <= params.Depth; lvl++ {
		below := levels[lvl-1]
		level := make([]fr.Element, len(below)/2)
		for i := range level {
			level[i] = CompressDigests(below[2*i], below[2*i+1])
		}
		levels[lvl] = level
	}

	return &Accumulator{params: params, leaves: padded, levels: levels}, nil
}

// Params returns the dimensions the accumulator was built with.
func (a *Accumulator) Params() Params {
	return a.params
}

// Root returns the root digest.
func (a *Accumulator) Root() fr.Element {
	return a.levels[a.params.Depth][0]
}

// Leaf returns the raw leaf value stored at the given slot.
func (a *Accumulator) Leaf(index int) (fr.Element, error) {
	if index < 0 || index >= a.params.Capacity() {
		return fr.Element{}, ErrIndexOutOfRange
	}
	return a.leaves[index], nil
}

// Path returns the authentication path for the given leaf slot.
func (a *Accumulator) Path(index int) (Path, error) {
	if index < 0 || index >= a.params.Capacity() {
		return Path{}, ErrIndexOutOfRange
	}
	siblings := make([]fr.Element, a.params.Depth)
	pos := index
	for lvl := 0; lvl < a.params.Depth; lvl++ {
		siblings[lvl] = a.levels[lvl][pos^1]
		pos >>= 1
	}
	return Path{Index: index, Siblings: siblings}, nil
}

// VerifyPath recomputes the digest chain from the leaf through the path and
// compares it with root. The walk mirrors the in-circuit membership gadget
// step for step; keeping the two identical is what makes a native pre-check
// meaningful before paying for proof generation.
func VerifyPath(params Params, root, leaf fr.Element, path Path) bool {
	if len(path.Siblings) != params.Depth {
		return false
	}
	if path.Index < 0 || path.Index >= params.Capacity() {
		return false
	}
	current := LeafHash(leaf)
	pos := path.Index
	for lvl := 0; lvl < params.Depth; lvl++ {
		if pos&1 == 0 {
			current = CompressDigests(current, path.Siblings[lvl])
		} else {
			current = CompressDigests(path.Siblings[lvl], current)
		}
		pos >>= 1
	}
	return current.Equal(&root)
}
