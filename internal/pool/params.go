// params.go - Fixed accumulator dimensions shared by the native tree and the circuit.

package pool

import "fmt"

const (
	// TreeDepth is the number of two-to-one compression levels between the
	// leaf digests and the root. The circuit is compiled for exactly this
	// depth, so it is a build-time constant rather than a config knob.
	TreeDepth = 5

	// PoolCapacity is the number of leaf slots in the accumulator.
	PoolCapacity = 1 << TreeDepth
)

// Params carries the accumulator dimensions into every component that hashes
// or verifies tree nodes. It is a plain value, never ambient state.
type Params struct {
	Depth int
}

// DefaultParams returns the dimensions the spend circuit is compiled for.
func DefaultParams() Params {
	return Params{Depth: TreeDepth}
}

// Capacity returns the number of leaf slots for the configured depth.
func (p Params) Capacity() int {
	return 1 << p.Depth
}

// Validate rejects dimensions the circuit cannot represent. The check runs
// before any tree is built or proof attempted.
func (p Params) Validate() error {
	if p.Depth <= 0 {
		return fmt.Errorf("pool: tree depth must be positive, got %d", p.Depth)
	}
	if p.Depth != TreeDepth {
		return fmt.Errorf("pool: tree depth %d does not match the compiled circuit depth %d", p.Depth, TreeDepth)
	}
	return nil
}
