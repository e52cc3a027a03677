package canon

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/powcanon/internal/ir"
)

// VariableSource allocates fresh decision variables for epigraphs and
// auxiliary geometric-mean nodes.
type VariableSource interface {
	NewVariable(shape ir.Shape) ir.Variable
}

// UUIDVariables allocates variables with UUIDv7 identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, so IDs sort by
// allocation time.
//
// Thread-safety: UUIDVariables is stateless and safe for concurrent use.
type UUIDVariables struct{}

// NewVariable returns a variable with a fresh UUIDv7 ID.
//
// Panics if UUID generation fails.
func (UUIDVariables) NewVariable(shape ir.Shape) ir.Variable {
	return ir.Variable{ID: uuid.Must(uuid.NewV7()).String(), Dims: shape}
}

// FixedVariables returns predetermined variable IDs, in order.
//
// Thread-safety: FixedVariables is safe for concurrent use via internal mutex.
type FixedVariables struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedVariables creates a source that hands out ids in order.
func NewFixedVariables(ids ...string) *FixedVariables {
	return &FixedVariables{ids: ids}
}

// NewVariable returns a variable with the next predetermined ID.
//
// Panics if all IDs have been consumed, which means the caller lowered more
// nodes than it configured.
func (f *FixedVariables) NewVariable(shape ir.Shape) ir.Variable {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.idx >= len(f.ids) {
		panic(fmt.Sprintf("FixedVariables: all %d ids exhausted", len(f.ids)))
	}
	id := f.ids[f.idx]
	f.idx++
	return ir.Variable{ID: id, Dims: shape}
}
