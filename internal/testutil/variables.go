package testutil

import (
	"fmt"
	"sync"

	"github.com/roach88/powcanon/internal/ir"
)

// SeqVariables allocates variables with sequential IDs (v1, v2, ...) so that
// lowered programs are reproducible in golden files.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SeqVariables struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSeqVariables creates a source whose first variable is "v1".
func NewSeqVariables() *SeqVariables {
	return NewSeqVariablesWithPrefix("v")
}

// NewSeqVariablesWithPrefix creates a source whose IDs are prefix1, prefix2, ...
func NewSeqVariablesWithPrefix(prefix string) *SeqVariables {
	return &SeqVariables{prefix: prefix}
}

// NewVariable returns a variable with the next sequential ID.
func (s *SeqVariables) NewVariable(shape ir.Shape) ir.Variable {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return ir.Variable{ID: fmt.Sprintf("%s%d", s.prefix, s.seq), Dims: shape}
}

// Count returns how many variables have been allocated.
func (s *SeqVariables) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Reset restarts numbering. After Reset(), the next variable is prefix1.
//
// Used for test reuse, so the same scenario lowers to identical IDs.
func (s *SeqVariables) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 0
}
