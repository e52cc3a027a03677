package harness

import "github.com/roach88/powcanon/internal/ir"

// TraceEvent records the outcome of one case.
type TraceEvent struct {
	Case      string      `json:"case"`
	Atom      string      `json:"atom,omitempty"`
	Regime    string      `json:"regime,omitempty"`
	Exponent  string      `json:"exponent,omitempty"`
	Weights   []string    `json:"weights,omitempty"`
	ProgramID string      `json:"program_id,omitempty"`
	Program   ir.IRObject `json:"program,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	// Trace has one event per case, in case order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Stored is the number of distinct programs recorded in the store.
	Stored int `json:"stored"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a case outcome.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
