package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/powcanon/internal/ir"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName   string       `json:"scenario_name"`
	MaxDenominator int64        `json:"max_denominator"`
	Trace          []TraceEvent `json:"trace"`
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// This is required because ir.MarshalCanonical only handles IR types and primitives.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"case": event.Case,
		}
		if event.Atom != "" {
			eventMap["atom"] = event.Atom
		}
		if event.Regime != "" {
			eventMap["regime"] = event.Regime
		}
		if event.Exponent != "" {
			eventMap["exponent"] = event.Exponent
		}
		if event.Weights != nil {
			eventMap["weights"] = event.Weights
		}
		if event.ProgramID != "" {
			eventMap["program_id"] = event.ProgramID
		}
		if event.Program != nil {
			eventMap["program"] = event.Program
		}
		if event.Error != "" {
			eventMap["error"] = event.Error
		}
		traceList[i] = eventMap
	}

	return map[string]any{
		"scenario_name":   s.ScenarioName,
		"max_denominator": s.MaxDenominator,
		"trace":           traceList,
	}
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot := TraceSnapshot{
		ScenarioName:   scenario.Name,
		MaxDenominator: scenario.Policy().MaxDenominator,
		Trace:          result.Trace,
	}
	if err := assertSnapshot(t, scenario.Name, &snapshot); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName:   scenario.Name,
		MaxDenominator: scenario.Policy().MaxDenominator,
		Trace:          result.Trace,
	}
	return assertSnapshot(t, scenario.Name, &snapshot)
}

// MarshalTrace returns the canonical JSON of a result's trace.
func MarshalTrace(scenario *Scenario, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName:   scenario.Name,
		MaxDenominator: scenario.Policy().MaxDenominator,
		Trace:          result.Trace,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

func assertSnapshot(t *testing.T, name string, snapshot *TraceSnapshot) error {
	t.Helper()

	traceJSON, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, traceJSON)

	return nil
}
