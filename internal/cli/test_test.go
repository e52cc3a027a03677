package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareScenario = `name: squares
description: Squares and square roots.
cases:
  - name: square
    exponent: 2
    operand: {name: x}
    expect:
      regime: greater_than_one
      constraints: 1
  - name: sqrt
    exponent: "1/2"
    operand: {name: x}
    expect:
      regime: open_unit_interval
`

const failingScenario = `name: wrong
description: Expects the wrong regime.
cases:
  - name: square
    exponent: 2
    operand: {name: x}
    expect:
      regime: negative
`

func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestTest_Pass(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"squares.yaml": squareScenario})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ squares (2 case(s), 2 program(s))")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTest_HarnessScenarios(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}),
		filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err)

	var result TestResult
	resp := decode(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Passed)
}

func TestTest_Failure(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"squares.yaml": squareScenario,
		"wrong.yaml":   failingScenario,
	})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result TestResult
	resp := decode(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Failed)

	for _, s := range result.Scenarios {
		if s.Name == "wrong" {
			require.Len(t, s.Errors, 1)
			assert.Contains(t, s.Errors[0], "square: regime: expected negative")
		}
	}
}

func TestTest_Filter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"squares.yaml": squareScenario,
		"wrong.yaml":   failingScenario,
	})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--filter", "squ*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTest_GoldenUpdateAndCompare(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"squares.yaml": squareScenario})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ squares (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "squares.golden")
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name":"squares"`)

	_, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"squares","trace":[]}`), 0644))
	out, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTest_LoadError(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"broken.yaml": "name: broken\ncases: []\n"})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTest_NoScenarios(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTest_MissingDirectory(t *testing.T) {
	_, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "squares.golden"),
		goldenFilePath(filepath.Join("scenarios", "squares.yaml")))
}
