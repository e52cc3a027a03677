package cli

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLower_TextDeterministic(t *testing.T) {
	out, err := execute(t, NewLowerCommand(&RootOptions{Format: "text"}), "--deterministic", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "power(x, 3) (greater_than_one)\n")
	assert.Contains(t, out, "  output: v1\n")
	assert.Contains(t, out, "    x <= geo_mean(1, v2)\n")
	assert.Contains(t, out, "    v2 <= geo_mean(v1, x)\n")
	assert.Contains(t, out, "  program: ")
	assert.NotContains(t, out, "recorded")
}

func TestLower_JSON(t *testing.T) {
	out, err := execute(t, NewLowerCommand(&RootOptions{Format: "json"}),
		"--deterministic", "--name", "y", "--shape", "3x1", "--sign", "nonnegative", "2.5")
	require.NoError(t, err)

	var result LowerResult
	resp := decode(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "power(y, 5/2)", result.Atom)
	assert.Equal(t, "5/2", result.Exponent)
	assert.Equal(t, "greater_than_one", result.Regime)
	assert.Equal(t, "v1", result.Output)
	assert.Equal(t, []string{
		"y <= geo_mean(v2, v3)",
		"v2 <= geo_mean(v1, 1)",
		"v3 <= geo_mean(y, v4)",
		"v4 <= geo_mean(1, y)",
	}, result.Constraints)
	assert.Len(t, result.ProgramID, 64)
	assert.False(t, result.Recorded)
	assert.Contains(t, result.Program, "constraints")
}

func TestLower_DeterministicIsStable(t *testing.T) {
	first, err := execute(t, NewLowerCommand(&RootOptions{Format: "json"}), "--deterministic", "--", "-1")
	require.NoError(t, err)
	second, err := execute(t, NewLowerCommand(&RootOptions{Format: "json"}), "--deterministic", "--", "-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var result LowerResult
	decode(t, first, &result)
	assert.Equal(t, []string{"1 <= geo_mean(x, v1)"}, result.Constraints)
}

func TestLower_UUIDVariables(t *testing.T) {
	out, err := execute(t, NewLowerCommand(&RootOptions{Format: "json"}), "0.5")
	require.NoError(t, err)

	var result LowerResult
	decode(t, out, &result)
	id, err := uuid.Parse(result.Output)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestLower_Boundaries(t *testing.T) {
	out, err := execute(t, NewLowerCommand(&RootOptions{Format: "text"}), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "output: x\n")
	assert.Contains(t, out, "constraints: none")

	out, err = execute(t, NewLowerCommand(&RootOptions{Format: "text"}), "0")
	require.NoError(t, err)
	assert.Contains(t, out, "output: 1\n")
}

func TestLower_RecordsInDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "powcanon.db")

	out, err := execute(t, NewLowerCommand(&RootOptions{Format: "json"}), "--deterministic", "--db", db, "0.5")
	require.NoError(t, err)
	var result LowerResult
	decode(t, out, &result)
	assert.True(t, result.Recorded)

	out, err = execute(t, NewHistoryCommand(&RootOptions{Format: "json"}), "--db", db)
	require.NoError(t, err)
	var history HistoryResult
	decode(t, out, &history)
	require.Len(t, history.Lowerings, 1)
	assert.Equal(t, result.ProgramID, history.Lowerings[0].ID)
}

func TestLower_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"bad exponent", []string{"x^2"}, ErrCodeInvalidExponent},
		{"bad shape", []string{"--shape", "0x3", "2"}, ErrCodeInvalidFlag},
		{"bad sign", []string{"--sign", "sideways", "2"}, ErrCodeInvalidFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewLowerCommand(&RootOptions{Format: "json"}), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decode(t, out, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestLower_UnwritableDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing", "dir", "powcanon.db")
	out, err := execute(t, NewLowerCommand(&RootOptions{Format: "json"}), "--db", db, "2")
	require.Error(t, err)

	resp := decode(t, out, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeStoreFailed, resp.Error.Code)
}
