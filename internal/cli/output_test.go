package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"exponent": "5/2"}))

	var data map[string]string
	resp := decode(t, buf.String(), &data)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "5/2", data["exponent"])
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeInvalidExponent, "not a rational number", map[string]string{"input": "abc"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E010", resp.Error.Code)
	assert.Equal(t, "not a rational number", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("All atoms valid"))
	assert.Equal(t, "All atoms valid\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error("E001", "lowering failed", "regime negative"))
			assert.Contains(t, buf.String(), "Error [E001]: lowering failed")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details: regime negative")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("normalized %s", "0.5")
	assert.Empty(t, out.String())
	assert.Equal(t, "normalized 0.5\n", errOut.String())
	assert.Equal(t, errOut, formatter.errWriter())

	quiet := &OutputFormatter{Format: "text", Writer: out}
	quiet.VerboseLog("hidden")
	assert.Empty(t, out.String())
	assert.Equal(t, out, quiet.errWriter())
}

func TestExitError(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to open database", inner)

	assert.Equal(t, "failed to open database: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("lower: %w", err)))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "1 scenario(s) failed")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestCommandError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := commandError(formatter, ErrCodeInvalidFlag, "unknown sign \"up\"")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "E011: unknown sign \"up\"", err.Error())
	assert.Contains(t, buf.String(), "Error [E011]")
}
