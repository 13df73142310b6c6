package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var demoScript = filepath.Join("..", "script", "testdata", "demo.yaml")

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunText(t *testing.T) {
	out, _, err := execute(t, "run", demoScript)
	require.NoError(t, err)

	assert.Contains(t, out, "script: demo")
	assert.Contains(t, out, "STEP  ACTION")
	assert.Contains(t, out, `final: {"items":[3,2,1,4],"meta":{"done":true},"title":"final"}`)
}

func TestRunJSON(t *testing.T) {
	out, _, err := execute(t, "run", demoScript, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Name   string            `json:"name"`
			Frames []json.RawMessage `json:"frames"`
			Final  json.RawMessage   `json:"final"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "demo", resp.Data.Name)
	assert.Len(t, resp.Data.Frames, 11)
}

func TestRunMarkdownAndHTML(t *testing.T) {
	out, _, err := execute(t, "run", demoScript, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| Step | Action |")

	out, _, err = execute(t, "run", demoScript, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestRunColorHighlightsFinal(t *testing.T) {
	out, _, err := execute(t, "run", demoScript, "--color")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	t.Setenv("FURRYREF_LOG_LEVEL", "")
	out, errOut, err := execute(t, "run", demoScript, "--verbose", "--format", "json", "--log-format", "json")
	require.NoError(t, err)

	assert.Contains(t, errOut, "Loaded")
	assert.Contains(t, errOut, `"msg":"running script"`)
	assert.NotContains(t, out, "running script")
}

func TestRunInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "run", demoScript, "--format", "pdf")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunInvalidLogFormat(t *testing.T) {
	_, _, err := execute(t, "run", demoScript, "--log-format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunMissingScript(t *testing.T) {
	out, _, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}

func TestRunInvalidScript(t *testing.T) {
	path := writeScript(t, "bad.yaml", "name: bad\nseed: {}\nsteps:\n  - undo: 0\n")

	out, _, err := execute(t, "run", path, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
}

func TestValidate(t *testing.T) {
	out, _, err := execute(t, "validate", demoScript, filepath.Join("..", "script", "testdata", "demo.cue"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "demo, 10 steps")
}

func TestValidateReportsInvalid(t *testing.T) {
	bad := writeScript(t, "bad.yaml", "name: bad\nseed: {}\nsteps:\n  - rename: {}\n")

	out, _, err := execute(t, "validate", demoScript, bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "✗ "+bad)
}

func TestValidateJSON(t *testing.T) {
	out, _, err := execute(t, "validate", demoScript, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string             `json:"status"`
		Data   []ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].Valid)
}

func TestValidateMissingFile(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory(t *testing.T) {
	out, _, err := execute(t, "history", demoScript)
	require.NoError(t, err)
	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "*  4")
}

func TestHistoryJSON(t *testing.T) {
	out, _, err := execute(t, "history", demoScript, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			ID      string `json:"id"`
			Index   int    `json:"index"`
			Current bool   `json:"current"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 5)
	assert.True(t, resp.Data[4].Current)
	assert.Len(t, resp.Data[0].ID, 26)
}

func TestStandaloneCommandUsesNopLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{demoScript})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "script: demo")
}
