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

func runValidateCmd(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestValidateValidDefs(t *testing.T) {
	buf, err := runValidateCmd(t, "text", filepath.Join("testdata", "defs"))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ 3 item(s) valid")
	assert.Contains(t, output, "0  Vec (struct)")
	assert.Contains(t, output, "2  Iterator (trait)")
}

func TestValidateValidDefsJSON(t *testing.T) {
	buf, err := runValidateCmd(t, "json", filepath.Join("testdata", "defs"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateNonExistentDirectory(t *testing.T) {
	buf, err := runValidateCmd(t, "text", "/nonexistent/directory/path")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, buf.String(), "not found")
}

func TestValidateEmptyDirectory(t *testing.T) {
	buf, err := runValidateCmd(t, "text", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNoFiles)
	assert.Contains(t, buf.String(), "no CUE files found")
}

func TestValidateMissingKind(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.cue"), []byte(`item: Vec: {}`), 0644))

	buf, err := runValidateCmd(t, "text", tmpDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ Validation failed")
	assert.Contains(t, buf.String(), "kind is required")
}

func TestValidateInvalidKindJSON(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.cue"), []byte(`item: Vec: {kind: "enum"}`), 0644))

	buf, err := runValidateCmd(t, "json", tmpDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidKind, resp.Error.Code)
}

func TestValidateCollectAllReportsEveryFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.cue"), []byte(`item: Vec: {kind: "struct"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b.cue"), []byte(`item: A: {}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "c.cue"), []byte(`item: B: {kind: "enum"}`), 0644))

	buf, err := runValidateCmd(t, "text", tmpDir, "--collect-all")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 error(s)")
	assert.Contains(t, buf.String(), "kind is required")
	assert.Contains(t, buf.String(), "invalid kind")
}
