package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestScoreCommandJSON(t *testing.T) {
	path := writeTemp(t, "audit.json", auditJSON)

	out, _, err := execute(t, "score", path, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "overall_score")
	assert.Contains(t, data, "category_scores")

	scores, ok := data["category_scores"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, scores, 6, "all six categories always present")
}

func TestScoreCommandText(t *testing.T) {
	path := writeTemp(t, "audit.json", auditJSON)

	out, _, err := execute(t, "score", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Overall score:")
	assert.Contains(t, out, "Category scores:")
	assert.Contains(t, out, "conversion")
}

func TestScoreCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "score", "/nonexistent/audit.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScoreCommandBadPatternsDir(t *testing.T) {
	path := writeTemp(t, "audit.json", auditJSON)

	_, _, err := execute(t, "score", "--patterns", "/nonexistent/registry", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
