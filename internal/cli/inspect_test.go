package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportedWarehouse(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "warehouse.db")
	p := writeTemp(t, "audit.json", auditJSON)
	_, _, err := execute(t, "export", "--db", dbPath, p)
	require.NoError(t, err)
	return dbPath
}

func TestInspectCommandAudit(t *testing.T) {
	dbPath := exportedWarehouse(t)

	out, _, err := execute(t, "inspect", "--db", dbPath, "aud-json")
	require.NoError(t, err)
	assert.Contains(t, out, "aud-json")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "Overall score:")
	assert.Contains(t, out, "audit_findings")
}

func TestInspectCommandAuditJSON(t *testing.T) {
	dbPath := exportedWarehouse(t)

	out, _, err := execute(t, "inspect", "--db", dbPath, "aud-json", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "audit")
	assert.Contains(t, data, "findings")
	assert.Contains(t, data, "row_counts")
}

func TestInspectCommandDomain(t *testing.T) {
	dbPath := exportedWarehouse(t)

	out, _, err := execute(t, "inspect", "--db", dbPath, "--domain", "example.com", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	ids, ok := data["audit_ids"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"aud-json"}, ids)
}

func TestInspectCommandUnknownAudit(t *testing.T) {
	dbPath := exportedWarehouse(t)

	_, _, err := execute(t, "inspect", "--db", dbPath, "aud-missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInspectCommandNoArgs(t *testing.T) {
	dbPath := exportedWarehouse(t)

	_, _, err := execute(t, "inspect", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
