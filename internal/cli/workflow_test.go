package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig puts config and database in a temp directory so tests
// never touch the real user config.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`storage_path: %s
work_start_hour: 9
work_end_hour: 17
max_days_to_search: 7
default_duration_minutes: 60
log_level: error
`, filepath.Join(dir, "agenda.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))
	return cfgPath
}

func runCLI(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestWorkflowRegisterAddListRemove(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCLI(t, cfg, "register", "--email", "carol@example.com", "--name", "Carol", "--password", "hunter2hunter2")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered and signed in as carol@example.com")

	out, err = runCLI(t, cfg, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "carol@example.com")

	out, err = runCLI(t, cfg, "add",
		"--title", "Design review",
		"--start", "2030-03-04 14:00",
		"--duration", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "Design review")

	out, err = runCLI(t, cfg, "list", "--day", "2030-03-04")
	require.NoError(t, err)
	assert.Contains(t, out, "Design review")

	out, err = runCLI(t, cfg, "list", "--day", "2030-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "No events")
}

func TestWorkflowConflictGate(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCLI(t, cfg, "register", "--email", "carol@example.com", "--password", "hunter2hunter2")
	require.NoError(t, err)

	_, err = runCLI(t, cfg, "add", "--title", "Standup", "--start", "2030-03-04 09:00", "--end", "2030-03-04 10:00")
	require.NoError(t, err)

	out, err := runCLI(t, cfg, "add", "--title", "Clash", "--start", "2030-03-04 09:30", "--duration", "30")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Conflicts with 1 event(s)")
	assert.Contains(t, out, "Standup")

	// Gate only warns; nothing was written.
	out, err = runCLI(t, cfg, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Clash")

	// --force books it anyway.
	out, err = runCLI(t, cfg, "add", "--title", "Clash", "--start", "2030-03-04 09:30", "--duration", "30", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
}

func TestWorkflowChangePassword(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCLI(t, cfg, "register", "--email", "carol@example.com", "--password", "hunter2hunter2")
	require.NoError(t, err)

	out, err := runCLI(t, cfg, "passwd", "--current", "hunter2hunter2", "--new", "correcthorse")
	require.NoError(t, err)
	assert.Contains(t, out, "Password changed")

	_, err = runCLI(t, cfg, "logout")
	require.NoError(t, err)

	_, err = runCLI(t, cfg, "login", "--email", "carol@example.com", "--password", "hunter2hunter2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err = runCLI(t, cfg, "login", "--email", "carol@example.com", "--password", "correcthorse")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as carol@example.com")

	// Wrong current password is rejected.
	_, err = runCLI(t, cfg, "passwd", "--current", "hunter2hunter2", "--new", "batterystaple")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestWorkflowRequiresIdentity(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCLI(t, cfg, "add", "--title", "Orphan", "--start", "2030-03-04 09:00", "--duration", "30")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "sign in first")
}

func TestWorkflowNextAvailable(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCLI(t, cfg, "register", "--email", "carol@example.com", "--password", "hunter2hunter2")
	require.NoError(t, err)

	_, err = runCLI(t, cfg, "add", "--title", "Standup", "--start", "2030-03-04 09:00", "--end", "2030-03-04 10:00")
	require.NoError(t, err)

	out, err := runCLI(t, cfg, "next", "--duration", "45", "--from", "2030-03-04")
	require.NoError(t, err)
	assert.Contains(t, out, "Next open slot:")
	assert.Contains(t, out, "2030-03-04 10:00")
}

func TestWorkflowEditAndRemove(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCLI(t, cfg, "register", "--email", "carol@example.com", "--password", "hunter2hunter2")
	require.NoError(t, err)

	out, err := runCLI(t, cfg, "add", "--title", "Draft", "--start", "2030-03-04 11:00", "--duration", "30")
	require.NoError(t, err)
	id := out[len("Added "):][:8]

	out, err = runCLI(t, cfg, "edit", id, "--title", "Final")
	require.NoError(t, err)
	assert.Contains(t, out, "Final")

	out, err = runCLI(t, cfg, "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Final")

	out, err = runCLI(t, cfg, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No events")
}

func TestWorkflowExportImport(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()

	_, err := runCLI(t, cfg, "register", "--email", "carol@example.com", "--password", "hunter2hunter2")
	require.NoError(t, err)

	_, err = runCLI(t, cfg, "add", "--title", "Offsite", "--start", "2030-03-04 10:00", "--duration", "120", "--location", "Lisbon")
	require.NoError(t, err)

	icsPath := filepath.Join(dir, "calendar.ics")
	out, err := runCLI(t, cfg, "export", "--out", icsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(icsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Offsite")

	out, err = runCLI(t, cfg, "import", icsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1 event(s) imported")

	out, err = runCLI(t, cfg, "list")
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("Offsite")))
}
