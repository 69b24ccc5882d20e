package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeQueueSurvivesRestart(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runCrew(t, binaryPath, home, "queue", "add", "--source", "slack", "deploy", "the", "fix")
	require.NoError(t, err, "stderr: %s", stderr)

	match := regexp.MustCompile(`Queued (\S+)`).FindStringSubmatch(stdout)
	require.Len(t, match, 2, "unexpected output: %s", stdout)

	_, stderr, err = runCrew(t, binaryPath, home, "queue", "add", "--source", "system_event", "heartbeat")
	require.NoError(t, err, "stderr: %s", stderr)

	// System events are not replayed after a restart.
	stdout, stderr, err = runCrew(t, binaryPath, home, "queue", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, match[1]+"\tpending\tslack\tdeploy the fix")
	assert.NotContains(t, stdout, "heartbeat")

	stdout, stderr, err = runCrew(t, binaryPath, home, "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Pending (1)")

	_, err = os.Stat(filepath.Join(home, "state", "mailbox.toml"))
	assert.NoError(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "crew-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/crew")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build crew binary: %s", string(output))
	return binaryPath
}

func runCrew(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "CREW_HOME="+home, "CREW_LOG_LEVEL=error")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
