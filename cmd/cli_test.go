package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeTmuxScript = `#!/bin/sh
printf '%s\n' "$*" >> "$FAKE_TMUX_LOG"
if [ "$1" = "has-session" ]; then
	echo "can't find session: $3" >&2
	exit 1
fi
if [ -n "$FAKE_TMUX_FAIL" ] && [ "$1" = "$FAKE_TMUX_FAIL" ]; then
	echo "no pane" >&2
	exit 1
fi
exit 0
`

var queuedIDPattern = regexp.MustCompile(`Queued (\S+)`)

func TestVersionPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommandIsRejected(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "usage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"usage\"")
}

func TestQueueAddListCancelAndStatus(t *testing.T) {
	home := t.TempDir()

	first := enqueue(t, home, "review", "the", "plan")
	second := enqueue(t, home, "ship", "it")

	stdout, _, err := executeCLI(t, home, "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, first+"\tpending\tweb_chat\treview the plan")
	assert.Contains(t, stdout, second+"\tpending\tweb_chat\tship it")
	assert.Less(t, bytes.Index([]byte(stdout), []byte(first)), bytes.Index([]byte(stdout), []byte(second)))

	stdout, _, err = executeCLI(t, home, "queue", "cancel", first)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cancelled "+first)

	_, _, err = executeCLI(t, home, "queue", "cancel", first)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message not found")

	stdout, _, err = executeCLI(t, home, "queue", "status", "--json")
	require.NoError(t, err)
	var status struct {
		PendingCount int
		IsProcessing bool
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.Equal(t, 1, status.PendingCount)
	assert.False(t, status.IsProcessing)

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Crew Mailbox")
	assert.Contains(t, stdout, "Pending (1)")
	assert.Contains(t, stdout, "review the plan")
}

func TestQueueAddValidatesInput(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "queue", "add", "hello", "--source", "email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported source")

	_, _, err = executeCLI(t, home, "queue", "add", "hello", "--conversation", " ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conversation id is required")
}

func TestQueueCancelCurrentWithoutInFlightMessage(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "queue", "cancel", "--current")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no message in flight")
}

func TestQueueDrainDeliversToOrchestrator(t *testing.T) {
	home := t.TempDir()
	logPath := installFakeTmux(t, home)

	id := enqueue(t, home, "hello", "orchestrator")

	stdout, _, err := executeCLI(t, home, "queue", "drain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "delivered "+id)
	assert.Contains(t, stdout, "crew-orchestrator last active ")

	calls := readFile(t, logPath)
	assert.Contains(t, calls, "send-keys -t crew-orchestrator -l -- hello orchestrator")
	assert.Contains(t, calls, "send-keys -t crew-orchestrator Enter")

	stdout, _, err = executeCLI(t, home, "queue", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pending: 0")
	assert.Contains(t, stdout, "processed: 1")

	stdout, _, err = executeCLI(t, home, "queue", "drain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "nothing to deliver")
}

func TestQueueDrainRequeuesFailedDelivery(t *testing.T) {
	home := t.TempDir()
	installFakeTmux(t, home)
	t.Setenv("FAKE_TMUX_FAIL", "send-keys")

	id := enqueue(t, home, "hello")

	stdout, _, err := executeCLI(t, home, "queue", "drain")
	require.Error(t, err)
	assert.Contains(t, stdout, "requeued "+id+" (retry 1)")
	assert.NotContains(t, stdout, "last active")

	stdout, _, err = executeCLI(t, home, "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, id+"\tpending\tweb_chat\thello\tretry=1")
}

func TestAgentSuspendListAndStop(t *testing.T) {
	home := t.TempDir()
	logPath := installFakeTmux(t, home)
	addMember(t, home, "dev", "developer")

	_, _, err := executeCLI(t, home, "agent", "token", "crew-member-dev", "tok-123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "agent", "suspend", "crew-member-dev")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Suspended crew-member-dev")
	assert.Contains(t, readFile(t, logPath), "set-hook -u -t =crew-member-dev pane-died")

	stdout, _, err = executeCLI(t, home, "agent", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "crew-member-dev\tcore/dev\tdeveloper\tsuspended\tresumable")

	_, _, err = executeCLI(t, home, "agent", "suspend", "crew-member-dev")
	require.Error(t, err)

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Suspended agents (1)")

	stdout, _, err = executeCLI(t, home, "agent", "stop", "crew-member-dev")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stopped crew-member-dev")

	stdout, _, err = executeCLI(t, home, "agent", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "crew-member-dev\tcore/dev\tdeveloper\tinactive")
	assert.NotContains(t, stdout, "resumable")
}

func TestAgentResumeTimesOutAndStaysSuspended(t *testing.T) {
	home := t.TempDir()
	logPath := installFakeTmux(t, home)
	t.Setenv("CREW_LIFECYCLE_REHYDRATE_TIMEOUT", "50ms")
	t.Setenv("CREW_LIFECYCLE_REHYDRATE_POLL", "10ms")
	addMember(t, home, "dev", "developer")

	_, _, err := executeCLI(t, home, "agent", "token", "crew-member-dev", "tok-123")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "agent", "suspend", "crew-member-dev")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "agent", "resume", "crew-member-dev")
	require.Error(t, err)
	log := readFile(t, logPath)
	assert.Contains(t, log, "--resume 'tok-123'")
	workspaceDir := filepath.Join(home, "state", "workspaces", "crew-member-dev")
	assert.Contains(t, log, "CREW_WORKSPACE="+workspaceDir)
	assert.DirExists(t, workspaceDir)

	stdout, _, err := executeCLI(t, home, "agent", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "crew-member-dev\tcore/dev\tdeveloper\tsuspended")
}

func TestAgentSuspendRejectsExemptRole(t *testing.T) {
	home := t.TempDir()
	installFakeTmux(t, home)
	addMember(t, home, "lead", "orchestrator")

	_, _, err := executeCLI(t, home, "agent", "suspend", "crew-member-lead")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lifecycle transition rejected")
}

func TestDiskDashboardSeesOtherProcesses(t *testing.T) {
	home := t.TempDir()
	installFakeTmux(t, home)

	t.Setenv("HOME", home)
	t.Setenv("CREW_HOME", home)
	t.Setenv("CREW_LOG_LEVEL", "error")
	watcher, err := wireApp()
	require.NoError(t, err)
	ctx := context.Background()
	t.Cleanup(func() { _ = watcher.close(ctx) })

	dashboard, err := diskDashboard(ctx, watcher)
	require.NoError(t, err)
	assert.Zero(t, dashboard.Status.PendingCount)

	enqueue(t, home, "hello\x1b[2J")
	addMember(t, home, "dev", "developer")
	_, _, err = executeCLI(t, home, "agent", "suspend", "crew-member-dev")
	require.NoError(t, err)

	dashboard, err = diskDashboard(ctx, watcher)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Status.PendingCount)
	require.Len(t, dashboard.Pending, 1)
	assert.Equal(t, "hello[2J", dashboard.Pending[0].Content)
	require.Len(t, dashboard.Suspended, 1)
	assert.Equal(t, "crew-member-dev", dashboard.Suspended[0].SessionName)
}

func TestStatusWatchRejectsJSON(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "status", "--watch", "1s", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch cannot be combined with --json")
}

func TestAgentSuspendRejectsInactiveMember(t *testing.T) {
	home := t.TempDir()
	logPath := installFakeTmux(t, home)

	_, _, err := executeCLI(t, home, "agent", "add",
		"--team", "core", "--id", "old", "--role", "developer",
		"--session", "crew-member-old", "--status", "inactive")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "agent", "suspend", "crew-member-old")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lifecycle transition rejected")
	calls, _ := os.ReadFile(logPath)
	assert.NotContains(t, string(calls), "kill-session")
}

func TestAgentResumeRequiresSuspendedAgent(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "agent", "resume", "crew-member-dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not suspended")
}

func TestMonitorWatchReportsAcceptance(t *testing.T) {
	home := t.TempDir()
	installFakeTmux(t, home)
	t.Setenv("CREW_MONITOR_POLL_INTERVAL", "10ms")

	tasks := t.TempDir()
	target := filepath.Join(tasks, "in_progress", "t1.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("task"), 0o644))

	stdout, _, err := executeCLI(t, home, "monitor", "watch",
		"--task", "t1",
		"--open", filepath.Join(tasks, "open", "t1.md"),
		"--target", target,
		"--timeout", "5s",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "accepted: "+target+" after 1 attempt(s)")
	assert.Contains(t, stdout, "stopped: completed")
}

func TestMonitorWatchFailsAfterRetries(t *testing.T) {
	home := t.TempDir()
	logPath := installFakeTmux(t, home)
	t.Setenv("CREW_MONITOR_POLL_INTERVAL", "5ms")
	t.Setenv("CREW_MONITOR_RETRY_BACKOFF", "0s")
	t.Setenv("CREW_MONITOR_INTERRUPT_DELAY", "0s")

	tasks := t.TempDir()
	open := filepath.Join(tasks, "open", "t1.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(open), 0o755))
	require.NoError(t, os.WriteFile(open, []byte("task"), 0o644))

	stdout, _, err := executeCLI(t, home, "monitor", "watch",
		"--task", "t1",
		"--open", open,
		"--target", filepath.Join(tasks, "in_progress", "t1.md"),
		"--prompt", "pick up t1",
		"--timeout", "30ms",
		"--max-attempts", "1",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task was not accepted")
	assert.Contains(t, stdout, "retry: attempt 2")
	assert.Contains(t, stdout, "failed: no acceptance after 2 attempt(s)")
	assert.Contains(t, readFile(t, logPath), "send-keys -t crew-orchestrator -l -- pick up t1")
}

func TestMonitorWatchRequiresPaths(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "monitor", "watch", "--open", "/tmp/a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"target\" not set")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("CREW_HOME", home)
	t.Setenv("CREW_LOG_LEVEL", "error")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func enqueue(t *testing.T, home string, content ...string) string {
	t.Helper()

	stdout, _, err := executeCLI(t, home, append([]string{"queue", "add"}, content...)...)
	require.NoError(t, err)

	match := queuedIDPattern.FindStringSubmatch(stdout)
	require.Len(t, match, 2, "unexpected output: %s", stdout)
	return match[1]
}

func addMember(t *testing.T, home, id, role string) {
	t.Helper()

	_, _, err := executeCLI(t, home, "agent", "add",
		"--team", "core",
		"--id", id,
		"--role", role,
		"--session", "crew-member-"+id,
	)
	require.NoError(t, err)
}

// installFakeTmux points the tmux adapters at a script that records its
// arguments and returns the log path.
func installFakeTmux(t *testing.T, home string) string {
	t.Helper()

	script := filepath.Join(home, "fake-tmux")
	require.NoError(t, os.WriteFile(script, []byte(fakeTmuxScript), 0o755))

	logPath := filepath.Join(home, "tmux.log")
	t.Setenv("CREW_TMUX_BINARY", script)
	t.Setenv("FAKE_TMUX_LOG", logPath)
	return logPath
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
