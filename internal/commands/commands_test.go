package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCommandTest points config and data at temp dirs and fixes the clock
func setupCommandTest(t *testing.T) *time.Time {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("WYR_DATA_DIR", "")
	t.Setenv("WYR_DB_URL", "")

	clock := time.Date(2022, 7, 15, 9, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return clock }
	t.Cleanup(func() { nowFunc = time.Now })
	return &clock
}

// resetFlags puts every flag back to its default, since cobra keeps flag
// values between executions of the same command tree
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCommand(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestTaskWorkflow(t *testing.T) {
	clock := setupCommandTest(t)

	out := mustRun(t, "init")
	assert.Contains(t, out, "Database initialized")

	out = mustRun(t, "task", "fix", "login", "bug")
	assert.Contains(t, out, "Started task #1 at 09:00:00: fix login bug")

	*clock = clock.Add(30 * time.Minute)
	out = mustRun(t, "t", "review", "login", "PR")
	assert.Contains(t, out, "Finished task #1 after 30m: fix login bug")
	assert.Contains(t, out, "Started task #2 at 09:30:00: review login PR")

	*clock = clock.Add(15 * time.Minute)
	out = mustRun(t, "done")
	assert.Contains(t, out, "Finished task #2 after 15m: review login PR")

	out = mustRun(t, "done")
	assert.Contains(t, out, "No task in progress.")

	out = mustRun(t, "ls")
	assert.Equal(t,
		"2022-07-15: 09:00:00 … 09:30:00: fix login bug\n"+
			"2022-07-15: 09:30:00 … 09:45:00: review login PR\n", out)

	out = mustRun(t, "lsw")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "WORD")
	assert.Contains(t, lines[1], "login")
	assert.Contains(t, lines[1], "45m0s")

	out = mustRun(t, "weekly")
	assert.Contains(t, out, "2022-07-11")
	assert.Contains(t, out, "login")
}

func TestTaskAt(t *testing.T) {
	setupCommandTest(t)
	mustRun(t, "init")

	out := mustRun(t, "task", "--at", "08:15", "early", "start")
	assert.Contains(t, out, "Started task #1 at 08:15:00: early start")

	out = mustRun(t, "done", "--at", "10 minutes ago")
	assert.Contains(t, out, "Finished task #1 after 35m: early start")
}

func TestTaskOpenInListing(t *testing.T) {
	setupCommandTest(t)
	mustRun(t, "init")
	mustRun(t, "task", "still", "going")

	out := mustRun(t, "ls-tasks")
	assert.Equal(t, "2022-07-15: 09:00:00 …    --   : still going\n", out)
}

func TestDoneBeforeStartFails(t *testing.T) {
	setupCommandTest(t)
	mustRun(t, "init")
	mustRun(t, "task", "now")

	_, err := runCommand(t, "done", "--at", "08:00")
	assert.Error(t, err)
}

func TestListWordsInvalidOrder(t *testing.T) {
	setupCommandTest(t)
	mustRun(t, "init")

	_, err := runCommand(t, "ls-words", "--order", "xyz")
	assert.Error(t, err)
}

func TestIngest(t *testing.T) {
	setupCommandTest(t)
	mustRun(t, "init")

	logFile := filepath.Join(t.TempDir(), "old.txt")
	require.NoError(t, os.WriteFile(logFile, []byte("2022-07-11\n-----\n09:00 .. 10:00 plan sprint\n10:00 .. 10:30 standup\n"), 0644))

	out := mustRun(t, "ingest", logFile)
	assert.Contains(t, out, "Added 2 tasks from "+logFile)

	out = mustRun(t, "ls")
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, out, "plan sprint")
	assert.Contains(t, out, "standup")
}

func TestIngestBadFileAddsNothing(t *testing.T) {
	setupCommandTest(t)
	mustRun(t, "init")

	logFile := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(logFile, []byte("2022-07-11\n09:00 .. 10:00 fine\nwhat is this\n"), 0644))

	_, err := runCommand(t, "ingest", logFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt:3")

	out := mustRun(t, "ls")
	assert.Contains(t, out, "No tasks found")
}

func TestInitDropAndNuke(t *testing.T) {
	setupCommandTest(t)
	mustRun(t, "init")
	mustRun(t, "task", "something")

	mustRun(t, "init", "--drop")
	out := mustRun(t, "ls")
	assert.Contains(t, out, "No tasks found")

	dbFile := filepath.Join(os.Getenv("XDG_DATA_HOME"), "wastedyears", "wastedyears.sqlite")
	_, err := os.Stat(dbFile)
	require.NoError(t, err)

	out = mustRun(t, "nuke")
	assert.Contains(t, out, "Database removed")
	_, err = os.Stat(dbFile)
	assert.True(t, os.IsNotExist(err))
}

func TestVersionAndHelp(t *testing.T) {
	setupCommandTest(t)
	SetVersion("1.2.3", "abc123", "2022-07-15")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	out := mustRun(t, "version")
	assert.Equal(t, "wyr 1.2.3 (commit abc123, built 2022-07-15)\n", out)

	out = mustRun(t, "help")
	assert.Contains(t, out, "COMMANDS:")
	assert.Contains(t, out, "ls-words, lsw")

	out = mustRun(t, "help", "task")
	assert.Contains(t, out, "Start a new task")
}

func TestFormatError(t *testing.T) {
	setupCommandTest(t)

	_, err := runCommand(t, "ls-words", "--order", "q")
	require.Error(t, err)
	msg := FormatError(err)
	assert.Contains(t, msg, "wyr: ")
	assert.Contains(t, msg, "invalid order key")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", formatDuration(45*time.Second))
	assert.Equal(t, "30m", formatDuration(30*time.Minute))
	assert.Equal(t, "1.5h", formatDuration(90*time.Minute))
}
