package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todomvc/internal/tui"
)

func TestMain(m *testing.M) {
	tui.DisableColor()
	os.Exit(m.Run())
}

type result struct {
	code   int
	stdout string
	stderr string
}

// harness runs commands against one json store in a temp dir.
type harness struct {
	t    *testing.T
	path string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TODOMVC_STORE", "")
	t.Setenv("TODOMVC_PATH", "")
	t.Setenv("TODOMVC_KEY", "")
	return &harness{t: t, path: filepath.Join(t.TempDir(), "todos.json")}
}

func (h *harness) run(args ...string) result {
	h.t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--store", "json", "--path", h.path, "--log-level", "error"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	code := run(cmd, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	r := h.run(args...)
	require.Equal(h.t, 0, r.code, "todomvc %s: %s", strings.Join(args, " "), r.stderr)
	return r.stdout
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "todomvc", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"add", "ls", "done", "rm", "edit", "toggle-all", "clear-completed", "export"}

	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"config", "store", "path", "key", "log-level", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestAddListToggleRemove(t *testing.T) {
	h := newHarness(t)

	assert.Contains(t, h.mustRun("add", "buy", "milk"), "added")
	h.mustRun("add", "walk dog")
	h.mustRun("add", "call mom")

	out := h.mustRun("ls")
	assert.Contains(t, out, " 1. ☐ buy milk")
	assert.Contains(t, out, " 2. ☐ walk dog")
	assert.Contains(t, out, "3 items left")

	assert.Contains(t, h.mustRun("done", "2"), "toggled")
	out = h.mustRun("ls", "--filter", "completed")
	assert.Contains(t, out, " 2. ☑ walk dog")
	assert.NotContains(t, out, "buy milk")
	assert.Contains(t, out, "showing [Completed]")
	assert.NotContains(t, out, "Clear completed", "tui key hints stay out of ls")

	out = h.mustRun("ls", "--filter", "active")
	assert.Contains(t, out, " 3. ☐ call mom", "positions stay unfiltered")
	assert.NotContains(t, out, "walk dog")

	assert.Contains(t, h.mustRun("rm", "1"), "removed")
	out = h.mustRun("ls")
	assert.Contains(t, out, " 1. ☑ walk dog")
	assert.Contains(t, out, " 2. ☐ call mom")
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a")
	h.mustRun("edit", "1", "new", "text")
	assert.Contains(t, h.mustRun("ls"), "new text")
}

func TestToggleAllAndClear(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a")
	h.mustRun("add", "b")
	h.mustRun("done", "1")

	assert.Contains(t, h.mustRun("toggle-all"), "all completed")
	assert.Contains(t, h.mustRun("ls"), "0 items left")
	assert.Contains(t, h.mustRun("toggle-all"), "all active")

	h.mustRun("done", "2")
	assert.Contains(t, h.mustRun("clear-completed"), "cleared 1")
	out := h.mustRun("export")
	assert.JSONEq(t, `[{"content":"a","completed":false}]`, out)
}

func TestGroupedList(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a")
	h.mustRun("add", "b")
	h.mustRun("done", "2")

	out := h.mustRun("ls", "--group")
	ai := strings.Index(out, "Active")
	ci := strings.Index(out, "Completed")
	require.True(t, ai >= 0 && ci > ai)
	assert.Contains(t, out[ai:ci], "a")
	assert.Contains(t, out[ci:], "☑ b")
}

func TestExportYAML(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a")
	h.mustRun("done", "1")
	assert.Equal(t, "- content: a\n  completed: true\n", h.mustRun("export", "--format", "yaml"))
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "only")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"done", "5"}, "index out of range: have 1, got 5"},
		{[]string{"rm", "0"}, "index out of range"},
		{[]string{"done", "two"}, "not a number"},
		{[]string{"rm"}, "usage: todomvc rm <index>"},
		{[]string{"add"}, "usage: todomvc add"},
		{[]string{"edit", "1"}, "usage: todomvc edit"},
		{[]string{"ls", "--filter", "someday"}, "unknown filter"},
		{[]string{"export", "--format", "xml"}, "unknown format"},
		{[]string{"frobnicate"}, "unknown command"},
		{[]string{"ls", "--bogus"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			r := h.run(tt.args...)
			assert.Equal(t, exitUsage, r.code)
			assert.Contains(t, r.stderr, tt.want)
		})
	}
}

func TestInvalidBackendIsUsageError(t *testing.T) {
	newHarness(t)
	var errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--store", "mongo", "ls"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&errOut)
	assert.Equal(t, exitUsage, run(cmd, &errOut))
	assert.Contains(t, errOut.String(), "store.backend")
}

func TestSQLiteBackend(t *testing.T) {
	newHarness(t)
	path := filepath.Join(t.TempDir(), "todos.sqlite")
	runSQLite := func(args ...string) string {
		var out, errOut bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetArgs(append([]string{"--store", "sqlite", "--path", path}, args...))
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		require.Equal(t, 0, run(cmd, &errOut), errOut.String())
		return out.String()
	}
	runSQLite("add", "stored in sqlite")
	assert.JSONEq(t, `[{"content":"stored in sqlite","completed":false}]`, runSQLite("export"))
}

func TestCorruptStoreStartsEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.path, []byte(`{"todomvc": {"not": "a list"}}`), 0o644))
	out := h.mustRun("ls")
	assert.Contains(t, out, "no items")

	h.mustRun("add", "fresh")
	assert.JSONEq(t, `[{"content":"fresh","completed":false}]`, h.mustRun("export"))
}

func TestCustomKey(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--key", "work", "add", "ship it")
	assert.Contains(t, h.mustRun("--key", "work", "ls"), "ship it")
	assert.Contains(t, h.mustRun("ls"), "no items")
}
