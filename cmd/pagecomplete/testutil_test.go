package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testFixtures = `
[[course]]
idnumber = "CRS1"
shortname = "crs1"
fullname = "Course One"
page = "Induction"

[[course]]
idnumber = "CRS2"
shortname = "crs2"
fullname = "Course Two"

[[user]]
username = "alice"
firstname = "Alice"

[[user]]
username = "bob"
firstname = "Bob"
`

// testEnv isolates config discovery and holds a scratch database path.
type testEnv struct {
	t   *testing.T
	dir string
	db  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PAGECOMPLETE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return &testEnv{t: t, dir: dir, db: filepath.Join(dir, "data", "test.db")}
}

// writeFile creates a file in the scratch dir and returns its path.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the root command against the scratch database.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", e.db, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) seed() {
	e.t.Helper()
	_, err := e.run("seed", e.writeFile("fixtures.toml", testFixtures))
	require.NoError(e.t, err)
}
