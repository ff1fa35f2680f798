package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"clockit/internal/config"
	"clockit/internal/repository/sqlite"
	"clockit/internal/services"

	"github.com/stretchr/testify/require"
)

// testClock is advanced explicitly by tests
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// setupTestApp returns an App on an in-memory database with a controllable clock
func setupTestApp(t *testing.T) (*App, *bytes.Buffer, *testClock) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := &testClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)}
	service := services.NewTaskServiceWithClock(repo, nil, clock.Now)

	out := &bytes.Buffer{}
	return NewApp(service, config.NewConfig(), out), out, clock
}

// runCLI executes the root command against a database file in a temp dir.
// Config file and environment are isolated from the user's.
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{"DATABASE_URL", "CLOCKIT_DB_URL", "CLOCKIT_DB_DIR", "CLOCKIT_RETENTION", "CLOCKIT_APP_VERBOSE"} {
		t.Setenv(name, "")
	}

	out := &bytes.Buffer{}
	root := NewRootCommand(nil)
	root.Command().SetOut(out)
	root.Command().SetErr(out)
	root.Command().SetArgs(append([]string{"--db-url", dbPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func tempDBPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "clockit.db")
}
