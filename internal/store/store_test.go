// ABOUTME: Shared test setup for store tests
// ABOUTME: Creates a real SQLite store in a temp directory per test

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// setupTestStore creates a SQLite store in a temp directory that is cleaned
// up with the test.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpDir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// registerTestPrincipal registers a principal with a home workspace and
// returns both.
func registerTestPrincipal(t *testing.T, s *SQLiteStore, email, name string) (*Principal, *Workspace) {
	t.Helper()

	p := &Principal{
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		DisplayName:  name,
	}
	ws, err := s.RegisterPrincipal(context.Background(), p, name+"'s Workspace")
	require.NoError(t, err)

	return p, ws
}

func TestNewSQLiteStore_CreatesParentDirs(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()
}

func TestNewSQLiteStore_ReopenKeepsData(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	p, _ := registerTestPrincipal(t, s, "reopen@example.com", "Reopen")
	require.NoError(t, s.Close())

	s2, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetPrincipal(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, "reopen@example.com", got.Email)
}

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Now()
	parsed, err := parseTime(formatTime(now))
	require.NoError(t, err)
	require.WithinDuration(t, now, parsed, time.Second)
}
