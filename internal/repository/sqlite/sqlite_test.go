package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/medisuite/clinica/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// newTestBase opens a fresh database in a temp dir with its own metrics
// registry.
func newTestBase(t *testing.T) BaseRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "clinica.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewBaseRepository(db, metrics.New(prometheus.NewRegistry(), "clinica_test"))
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	require.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		db, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)
		db.Close()
	}
}

func TestOpen_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db1, err := Open(path)
	require.NoError(t, err)
	db1.Close()

	db2, err := Open(path)
	require.NoError(t, err)
	defer db2.Close()

	var count int
	require.NoError(t, db2.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	require.Equal(t, 0, count)
}

func TestSchema_AllTablesPresent(t *testing.T) {
	base := newTestBase(t)

	tables := []string{"users", "doctors", "patients", "appointments",
		"treatments", "medications", "prescriptions", "app_state"}

	for _, table := range tables {
		var name string
		err := base.GetDB().GetContext(context.Background(), &name,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		require.NoError(t, err, "missing table %s", table)
	}
}
