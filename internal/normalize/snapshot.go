package normalize

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wbliga/wb-liga/internal/logger"
	"github.com/wbliga/wb-liga/internal/storage"
)

var (
	// ErrSnapshot is returned when the pre-run backup could not be written.
	// The database has not been touched in that case.
	ErrSnapshot = errors.New("snapshot failed")

	// ErrRestored wraps the cause of a failed run after the database was
	// reinstated from its snapshot
	ErrRestored = errors.New("run failed, database restored from snapshot")
)

// Snapshot is a full copy of a database file taken before a run
type Snapshot struct {
	Source string
	Path   string
}

// TakeSnapshot writes a consistent copy of the database behind db to
// backupDir. The copy is named <db file>.backup.<UTC timestamp>-<run id>.
func TakeSnapshot(ctx context.Context, db *sql.DB, source, backupDir, runID string, now time.Time) (*Snapshot, error) {
	if backupDir == "" {
		backupDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating backup directory: %v", ErrSnapshot, err)
	}

	name := fmt.Sprintf("%s.backup.%s-%s", filepath.Base(source), now.UTC().Format("20060102T150405Z"), shortID(runID))
	path := filepath.Join(backupDir, name)

	// VACUUM INTO refuses to overwrite and reads through the WAL
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	logger.Info("Snapshot written", logger.Fields{
		"source": source,
		"backup": path,
		"run_id": runID,
	})
	return &Snapshot{Source: source, Path: path}, nil
}

// Restore copies the snapshot back over its source. Every connection to the
// source must be closed beforehand.
func (s *Snapshot) Restore() error {
	in, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer in.Close() // nolint:errcheck

	tmp := s.Source + ".restore"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating restore file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()    // nolint:errcheck
		os.Remove(tmp) // nolint:errcheck
		return fmt.Errorf("copying snapshot: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()    // nolint:errcheck
		os.Remove(tmp) // nolint:errcheck
		return fmt.Errorf("syncing restore file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing restore file: %w", err)
	}

	// stale WAL frames would be replayed on top of the restored file
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(s.Source + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s file: %w", strings.TrimPrefix(suffix, "-"), err)
		}
	}
	if err := os.Rename(tmp, s.Source); err != nil {
		return fmt.Errorf("replacing database: %w", err)
	}

	logger.Warn("Database restored from snapshot", logger.Fields{
		"source": s.Source,
		"backup": s.Path,
	})
	return nil
}

// WithSnapshot snapshots the database at path, then runs fn inside a single
// write transaction. On success the transaction is committed and the open
// store is returned for follow-up work outside the transaction; the caller
// closes it. On any failure the transaction is rolled back, the store is
// closed, the snapshot is restored and the returned error wraps ErrRestored.
func WithSnapshot(ctx context.Context, path, backupDir, runID string, now time.Time,
	fn func(ctx context.Context, tx *sql.Tx) error) (*storage.Store, *Snapshot, error) {
	store, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	snap, err := TakeSnapshot(ctx, store.DB(), path, backupDir, runID, now)
	if err != nil {
		store.Close() // nolint:errcheck
		return nil, nil, err
	}

	fail := func(cause error) (*storage.Store, *Snapshot, error) {
		store.Close() // nolint:errcheck
		if rerr := snap.Restore(); rerr != nil {
			return nil, snap, fmt.Errorf("%v; restoring snapshot %s: %w", cause, snap.Path, rerr)
		}
		return nil, snap, fmt.Errorf("%w: %w", ErrRestored, cause)
	}

	tx, err := store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fail(fmt.Errorf("beginning transaction: %w", err))
	}
	if err := fn(ctx, tx); err != nil {
		tx.Rollback() // nolint:errcheck
		return fail(err)
	}
	if err := tx.Commit(); err != nil {
		return fail(fmt.Errorf("committing: %w", err))
	}
	return store, snap, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
