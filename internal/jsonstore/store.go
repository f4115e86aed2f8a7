// Package jsonstore implements a crash-resilient record store backed by a
// single JSON file. The full collection is rewritten on every mutation via
// a temp-file-and-rename sequence, so readers never observe a half-written
// file and a failed writer leaves the last good version intact.
//
// Mutual exclusion across processes uses an advisory lock on a sidecar
// file. The lock serializes the replace itself, not whole read-modify-write
// sequences: two concurrent updates may both read the pre-update state and
// the later write wins. That lost-update window is an accepted boundary of
// the design.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/Senegura/TicketSystem/pkg/util"
)

// Lock contention is retried after the initial attempt with exponential
// backoff: 100ms, 200ms, 400ms.
const (
	lockRetries     = 3
	lockBackoffBase = 100 * time.Millisecond
)

var errLockBusy = errors.New("collection file is locked by another process")

// Record is implemented by types persisted in a Store. The type parameter
// is the implementing type itself, so Stamp and Overwrite return values of
// the concrete record type.
type Record[T any] interface {
	// RecordID returns the unique identifier of the record.
	RecordID() uuid.UUID

	// Stamp returns the record with identifier and creation/update
	// timestamps assigned. Invoked once, by Create.
	Stamp(id uuid.UUID, now time.Time) T

	// Overwrite returns the receiver (the stored record) with its mutable
	// fields replaced by those of incoming and its update timestamp
	// refreshed. Identifier and creation timestamp must be preserved.
	Overwrite(incoming T, now time.Time) T
}

// Store provides CRUD over an ordered collection of records serialized as
// one JSON file. Every operation re-reads the authoritative on-disk state;
// nothing is cached across calls.
type Store[T Record[T]] struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
}

// New builds a store over the collection file at path. The file and its
// parent directory are created on first write.
func New[T Record[T]](path string, logger *zap.Logger) *Store[T] {
	return NewWithClock[T](path, logger, time.Now)
}

// NewWithClock builds a store with an explicit time source for tests.
func NewWithClock[T Record[T]](path string, logger *zap.Logger, now func() time.Time) *Store[T] {
	return &Store[T]{path: path, logger: logger, now: now}
}

// Create assigns a fresh identifier and timestamps to rec, appends it to
// the collection and writes the collection back atomically.
func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	var created T
	err := s.withLock(ctx, func() error {
		records, err := s.readLocked()
		if err != nil {
			return err
		}
		created = rec.Stamp(uuid.New(), s.now().UTC())
		records = append(records, created)
		return s.writeLocked(records)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

// GetAll reads and deserializes the full collection. A missing file is an
// empty collection. Malformed content is also treated as empty: the parse
// failure is logged and the bytes on disk are left untouched so an operator
// can recover them before the next write replaces the file.
func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	var records []T
	err := s.withRLock(ctx, func() error {
		var err error
		records, err = s.readLocked()
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID returns the record with the given identifier. A missing record is
// signaled by the boolean, not an error.
func (s *Store[T]) GetByID(ctx context.Context, id uuid.UUID) (T, bool, error) {
	var zero T
	records, err := s.GetAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, rec := range records {
		if rec.RecordID() == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Update locates the stored record matching rec's identifier, overwrites
// its mutable fields, refreshes the update timestamp and writes the
// collection back. The boolean reports whether the record existed.
func (s *Store[T]) Update(ctx context.Context, rec T) (T, bool, error) {
	var (
		zero    T
		updated T
		found   bool
	)
	err := s.withLock(ctx, func() error {
		records, err := s.readLocked()
		if err != nil {
			return err
		}
		found = false
		for i := range records {
			if records[i].RecordID() != rec.RecordID() {
				continue
			}
			updated = records[i].Overwrite(rec, s.now().UTC())
			records[i] = updated
			found = true
			break
		}
		if !found {
			return nil
		}
		return s.writeLocked(records)
	})
	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, nil
	}
	return updated, true, nil
}

// Delete removes the record with the given identifier and writes the
// collection back. The boolean reports whether the record existed.
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := s.withLock(ctx, func() error {
		records, err := s.readLocked()
		if err != nil {
			return err
		}
		found = false
		for i := range records {
			if records[i].RecordID() != id {
				continue
			}
			records = append(records[:i], records[i+1:]...)
			found = true
			break
		}
		if !found {
			return nil
		}
		return s.writeLocked(records)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// withRLock runs op while holding the shared collection lock, retrying
// transient contention per the backoff policy.
func (s *Store[T]) withRLock(ctx context.Context, op func() error) error {
	return s.withBackoff(ctx, func() error {
		lock := flock.New(s.lockPath())
		locked, err := lock.TryRLock()
		if err != nil {
			return fmt.Errorf("acquire shared lock %s: %w", s.lockPath(), err)
		}
		if !locked {
			return retry.RetryableError(errLockBusy)
		}
		defer lock.Unlock() //nolint:errcheck
		return op()
	})
}

// withLock runs op while holding the exclusive collection lock, retrying
// transient contention per the backoff policy.
func (s *Store[T]) withLock(ctx context.Context, op func() error) error {
	return s.withBackoff(ctx, func() error {
		lock := flock.New(s.lockPath())
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire exclusive lock %s: %w", s.lockPath(), err)
		}
		if !locked {
			return retry.RetryableError(errLockBusy)
		}
		defer lock.Unlock() //nolint:errcheck
		return op()
	})
}

func (s *Store[T]) withBackoff(ctx context.Context, op func() error) error {
	backoff := retry.WithMaxRetries(lockRetries, retry.NewExponential(lockBackoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return op()
	})
	if errors.Is(err, errLockBusy) {
		return util.NewStorageUnavailable(
			fmt.Sprintf("collection file %s still locked after %d attempts", s.path, lockRetries+1), err)
	}
	return err
}

// readLocked loads the collection. Caller holds at least the shared lock.
func (s *Store[T]) readLocked() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, util.NewStorageUnavailable(fmt.Sprintf("read collection file %s", s.path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Error("collection file corrupted, treating as empty",
			zap.String("path", s.path),
			zap.Error(err))
		return []T{}, nil
	}
	return records, nil
}

// writeLocked serializes the full collection to a temp file, fsyncs it and
// atomically renames it over the target. Caller holds the exclusive lock,
// which also guarantees sole ownership of the temp file. On any failure the
// temp file is removed (best effort) and the previous version stays intact.
func (s *Store[T]) writeLocked(records []T) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return util.NewStorageUnavailable(fmt.Sprintf("create collection directory %s", dir), err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	tmpPath := s.path + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return util.NewStorageUnavailable(fmt.Sprintf("create temp file %s", tmpPath), err)
	}

	if err := s.commit(tmp, data); err != nil {
		os.Remove(tmpPath) //nolint:errcheck // best-effort cleanup, previous version intact
		return err
	}
	return nil
}

func (s *Store[T]) commit(tmp *os.File, data []byte) error {
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return util.NewStorageUnavailable(fmt.Sprintf("write temp file %s", tmpPath), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck
		return util.NewStorageUnavailable(fmt.Sprintf("flush temp file %s", tmpPath), err)
	}
	if err := tmp.Close(); err != nil {
		return util.NewStorageUnavailable(fmt.Sprintf("close temp file %s", tmpPath), err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return util.NewStorageUnavailable(fmt.Sprintf("replace collection file %s", s.path), err)
	}
	return nil
}

func (s *Store[T]) lockPath() string {
	return s.path + ".lock"
}
