package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/EHLuC/ecotrip/internal/logging"
)

// fileExtension is appended to keys to form file names.
const fileExtension = ".json"

// Lockfile tuning.
const (
	lockMaxRetries = 10
	lockRetryDelay = 100 * time.Millisecond
	staleLockAge   = 30 * time.Second
)

// FileStore stores each key as a file in a directory.
// Safe for concurrent use within a process; a lockfile per key coordinates
// writers across processes.
type FileStore struct {
	// directory is the store directory path.
	directory string

	// mu protects concurrent access to file operations.
	mu sync.RWMutex
}

// NewFileStore creates a FileStore rooted at directory, creating it if needed.
func NewFileStore(directory string) (*FileStore, error) {
	if directory == "" {
		return nil, errors.New("storage directory cannot be empty")
	}

	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &FileStore{directory: directory}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.directory
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.directory, key+fileExtension)
}

// Get reads the file for key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the file for key atomically via a temp file and rename.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	unlock, lockErr := s.acquireFileLock(key)
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(key)
	tmpPath := path + ".tmp"
	if writeErr := os.WriteFile(tmpPath, value, 0o600); writeErr != nil {
		return fmt.Errorf("writing %s temp file: %w", key, writeErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		// Clean up temp file on rename failure
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming %s temp file: %w", key, renameErr)
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "storage").
		Str("operation", "set").
		Str("path", path).
		Int("bytes", len(value)).
		Msg("value written")

	return nil
}

// Delete removes the file for key. Missing files are ignored.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	unlock, lockErr := s.acquireFileLock(key)
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "storage").
		Str("operation", "delete").
		Str("path", path).
		Msg("value deleted")

	return nil
}

// Close is a no-op; files are not held open.
func (s *FileStore) Close() error { return nil }

// acquireFileLock acquires a cross-process advisory lockfile for key.
// Returns a cleanup function that releases the lock.
func (s *FileStore) acquireFileLock(key string) (func(), error) {
	lockPath := s.Path(key) + ".lock"

	for range lockMaxRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			// Write PID for stale lock detection
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath, staleLockAge) {
			continue
		}
		time.Sleep(lockRetryDelay)
	}

	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

// removeStaleLock removes a lock file older than staleAge whose owner is
// gone. Returns true if the lock was removed (caller should retry).
func removeStaleLock(lockPath string, staleAge time.Duration) bool {
	info, statErr := os.Stat(lockPath)
	if statErr != nil || time.Since(info.ModTime()) <= staleAge {
		return false
	}

	if isLockHeldByLiveProcess(lockPath) {
		return false
	}

	_ = os.Remove(lockPath)
	return true
}

// isLockHeldByLiveProcess reads the PID from a lock file and checks if that
// process is still alive.
func isLockHeldByLiveProcess(lockPath string) bool {
	pidData, readErr := os.ReadFile(lockPath)
	if readErr != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 tests process existence without actually sending a signal
	return proc.Signal(syscall.Signal(0)) == nil
}
