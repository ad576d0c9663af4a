package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrNotFound indicates the key has no stored value.
	ErrNotFound = constError("storage key not found")

	// ErrInvalidKey indicates an empty or unusable key.
	ErrInvalidKey = constError("invalid storage key")

	// ErrUnknownBackend indicates a backend name Open does not recognize.
	ErrUnknownBackend = constError("unknown storage backend")
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a durable key-value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	// Backend is one of BackendFile, BackendSQLite, BackendMemory.
	Backend string

	// Path is the directory (file backend) or database file (sqlite backend).
	// Empty selects the default under ~/.ecotrip/.
	Path string
}

// Open creates the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		dir := opts.Path
		if dir == "" {
			base, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = base
		}
		return NewFileStore(dir)
	case BackendSQLite:
		path := opts.Path
		if path == "" {
			base, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(base, "ecotrip.db")
		}
		return NewSQLiteStore(ctx, path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// HomeEnvVar overrides the default data directory.
const HomeEnvVar = "ECOTRIP_HOME"

// DefaultDir returns $ECOTRIP_HOME when set, otherwise ~/.ecotrip.
func DefaultDir() (string, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ecotrip"), nil
}

// validateKey rejects keys that are empty or could escape the store.
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
