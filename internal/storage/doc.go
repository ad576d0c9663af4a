// Package storage provides the durable key-value stores ecotrip persists
// its history in.
//
// A store holds opaque byte values under string keys. Writing a key replaces
// its entire value; deleting removes the key so a later Get reports
// ErrNotFound. Three backends are available:
//   - FileStore: one JSON file per key in a directory (default ~/.ecotrip/),
//     replaced atomically via temp file + rename and guarded by a lockfile
//   - SQLiteStore: a single kv table in a SQLite database (pure Go driver)
//   - MemoryStore: process-local, for tests and ephemeral runs
package storage
