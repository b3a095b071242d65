// Package confstore provides read access to a hierarchical key/value
// configuration store. Keys are absolute slash separated paths; a directory
// holds keys and further directories.
package confstore

import "errors"

var (
	ErrNotFound     = errors.New("key not found")
	ErrTypeMismatch = errors.New("value has unexpected type")
)

// Reader is a consistent, read-only view of the store.
type Reader interface {
	// AllDirs returns the full paths of the directories directly under dir.
	AllDirs(dir string) ([]string, error)
	GetString(key string) (string, error)
	GetBool(key string) (bool, error)
}

// Store hands out snapshots. A snapshot is borrowed for one scan and
// dropped afterwards; later snapshots may reflect newer contents.
type Store interface {
	Snapshot() (Reader, error)
}
