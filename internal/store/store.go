// Package store persists the high score.
package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a key has never been written.
	ErrNotFound = errors.New("store: key not found")
	// ErrUnsupported is returned by OpenSQLite on platforms without the driver.
	ErrUnsupported = errors.New("store: sqlite is not available on this platform")
)

// Store keeps integer values by key.
type Store interface {
	Get(key string) (int, error)
	Put(key string, value int) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Open creates the store for backend. path is the database file for sqlite
// and is ignored for memory. Where sqlite is unavailable (the browser build)
// the high score is kept in memory instead.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if errors.Is(err, ErrUnsupported) {
			return NewMemory(), nil
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

// Load reads key, treating a missing key as zero.
func Load(s Store, key string) (int, error) {
	v, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	return v, err
}
