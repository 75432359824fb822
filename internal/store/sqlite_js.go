//go:build js

package store

// SQLite has no driver in the browser build; Open falls back to memory.
type SQLite struct{}

// OpenSQLite always fails with ErrUnsupported.
func OpenSQLite(string) (*SQLite, error) {
	return nil, ErrUnsupported
}
