//go:build !prod

package database

// GetDefaultDBPath returns the SQLite path used in development: the working
// directory, so the file is easy to inspect.
func GetDefaultDBPath() string {
	return "briefy.db"
}
