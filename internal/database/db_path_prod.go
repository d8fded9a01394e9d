//go:build prod

package database

import (
	"log"
	"os"
	"path/filepath"

	"briefy/internal/utils"
)

// GetDefaultDBPath returns the SQLite path used by release builds, under the
// user's config directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Warning: Failed to get user config dir: %v. Using fallback.", err)
		return "briefy.db"
	}

	appDir := filepath.Join(configDir, "briefy")
	if err := utils.EnsureDir(appDir); err != nil {
		log.Printf("Warning: Failed to create app config dir: %v. Using fallback.", err)
		return "briefy.db"
	}

	return filepath.Join(appDir, "briefy.db")
}
