package utils

import "os"

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// EnsureDir creates path with private permissions when it is missing.
func EnsureDir(path string) error {
	if DirectoryExists(path) {
		return nil
	}
	return os.MkdirAll(path, 0o700)
}
