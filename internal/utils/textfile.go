package utils

import (
	"bufio"
	"os"
	"strings"
)

// ReadListFile reads one entry per line, e.g. a list of document globs.
// Blank lines and lines starting with # are ignored, as is anything after
// " #" on a line.
func ReadListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		if i := strings.Index(line, " #"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
