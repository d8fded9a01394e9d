// Package documents reads briefing files from disk into models.Document
// values for the generation pipeline.
package documents

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	filepathx "github.com/yargevad/filepathx"

	"briefy/internal/events"
	"briefy/internal/models"
)

const (
	defaultFileLimit = 50
	defaultMaxBytes  = 512 * 1024
)

var (
	ErrNoMatches    = errors.New("no documents matched")
	ErrEscapesRoot  = errors.New("path escapes the configured root")
	ErrEmptyPattern = errors.New("pattern is required")
)

// Loader expands glob patterns (with ** support) under Root and reads the
// text files they match. Binary files are skipped.
type Loader struct {
	Root     string
	Limit    int
	MaxBytes int64
}

func NewLoader(root string) *Loader {
	return &Loader{Root: root, Limit: defaultFileLimit, MaxBytes: defaultMaxBytes}
}

// Skipped describes a matched file that was not loaded.
type Skipped struct {
	Path   string
	Reason string
}

// Load returns documents sorted by path. Names are relative to Root.
func (l *Loader) Load(ctx context.Context, patterns ...string) ([]models.Document, []Skipped, error) {
	root := l.Root
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolved
	}
	limit := l.Limit
	if limit <= 0 {
		limit = defaultFileLimit
	}

	seen := map[string]struct{}{}
	var paths []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			return nil, nil, ErrEmptyPattern
		}
		absPattern := pattern
		if !filepath.IsAbs(pattern) {
			joined, ok := safeJoinUnderBase(absRoot, pattern)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %s", ErrEscapesRoot, pattern)
			}
			absPattern = joined
		}
		matches, err := filepathx.Glob(absPattern)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)

	var (
		docs    []models.Document
		skipped []Skipped
	)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			continue
		}
		if len(docs) >= limit {
			skipped = append(skipped, Skipped{Path: p, Reason: "file limit reached"})
			continue
		}
		if l.MaxBytes > 0 && st.Size() > l.MaxBytes {
			skipped = append(skipped, Skipped{Path: p, Reason: fmt.Sprintf("larger than %d bytes", l.MaxBytes)})
			continue
		}
		binary, err := isBinaryFile(p)
		if err != nil {
			skipped = append(skipped, Skipped{Path: p, Reason: err.Error()})
			continue
		}
		if binary {
			skipped = append(skipped, Skipped{Path: p, Reason: "binary file"})
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			skipped = append(skipped, Skipped{Path: p, Reason: err.Error()})
			continue
		}
		name, err := filepath.Rel(absRoot, p)
		if err != nil || strings.HasPrefix(name, "..") {
			name = filepath.Base(p)
		}
		docs = append(docs, models.Document{Name: filepath.ToSlash(name), Content: string(data)})
	}

	for _, s := range skipped {
		events.Emit(ctx, events.GenerationProgress, events.NewWarn(events.StagePreparing, fmt.Sprintf("Ignorado %s: %s", s.Path, s.Reason)))
	}
	if len(docs) == 0 {
		return nil, skipped, ErrNoMatches
	}
	events.Emit(ctx, events.GenerationProgress, events.NewInfo(events.StagePreparing, fmt.Sprintf("%d documento(s) carregado(s)", len(docs))))
	return docs, skipped, nil
}

// safeJoinUnderBase joins p onto base and reports whether the result stays
// inside base once symlinks are resolved.
func safeJoinUnderBase(base, p string) (string, bool) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	evalBase, err := filepath.EvalSymlinks(absBase)
	if err != nil {
		evalBase = absBase
	}
	candidate, err := filepath.Abs(filepath.Join(evalBase, p))
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(evalBase, candidate)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return candidate, true
}

// isBinaryFile checks the extension first, then scans up to 4096 bytes for
// NULs or a high share of control characters.
func isBinaryFile(p string) (bool, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".zip", ".tar", ".gz", ".exe", ".dll", ".so", ".jar", ".7z",
		".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".odt", ".pdf",
		".bin", ".dat", ".wasm", ".png", ".jpg", ".jpeg", ".gif", ".mp4", ".webm", ".mov":
		return true, nil
	}

	f, err := os.Open(p)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, err := io.ReadFull(bufio.NewReader(f), buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	buf = buf[:n]
	if len(buf) == 0 {
		return false, nil
	}

	nonPrintable := 0
	for _, b := range buf {
		if b == 0x00 {
			return true, nil
		}
		if b < 9 || (b > 13 && b < 32) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buf)) > 0.3, nil
}
