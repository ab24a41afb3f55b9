// Package sink routes rendered interface documents to their destinations.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// An OutputSink receives rendered document bytes under slash-separated
// relative paths. Implementations must be safe for concurrent use.
type OutputSink interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes documents under a root directory.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the permission mode for written files. Zero means 0644.
	Mode os.FileMode

	// Overwrite replaces existing files. When false, writing over an
	// existing file is an error.
	Overwrite bool
}

// NewFilesystemSink returns a FilesystemSink rooted at dir that overwrites
// existing files.
func NewFilesystemSink(dir string) *FilesystemSink {
	return &FilesystemSink{
		Root:      dir,
		Mode:      0644,
		Overwrite: true,
	}
}

// WriteFile writes content to path under the root, creating parent
// directories as needed. The write is atomic: content lands in a temp file
// in the target directory and is renamed into place.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	full := filepath.Join(s.Root, filepath.FromSlash(path))

	// Join cleans its result, so compare resolved paths to catch anything
	// that still lands outside the root.
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	absPath, err := filepath.Abs(full)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return fmt.Errorf("path escapes root directory: %q", path)
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tmp, err := os.CreateTemp(dir, ".opencli-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	discard := func() { _ = os.Remove(tmpPath) }

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if writeErr != nil {
		discard()
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if closeErr != nil {
		discard()
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		discard()
		return fmt.Errorf("set file mode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		discard()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmpPath, full); err != nil {
			discard()
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	}

	// Link fails with EEXIST when the target is present, so create-if-absent
	// needs no stat-then-rename race.
	if err := os.Link(tmpPath, full); err != nil {
		discard()
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file already exists: %q", path)
		}
		return fmt.Errorf("create file: %w", err)
	}
	_ = os.Remove(tmpPath)
	return nil
}

// MemorySink keeps written documents in memory. It is safe for concurrent
// use and is the sink of choice in tests.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := make([]byte, len(content))
	copy(buf, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = buf
	return nil
}

// Files returns a copy of everything written so far.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		buf := make([]byte, len(content))
		copy(buf, content)
		out[path] = buf
	}
	return out
}

// Get returns a copy of one file's content, or nil when absent.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	return buf
}

// Reset drops all stored files.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
}

// ValidatePath reports whether path is acceptable for a sink: non-empty,
// relative, slash-separated, clean, and free of traversal components.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive prefixes count as absolute on every platform.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	if cleaned := filepath.Clean(filepath.ToSlash(path)); cleaned != filepath.ToSlash(path) {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
