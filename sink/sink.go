// Package sink provides destinations for the files the omnigen CLI writes.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Sink receives output files. Implementations must be safe for concurrent calls.
type Sink interface {
	// WriteFile stores content at path. Paths are relative and slash separated.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// Dir writes files below a directory on the local filesystem.
type Dir struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files.
	// If false, writing an existing path fails.
	Overwrite bool
}

// NewDir returns a Dir sink rooted at root that overwrites existing files.
func NewDir(root string) *Dir {
	return &Dir{
		Root:      root,
		Mode:      0644,
		Overwrite: true,
	}
}

// WriteFile writes content atomically via a temp file in the target directory.
func (s *Dir) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create directories")
	}

	tmp, err := writeTemp(dir, content, s.mode())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return s.commit(tmp, full, path)
}

func (s *Dir) mode() os.FileMode {
	if s.Mode == 0 {
		return 0644
	}
	return s.Mode
}

// resolve joins path to Root and rejects results outside Root.
func (s *Dir) resolve(path string) (string, error) {
	full := filepath.Join(s.Root, filepath.FromSlash(path))
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", errors.Wrap(err, "resolve root directory")
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return "", errors.Wrap(err, "resolve path")
	}
	if !strings.HasPrefix(abs, absRoot+string(filepath.Separator)) {
		return "", errors.Errorf("path escapes root directory: %q", path)
	}
	return full, nil
}

func writeTemp(dir string, content []byte, mode os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, ".omnigen-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	name := f.Name()
	_, werr := f.Write(content)
	cerr := f.Close()
	switch {
	case werr != nil:
		err = errors.Wrap(werr, "write temp file")
	case cerr != nil:
		err = errors.Wrap(cerr, "close temp file")
	default:
		if cherr := os.Chmod(name, mode); cherr != nil {
			err = errors.Wrap(cherr, "set file mode")
		}
	}
	if err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

// commit moves tmp into place. Without Overwrite it hard links instead of
// renaming so an existing file makes the write fail atomically.
func (s *Dir) commit(tmp, full, path string) error {
	if s.Overwrite {
		if err := os.Rename(tmp, full); err != nil {
			_ = os.Remove(tmp)
			return errors.Wrap(err, "rename temp file")
		}
		return nil
	}
	err := os.Link(tmp, full)
	_ = os.Remove(tmp)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.Errorf("file already exists: %q", path)
		}
		return errors.Wrap(err, "create file")
	}
	return nil
}

// Memory keeps files in memory. It is used by tests and dry runs.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content.
func (s *Memory) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = append([]byte(nil), content...)
	return nil
}

// Paths returns the stored paths in sorted order.
func (s *Memory) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Get returns a copy of the file at path, or nil if not found.
func (s *Memory) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[path]
	if !ok {
		return nil
	}
	return append([]byte(nil), content...)
}

// Reset clears all stored files.
func (s *Memory) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
}

// Writer streams every file to W, each preceded by a "# path" header line.
type Writer struct {
	mu sync.Mutex
	W  io.Writer
}

// NewWriter returns a Writer sink that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{W: w}
}

// WriteFile writes the header and content as one unit.
func (s *Writer) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.W, "# %s\n", path); err != nil {
		return err
	}
	_, err := s.W.Write(content)
	return err
}

// ValidatePath checks if a path is valid for output.
// Paths must be relative, use / as separator, have no .. components and be clean.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive letters are rejected on every platform.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	cleaned := filepath.ToSlash(filepath.Clean(path))
	if cleaned != path {
		return errors.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
