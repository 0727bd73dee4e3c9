package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const trashFolder = ".trash"

// DirStore implements Store on a directory tree. Writes are atomic
// (temp file + rename) and reads populate a cache that CachedRead serves
// from, matching the host store's cached-read semantics.
type DirStore struct {
	root string

	mu    sync.Mutex
	cache map[string]string
}

// OpenDir opens (creating if needed) a store rooted at dir.
func OpenDir(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vault root: %w", err)
	}
	return &DirStore{root: dir, cache: make(map[string]string)}, nil
}

// Root returns the root directory.
func (s *DirStore) Root() string { return s.root }

func (s *DirStore) fullPath(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

func (s *DirStore) Exists(path string) bool {
	info, err := os.Stat(s.fullPath(path))
	return err == nil && !info.IsDir()
}

func (s *DirStore) Create(path, text string) (*Handle, error) {
	full := s.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create parent folder: %w", err)
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	_, werr := f.WriteString(text)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, fmt.Errorf("write %s: %w", path, werr)
	}
	s.cachePut(path, text)
	return &Handle{Path: path}, nil
}

func (s *DirStore) Modify(h *Handle, text string) error {
	full := s.fullPath(h.Path)
	if _, err := os.Stat(full); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, h.Path)
	}
	if err := writeAtomic(full, text); err != nil {
		return fmt.Errorf("modify %s: %w", h.Path, err)
	}
	s.cachePut(h.Path, text)
	return nil
}

func (s *DirStore) Read(h *Handle) (string, error) {
	data, err := os.ReadFile(s.fullPath(h.Path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, h.Path)
		}
		return "", fmt.Errorf("read %s: %w", h.Path, err)
	}
	text := string(data)
	s.cachePut(h.Path, text)
	return text, nil
}

func (s *DirStore) CachedRead(h *Handle) (string, error) {
	s.mu.Lock()
	text, ok := s.cache[h.Path]
	s.mu.Unlock()
	if ok {
		return text, nil
	}
	return s.Read(h)
}

func (s *DirStore) Resolve(path string) (*Handle, bool) {
	if !s.Exists(path) {
		return nil, false
	}
	return &Handle{Path: path}, true
}

func (s *DirStore) ListChildren(folder string) ([]*Handle, error) {
	entries, err := os.ReadDir(s.fullPath(folder))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", folder, err)
	}
	var handles []*Handle
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		handles = append(handles, &Handle{Path: joinPath(folder, e.Name())})
	}
	return handles, nil
}

func (s *DirStore) Trash(h *Handle) error {
	full := s.fullPath(h.Path)
	if _, err := os.Stat(full); errors.Is(err, fs.ErrNotExist) {
		return nil // already gone
	}
	dest := filepath.Join(s.root, trashFolder,
		fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(full)))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create trash folder: %w", err)
	}
	if err := os.Rename(full, dest); err != nil {
		return fmt.Errorf("trash %s: %w", h.Path, err)
	}
	s.cacheDrop(h.Path)
	return nil
}

func (s *DirStore) EnsureFolder(path string) error {
	if err := os.MkdirAll(s.fullPath(path), 0o755); err != nil {
		return fmt.Errorf("ensure folder %s: %w", path, err)
	}
	return nil
}

func (s *DirStore) WriteRaw(path, text string) error {
	full := s.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create parent folder: %w", err)
	}
	if err := writeAtomic(full, text); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.cachePut(path, text)
	return nil
}

func (s *DirStore) cachePut(path, text string) {
	s.mu.Lock()
	s.cache[path] = text
	s.mu.Unlock()
}

func (s *DirStore) cacheDrop(path string) {
	s.mu.Lock()
	delete(s.cache, path)
	s.mu.Unlock()
}

// writeAtomic writes via a temp file and rename so a crashed write never
// leaves a half-written document.
func writeAtomic(full, text string) error {
	dir := filepath.Dir(full)
	tmp, err := os.CreateTemp(dir, filepath.Base(full)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	_, werr := tmp.WriteString(text)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(name)
		return fmt.Errorf("write temp file: %w", werr)
	}
	if err := os.Rename(name, full); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func joinPath(folder, name string) string {
	if folder == "" || folder == "." {
		return name
	}
	return strings.TrimSuffix(folder, "/") + "/" + name
}
