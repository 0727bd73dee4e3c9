package vault

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory Store for tests. The hook fields let a test
// misreport existence or fail a create, reproducing the stale-cache races
// the session engine has to recover from.
type MemStore struct {
	mu      sync.Mutex
	files   map[string]string
	folders map[string]bool
	trashed []string

	// ExistsHook, when set, overrides the answer Exists would give.
	ExistsHook func(path string, actual bool) bool

	// CreateHook, when set, runs before a create and may veto it.
	CreateHook func(path string) error

	// ResolveHook, when set, overrides whether Resolve can see path.
	ResolveHook func(path string, actual bool) bool

	// BeforeWrite, when set, runs before any Modify or WriteRaw commits.
	// Tests block in it to hold a save in flight.
	BeforeWrite func(path string)

	modifies int
	creates  int
	raws     int
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string]string), folders: make(map[string]bool)}
}

func (s *MemStore) Exists(path string) bool {
	s.mu.Lock()
	_, actual := s.files[path]
	hook := s.ExistsHook
	s.mu.Unlock()
	if hook != nil {
		return hook(path, actual)
	}
	return actual
}

func (s *MemStore) Create(path, text string) (*Handle, error) {
	s.mu.Lock()
	hook := s.CreateHook
	s.mu.Unlock()
	if hook != nil {
		if err := hook(path); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[path]; ok {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}
	s.files[path] = text
	s.creates++
	return &Handle{Path: path}, nil
}

func (s *MemStore) Modify(h *Handle, text string) error {
	if s.BeforeWrite != nil {
		s.BeforeWrite(h.Path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[h.Path]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, h.Path)
	}
	s.files[h.Path] = text
	s.modifies++
	return nil
}

func (s *MemStore) Read(h *Handle) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.files[h.Path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, h.Path)
	}
	return text, nil
}

func (s *MemStore) CachedRead(h *Handle) (string, error) {
	return s.Read(h)
}

func (s *MemStore) Resolve(path string) (*Handle, bool) {
	s.mu.Lock()
	_, actual := s.files[path]
	hook := s.ResolveHook
	s.mu.Unlock()
	if hook != nil {
		actual = hook(path, actual)
	}
	if !actual {
		return nil, false
	}
	return &Handle{Path: path}, true
}

func (s *MemStore) ListChildren(folder string) ([]*Handle, error) {
	prefix := strings.TrimSuffix(folder, "/") + "/"
	s.mu.Lock()
	defer s.mu.Unlock()
	var paths []string
	for p := range s.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if strings.Contains(p[len(prefix):], "/") {
			continue // nested deeper
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	handles := make([]*Handle, len(paths))
	for i, p := range paths {
		handles[i] = &Handle{Path: p}
	}
	return handles, nil
}

func (s *MemStore) Trash(h *Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[h.Path]; !ok {
		return nil
	}
	delete(s.files, h.Path)
	s.trashed = append(s.trashed, h.Path)
	return nil
}

func (s *MemStore) EnsureFolder(path string) error {
	s.mu.Lock()
	s.folders[strings.TrimSuffix(path, "/")] = true
	s.mu.Unlock()
	return nil
}

func (s *MemStore) WriteRaw(path, text string) error {
	if s.BeforeWrite != nil {
		s.BeforeWrite(path)
	}
	s.mu.Lock()
	s.files[path] = text
	s.raws++
	s.mu.Unlock()
	return nil
}

// Get returns the stored text for path.
func (s *MemStore) Get(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.files[path]
	return text, ok
}

// Put stores text at path directly, bypassing hooks and counters.
func (s *MemStore) Put(path, text string) {
	s.mu.Lock()
	s.files[path] = text
	s.mu.Unlock()
}

// Counts returns how many creates, modifies, and raw writes have landed.
func (s *MemStore) Counts() (creates, modifies, raws int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates, s.modifies, s.raws
}

// Trashed returns the paths that have been trashed, in order.
func (s *MemStore) Trashed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.trashed...)
}
