// Package vault is the document store the repositories and session engine
// write through. The interface mirrors the narrow contract of the host
// file store: existence checks, create-if-absent, modify-by-handle, a
// cached read path that may lag a just-completed write, folder listing,
// and trashing. DirStore backs it with a directory tree; MemStore is the
// in-memory implementation used by tests.
package vault

import "errors"

var (
	// ErrExists is returned by Create when the path is already taken.
	ErrExists = errors.New("vault: file already exists")

	// ErrNotFound is returned when a handle or path cannot be resolved.
	ErrNotFound = errors.New("vault: file not found")
)

// Handle identifies a document in the store. Handles can go stale: a
// handle obtained before a concurrent write may no longer resolve, which
// is why callers re-resolve before falling back to Modify.
type Handle struct {
	Path string
}

// Store is the file-store contract.
type Store interface {
	// Exists reports whether a document exists at path. The answer may
	// be stale relative to a write racing from the same process.
	Exists(path string) bool

	// Create writes a new document and returns its handle. Fails with
	// ErrExists when the path is already taken.
	Create(path, text string) (*Handle, error)

	// Modify overwrites the document behind a handle.
	Modify(h *Handle, text string) error

	// Read returns the current document text.
	Read(h *Handle) (string, error)

	// CachedRead returns the document text, possibly from a read cache.
	CachedRead(h *Handle) (string, error)

	// Resolve returns a fresh handle for path, or false when the store
	// cannot see a document there.
	Resolve(path string) (*Handle, bool)

	// ListChildren returns handles for the documents directly inside a
	// folder. A missing folder yields an empty list.
	ListChildren(folder string) ([]*Handle, error)

	// Trash moves the document behind a handle out of the store.
	Trash(h *Handle) error

	// EnsureFolder creates the folder and any missing parents. Idempotent.
	EnsureFolder(path string) error

	// WriteRaw writes text at path unconditionally, bypassing handle
	// resolution. Last-resort primitive for the persistence fallback
	// ladder.
	WriteRaw(path, text string) error
}
