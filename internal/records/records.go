// Package records provides one repository per record kind — exercises,
// workouts, programs, sessions — each composing the frontmatter and body
// codecs over the vault store.
package records

import (
	"errors"
	"regexp"
	"strings"

	"github.com/claude/ironvault/internal/vault"
)

// Folder layout inside the vault.
const (
	ExercisesFolder = "Exercises"
	WorkoutsFolder  = "Workouts"
	ProgramsFolder  = "Programs"
	SessionsFolder  = "Sessions"
)

var (
	// ErrNotFound is returned for get/update/delete of a missing record.
	ErrNotFound = errors.New("record not found")

	// ErrExists is returned when creating a record whose id is taken.
	ErrExists = errors.New("record already exists")
)

// DocPath returns the vault path of a record.
func DocPath(folder, id string) string {
	return folder + "/" + id + ".md"
}

// idFromPath recovers the record id from a vault path.
func idFromPath(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	return strings.TrimSuffix(base, ".md")
}

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9-]`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// Slugify derives a file-safe id from a display name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// writeDoc creates or overwrites a record document.
func writeDoc(store vault.Store, path, text string) error {
	if h, ok := store.Resolve(path); ok {
		return store.Modify(h, text)
	}
	_, err := store.Create(path, text)
	return err
}

func matchesQuery(name, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
