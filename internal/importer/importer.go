// Package importer reads exercise database dumps (JSON) and loads them
// into the catalog index.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/ironvault/internal/exercisedb"
	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/records"
)

// Stats tracks import progress.
type Stats struct {
	Read       int // entries in the source file
	Imported   int // rows handed to the catalog
	Skipped    int // entries without a usable name
	Duplicates int // repeated slugs within the file (first wins)
}

// rawExercise is the source file schema: one entry of a JSON array.
// Field names follow the free-exercise-db dump format; an explicit id
// overrides the slug derived from the name.
type rawExercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Equipment        string   `json:"equipment"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Images           []string `json:"images"`
}

// Importer loads a JSON exercise dump into the catalog.
type Importer struct {
	db     *exercisedb.DB
	log    *slog.Logger
	dryRun bool
}

// New creates a new Importer. With dryRun set, files are parsed and
// counted but nothing is written.
func New(db *exercisedb.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// ImportFile parses the given JSON file and bulk-imports its exercises.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*Stats, error) {
	rows, stats, err := parseFile(path)
	if err != nil {
		return stats, err
	}

	if imp.dryRun {
		imp.log.Info("dry run: skipping catalog write", "rows", len(rows))
		return stats, nil
	}

	logEntry, err := imp.db.BulkImport(ctx, filepath.Base(path), rows)
	if err != nil {
		return stats, fmt.Errorf("bulk import: %w", err)
	}
	stats.Imported = logEntry.Count
	imp.log.Info("catalog import complete", "batch", logEntry.BatchID, "rows", logEntry.Count)
	return stats, nil
}

// parseFile decodes the JSON dump into catalog rows, deduplicating by
// slug within the file.
func parseFile(path string) ([]models.DatabaseExercise, *Stats, error) {
	stats := &Stats{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", path, err)
	}

	var raw []rawExercise
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, stats, fmt.Errorf("decode %s: %w", path, err)
	}
	stats.Read = len(raw)

	seen := make(map[string]bool, len(raw))
	rows := make([]models.DatabaseExercise, 0, len(raw))
	for _, r := range raw {
		slug := r.ID
		if slug == "" {
			slug = records.Slugify(r.Name)
		}
		if slug == "" || r.Name == "" {
			stats.Skipped++
			continue
		}
		if seen[slug] {
			stats.Duplicates++
			continue
		}
		seen[slug] = true

		row := models.DatabaseExercise{
			Slug:         slug,
			Name:         r.Name,
			Category:     r.Category,
			Equipment:    r.Equipment,
			MuscleGroups: append(append([]string(nil), r.PrimaryMuscles...), r.SecondaryMuscles...),
		}
		if len(r.Images) > 0 {
			row.ImageURL = r.Images[0]
		}
		rows = append(rows, row)
	}
	stats.Imported = len(rows) // overwritten with the real count after a write
	return rows, stats, nil
}
