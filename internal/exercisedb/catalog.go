package exercisedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironvault/internal/models"
)

// BulkImport upserts a batch of catalog exercises in one transaction and
// records an import log row. Returns the log entry with its batch id.
func (db *DB) BulkImport(ctx context.Context, sourceFile string, exercises []models.DatabaseExercise) (models.ImportLog, error) {
	batch := uuid.NewString()
	now := time.Now().UTC()

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return models.ImportLog{}, fmt.Errorf("beginning import tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO database_exercises (slug, name, category, equipment, muscle_groups, image_url, import_batch, imported_at)
		 VALUES (?,?,?,?,?,?,?,?)
		 ON CONFLICT(slug) DO UPDATE SET
		 name = excluded.name, category = excluded.category, equipment = excluded.equipment,
		 muscle_groups = excluded.muscle_groups, image_url = excluded.image_url,
		 import_batch = excluded.import_batch, imported_at = excluded.imported_at`)
	if err != nil {
		return models.ImportLog{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, ex := range exercises {
		if ex.Slug == "" || ex.Name == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			ex.Slug, ex.Name, ex.Category, ex.Equipment,
			joinGroups(ex.MuscleGroups), ex.ImageURL, batch, now,
		); err != nil {
			return models.ImportLog{}, fmt.Errorf("upserting exercise %s: %w", ex.Slug, err)
		}
		count++
	}

	log := models.ImportLog{BatchID: batch, SourceFile: sourceFile, Count: count, ImportedAt: now}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO import_logs (batch_id, source_file, count, imported_at) VALUES (?,?,?,?)`,
		log.BatchID, log.SourceFile, log.Count, log.ImportedAt,
	); err != nil {
		return models.ImportLog{}, fmt.Errorf("inserting import log: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.ImportLog{}, fmt.Errorf("committing import: %w", err)
	}
	return log, nil
}

// Get returns a single catalog exercise by slug.
func (db *DB) Get(ctx context.Context, slug string) (models.DatabaseExercise, error) {
	row := db.sql.QueryRowContext(ctx,
		`SELECT slug, name, category, equipment, muscle_groups, image_url, import_batch, imported_at
		 FROM database_exercises WHERE slug = ?`, slug)
	ex, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DatabaseExercise{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	if err != nil {
		return models.DatabaseExercise{}, fmt.Errorf("querying exercise %s: %w", slug, err)
	}
	return ex, nil
}

// Search returns catalog exercises whose name contains query,
// case-insensitively, in name order.
func (db *DB) Search(ctx context.Context, query string, limit int) ([]models.DatabaseExercise, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.sql.QueryContext(ctx,
		`SELECT slug, name, category, equipment, muscle_groups, image_url, import_batch, imported_at
		 FROM database_exercises
		 WHERE name LIKE ? ESCAPE '\'
		 ORDER BY name
		 LIMIT ?`,
		"%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("searching exercises: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// List returns a page of the catalog in name order.
func (db *DB) List(ctx context.Context, limit, offset int) ([]models.DatabaseExercise, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.sql.QueryContext(ctx,
		`SELECT slug, name, category, equipment, muscle_groups, image_url, import_batch, imported_at
		 FROM database_exercises
		 ORDER BY name
		 LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Count returns the catalog size.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM database_exercises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting exercises: %w", err)
	}
	return n, nil
}

// ImportLogs returns the most recent import log entries.
func (db *DB) ImportLogs(ctx context.Context, limit int) ([]models.ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.sql.QueryContext(ctx,
		`SELECT batch_id, source_file, count, imported_at
		 FROM import_logs ORDER BY imported_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []models.ImportLog
	for rows.Next() {
		var l models.ImportLog
		if err := rows.Scan(&l.BatchID, &l.SourceFile, &l.Count, &l.ImportedAt); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (models.DatabaseExercise, error) {
	var ex models.DatabaseExercise
	var groups string
	if err := row.Scan(&ex.Slug, &ex.Name, &ex.Category, &ex.Equipment,
		&groups, &ex.ImageURL, &ex.ImportBatch, &ex.ImportedAt); err != nil {
		return models.DatabaseExercise{}, err
	}
	ex.MuscleGroups = splitGroups(groups)
	return ex, nil
}

func collect(rows *sql.Rows) ([]models.DatabaseExercise, error) {
	var result []models.DatabaseExercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}

// joinGroups flattens muscle groups into one column; none of the source
// catalogs use commas inside a group name.
func joinGroups(groups []string) string {
	return strings.Join(groups, ",")
}

func splitGroups(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
