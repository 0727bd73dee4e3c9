package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/ironvault/internal/config"
	"github.com/claude/ironvault/internal/exercisedb"
	"github.com/claude/ironvault/internal/importer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	filePath := flag.String("file", "", "path to exercise database JSON dump (required)")
	dryRun := flag.Bool("dry-run", false, "report counts without writing to the catalog")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: ironvault-import -config config.yaml -file /path/to/exercises.json [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := exercisedb.RunMigrations(cfg.Catalog.Path, cfg.Catalog.MigrationsPath); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the catalog")
	}

	// Open catalog
	db, err := exercisedb.Open(cfg.Catalog.Path)
	if err != nil {
		log.Error("failed to open catalog", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run import
	imp := importer.New(db, log, *dryRun)
	stats, err := imp.ImportFile(context.Background(), *filePath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"entries_read", stats.Read,
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"duplicates", stats.Duplicates,
	)
}
