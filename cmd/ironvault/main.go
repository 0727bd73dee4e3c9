package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/tsnet"

	"github.com/claude/ironvault/internal/config"
	"github.com/claude/ironvault/internal/exercisedb"
	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/records"
	"github.com/claude/ironvault/internal/server"
	"github.com/claude/ironvault/internal/session"
	"github.com/claude/ironvault/internal/vault"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("IronVault starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run catalog migrations
	if err := exercisedb.RunMigrations(cfg.Catalog.Path, cfg.Catalog.MigrationsPath); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Open catalog
	catalog, err := exercisedb.Open(cfg.Catalog.Path)
	if err != nil {
		log.Error("failed to open catalog", "error", err)
		os.Exit(1)
	}
	defer catalog.Close()
	log.Info("catalog opened", "path", cfg.Catalog.Path)

	// Open vault
	store, err := vault.OpenDir(cfg.Vault.Path)
	if err != nil {
		log.Error("failed to open vault", "error", err)
		os.Exit(1)
	}
	log.Info("vault opened", "path", cfg.Vault.Path)

	// Session engine; pick up a session left running by a previous process
	engine := session.NewEngine(store, log)
	adoptUnfinished(engine, records.NewSessionRepo(store), log)

	// Create server
	srv := server.New(store, catalog, engine, cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)
	engine.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// adoptUnfinished hands the most recent non-terminal session back to the
// engine so a crash or restart does not strand it.
func adoptUnfinished(engine *session.Engine, sessions *records.SessionRepo, log *slog.Logger) {
	for _, status := range []models.SessionStatus{models.StatusActive, models.StatusPaused} {
		open := sessions.ListByStatus(status)
		if len(open) == 0 {
			continue
		}
		s := open[len(open)-1]
		if err := engine.Adopt(s); err != nil {
			log.Warn("could not adopt unfinished session", "id", s.ID, "error", err)
			continue
		}
		log.Info("adopted unfinished session", "id", s.ID, "status", s.Status)
		return
	}
}
