package main

import (
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/ironvault/internal/config"
	"github.com/claude/ironvault/internal/exercisedb"
	"github.com/claude/ironvault/internal/mcp"
	"github.com/claude/ironvault/internal/vault"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// ironvault-mcp speaks MCP over stdio. With -server it proxies a running
// IronVault instance over its REST API; otherwise it opens the vault and
// catalog from the config file directly.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	serverURL := flag.String("server", "", "IronVault server URL (remote mode, e.g. https://ironvault.tail1234.ts.net)")
	flag.Parse()

	// Logs go to stderr; stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *serverURL != "" {
		ds = mcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		store, err := vault.OpenDir(cfg.Vault.Path)
		if err != nil {
			log.Error("failed to open vault", "error", err)
			os.Exit(1)
		}

		var catalog *exercisedb.DB
		if _, err := os.Stat(cfg.Catalog.Path); err == nil {
			catalog, err = exercisedb.Open(cfg.Catalog.Path)
			if err != nil {
				log.Error("failed to open catalog", "error", err)
				os.Exit(1)
			}
			defer catalog.Close()
		} else {
			log.Warn("catalog database not found, catalog search disabled", "path", cfg.Catalog.Path)
		}

		ds = mcp.NewLocalSource(store, catalog)
		log.Info("local mode", "vault", cfg.Vault.Path)
	}

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
