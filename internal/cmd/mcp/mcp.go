// Package mcp wires configuration and dependencies for the MCP server
// command.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/rxlab/internal/match/luaengine"
	"github.com/louisbranch/rxlab/internal/match/native"
	"github.com/louisbranch/rxlab/internal/mcp/service"
	"github.com/louisbranch/rxlab/internal/platform/config"
	"github.com/louisbranch/rxlab/internal/tester"
	"github.com/louisbranch/rxlab/internal/tester/storage"
	"github.com/louisbranch/rxlab/internal/tester/storage/sqlite"
)

// Config holds the MCP command configuration.
type Config struct {
	// DBPath shares the snapshot database with the web server so both
	// surfaces see the same session. Empty keeps the session in memory.
	DBPath string `env:"RXLAB_DB_PATH" envDefault:""`
}

// ParseConfig loads configuration from the environment, with flags
// taking precedence.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "session snapshot database path (empty for in-memory)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP stdio server and blocks until shutdown.
func Run(ctx context.Context, cfg Config) error {
	var store storage.SnapshotStore
	if cfg.DBPath != "" {
		sqliteStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		defer func() {
			if err := sqliteStore.Close(); err != nil {
				log.Printf("close snapshot store: %v", err)
			}
		}()
		store = sqliteStore
	}

	luaEngine := luaengine.New()
	luaEngine.Bootstrap(ctx)
	defer luaEngine.Close()

	session := tester.NewSession(store, log.Default(), native.New(), luaEngine)
	if err := session.Restore(ctx); err != nil {
		log.Printf("restore session: %v", err)
	}
	defer session.Flush()

	server, err := service.New(session)
	if err != nil {
		return fmt.Errorf("init mcp server: %w", err)
	}
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}
