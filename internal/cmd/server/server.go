// Package server wires configuration and dependencies for the web
// service command.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/rxlab/internal/match/luaengine"
	"github.com/louisbranch/rxlab/internal/match/native"
	"github.com/louisbranch/rxlab/internal/platform/config"
	"github.com/louisbranch/rxlab/internal/platform/otel"
	"github.com/louisbranch/rxlab/internal/platform/timeouts"
	"github.com/louisbranch/rxlab/internal/services/web"
	"github.com/louisbranch/rxlab/internal/tester"
	"github.com/louisbranch/rxlab/internal/tester/storage/sqlite"
)

// Config holds the server command configuration.
type Config struct {
	HTTPAddr string `env:"RXLAB_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath   string `env:"RXLAB_DB_PATH" envDefault:"rxlab.db"`
}

// ParseConfig loads configuration from the environment, with flags
// taking precedence.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "session snapshot database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web service and blocks until shutdown.
func Run(ctx context.Context, cfg Config) error {
	shutdownOtel, err := otel.Setup(ctx, "rxlab-server")
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdownOtel(shutdownCtx); err != nil {
			log.Printf("shutdown telemetry: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close snapshot store: %v", err)
		}
	}()

	luaEngine := luaengine.New()
	luaEngine.Bootstrap(ctx)
	defer luaEngine.Close()

	session := tester.NewSession(store, log.Default(), native.New(), luaEngine)
	if err := session.Restore(ctx); err != nil {
		// A missing or unreadable snapshot never blocks startup.
		log.Printf("restore session: %v", err)
	}
	defer session.Flush()

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Session:  session,
		Logger:   log.Default(),
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	log.Printf("serving on http://%s", cfg.HTTPAddr)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
