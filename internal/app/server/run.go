// Package server wires configuration, stores, the protocol engine, and the
// web host into one serving process.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	invsqlite "github.com/louisbranch/stockroom/internal/inventory/storage/sqlite"
	"github.com/louisbranch/stockroom/internal/platform/config"
	"github.com/louisbranch/stockroom/internal/platform/otel"
	"github.com/louisbranch/stockroom/internal/services/mcp/service"
	"github.com/louisbranch/stockroom/internal/services/web"
	websqlite "github.com/louisbranch/stockroom/internal/services/web/storage/sqlite"
)

const serviceName = "stockroom"

// Config holds server command configuration.
type Config struct {
	Addr          string `env:"STOCKROOM_ADDR" envDefault:":8080"`
	InventoryPath string `env:"STOCKROOM_INVENTORY_DB" envDefault:"stockroom.db"`
	WebPath       string `env:"STOCKROOM_WEB_DB" envDefault:"stockroom-web.db"`
	JWTSecret     string `env:"STOCKROOM_JWT_SECRET"`
}

// ParseConfig parses environment and flags into Config. Flags override
// environment values.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.InventoryPath, "inventory-db", cfg.InventoryPath, "Path to the inventory SQLite database")
	fs.StringVar(&cfg.WebPath, "web-db", cfg.WebPath, "Path to the web host SQLite database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the stores, builds the protocol endpoint, and serves until the
// context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("Failed to flush traces: %v", err)
		}
	}()

	inventoryStore, err := invsqlite.Open(cfg.InventoryPath)
	if err != nil {
		return fmt.Errorf("open inventory store: %w", err)
	}
	defer func() {
		if err := inventoryStore.Close(); err != nil {
			log.Printf("Failed to close inventory store: %v", err)
		}
	}()

	webStore, err := websqlite.Open(cfg.WebPath)
	if err != nil {
		return fmt.Errorf("open web store: %w", err)
	}
	defer func() {
		if err := webStore.Close(); err != nil {
			log.Printf("Failed to close web store: %v", err)
		}
	}()

	mcpServer, err := service.NewServer(inventoryStore)
	if err != nil {
		return fmt.Errorf("build mcp server: %w", err)
	}
	mcpHandler := service.NewHandler(service.NewEngine(mcpServer), web.NewPluginSettings(webStore))
	webServer := web.NewServer(webStore, mcpHandler, []byte(cfg.JWTSecret))

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           webServer,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving on %s", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
