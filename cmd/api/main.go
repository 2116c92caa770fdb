package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"receiptpoints/internal/config"
	appHttp "receiptpoints/internal/http"
	receiptsHandler "receiptpoints/internal/http/receipts"
	"receiptpoints/internal/logging"
	"receiptpoints/internal/receipt"
	"receiptpoints/internal/receipt/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg)

	repo, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open receipt store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	receiptService := receipt.NewService(repo)
	receiptsH := receiptsHandler.NewHandler(receiptService)

	router := appHttp.New(receiptsH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// openStore picks the configured backend: Postgres when DB_HOST is set,
// otherwise the embedded file store at DB_PATH.
func openStore(cfg *config.Config) (receipt.Repository, func() error, error) {
	if cfg.UsePostgres() {
		pg, err := store.OpenPostgres(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		if err := pg.Init(context.Background()); err != nil {
			pg.Close()
			return nil, nil, err
		}

		slog.Info("using postgres receipt store", "host", cfg.DB.Host, "database", cfg.DB.Name)

		return pg, pg.Close, nil
	}

	bunt, err := store.OpenBunt(cfg.DB.Path)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("using embedded receipt store", "path", cfg.DB.Path)

	return bunt, bunt.Close, nil
}
