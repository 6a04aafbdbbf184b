// server is the Smart Task Management API binary: a task CRUD service
// with aggregate statistics and keyword-driven task title suggestions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"smart-task-api/internal/api"
	"smart-task-api/internal/config"
	"smart-task-api/internal/logging"
	"smart-task-api/internal/storage"
	"smart-task-api/internal/tasks"
)

func main() {
	var addr = flag.String("addr", "", "listen address override (host:port)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.NewLogger(logging.INFO, "text").Fatal("failed to load configuration", "error", err)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)

	if err := run(cfg, logger, *addr); err != nil {
		logger.Fatal("server exited with error", "error", err)
	}
}

func run(cfg *config.Config, logger logging.Logger, addrOverride string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := storage.Open(&cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(ctx, db); err != nil {
		return err
	}

	repository := storage.NewTaskRepository(db)
	service := tasks.NewService(repository, tasks.DefaultServiceConfig())
	suggester := tasks.NewSuggesterWithConfig(repository, tasks.SuggesterConfig{
		TopKeywords:   cfg.Suggestions.TopKeywords,
		MaxPerKeyword: cfg.Suggestions.MaxPerKeyword,
	})

	router := api.NewRouter(cfg, service, suggester, db, logger)

	addr := addrOverride
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", addr,
			"storage_provider", cfg.Storage.Provider,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
