package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/hireloop/hireloop/api"
	hldb "github.com/hireloop/hireloop/db"
	"github.com/hireloop/hireloop/internal/config"
	"github.com/hireloop/hireloop/internal/cvparse"
	"github.com/hireloop/hireloop/internal/db"
	"github.com/hireloop/hireloop/internal/interview"
	"github.com/hireloop/hireloop/internal/repository/sqlite"
	"github.com/hireloop/hireloop/internal/tasks"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	log.Printf("Starting hireloop server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection and apply migrations
	conn, err := db.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, conn, hldb.Migrations); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := sqlite.New(conn, logger)
	svc := interview.NewService(repo, repo, repo, repo, repo, logger)

	parser, err := cvparse.New(logger)
	if err != nil {
		log.Fatalf("Failed to init CV parser: %v", err)
	}

	// Background workers
	handlers := tasks.NewHandlers(svc, repo, parser, repo, logger)
	pool := tasks.NewWorkerPool(repo, handlers.Map(), logger, cfg.WorkerCount)
	pool.Start(ctx)

	repos := api.Repos{
		Users:      repo,
		Companies:  repo,
		Candidates: repo,
		Jobs:       repo,
		Interviews: repo,
		Questions:  repo,
		Answers:    repo,
	}
	handler := api.SetupRoutes(cfg, version, buildTime, repos, svc, pool)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Drain workers before closing the database they poll
	pool.Stop()

	if err := conn.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
