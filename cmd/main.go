/*
Package main is the entry point for the FitChat messaging service.

It loads configuration, initializes the global logging system, connects to PostgreSQL
(running migrations), wires the message store, directories, conversation aggregator,
and delivery router into the HTTP server, and handles operating system interrupt
signals (SIGINT, SIGTERM) for a graceful shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitchat/internal/app/actor"
	"fitchat/internal/app/conversation"
	"fitchat/internal/app/db"
	"fitchat/internal/app/delivery"
	"fitchat/internal/app/message"
	"fitchat/internal/app/storage"
	"fitchat/internal/configs"
	"fitchat/internal/handler"
	"fitchat/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL and run migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	// Avatar storage
	storageService, err := storage.NewService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize avatar storage")
	}

	// Core components: store, directory, aggregator, live delivery router.
	// The router is built once here and injected everywhere it is needed.
	store := message.NewPGStore(pool)
	directory := actor.NewPGDirectory(pool)
	roster := conversation.NewPGRoster(pool)
	aggregator := conversation.NewAggregator(store, directory, roster)
	search := actor.NewSearch(directory)
	router := delivery.NewRouter()

	deps := &handler.Deps{
		Config:     cfg,
		Store:      store,
		Directory:  directory,
		Aggregator: aggregator,
		Search:     search,
		Router:     router,
		Storage:    storageService,
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("FitChat Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	router.Shutdown()

	logx.Info("Server gracefully stopped.")
}
