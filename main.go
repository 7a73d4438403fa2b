// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "go.uber.org/automaxprocs"

	"github.com/danielhkuo/votio/cliparse"
	"github.com/danielhkuo/votio/db"
	"github.com/danielhkuo/votio/election"
	"github.com/danielhkuo/votio/logging"
	"github.com/danielhkuo/votio/metrics"
	"github.com/danielhkuo/votio/middleware"
	"github.com/danielhkuo/votio/router"
	"github.com/danielhkuo/votio/uploads"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		slog.Error("Error configuring logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if cfg.SecretKey == cliparse.DevSecretKey {
		slog.Warn("Using the development secret key; set SECRET_KEY in production")
	}

	ctx := context.Background()

	// Connect to the database
	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		slog.Error("unsupported database", "error", err)
		os.Exit(1)
	}

	dbConn, err := db.Open(ctx, dialect, cfg.DSN())
	if err != nil {
		slog.Error("database connection failed", "dialect", dialect, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn, dialect); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "dialect", dialect)

	store, err := uploads.Open(ctx, cfg)
	if err != nil {
		slog.Error("upload store unavailable", "error", err)
		os.Exit(1)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := election.New(dbConn, dialect,
		election.WithUploads(store),
		election.WithLogger(logger),
		election.WithMetrics(metrics.New(reg)),
	)

	// Create router
	mux := router.NewRouter(svc, store, cfg, reg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
