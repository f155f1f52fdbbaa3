// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/davidmendez/portfolio/internal/auth"
	"github.com/davidmendez/portfolio/internal/config"
	"github.com/davidmendez/portfolio/internal/content"
	"github.com/davidmendez/portfolio/internal/flags"
	"github.com/davidmendez/portfolio/internal/handler"
	"github.com/davidmendez/portfolio/internal/kv"
	"github.com/davidmendez/portfolio/internal/logging"
	"github.com/davidmendez/portfolio/internal/middleware"
	"github.com/davidmendez/portfolio/internal/scheduler"
	"github.com/davidmendez/portfolio/internal/session"
	"github.com/davidmendez/portfolio/internal/store"
	"github.com/davidmendez/portfolio/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portfolio - personal portfolio server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ADMIN_EMAIL         Admin email allowed to edit content (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_PATH             SQLite database path (default: ./data/portfolio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_KV_URL              Redis URL for content overrides (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SNAPSHOT_PATH       Case-study snapshot JSON (default: ./data/case-studies.json)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_UNDER_CONSTRUCTION  Force the under-construction gate (true|1|enabled)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("portfolio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(baseHandler))

	// Database
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	if cfg.DoSeed {
		if err := store.Seed(context.Background(), db, false); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Upgrade logging: WARN and above also land in the events table.
	logger := slog.New(logging.NewEventLogHandler(baseHandler, db))
	slog.SetDefault(logger)

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
	logger.Info("starting portfolio", "version", versionInfo.String(), "env", cfg.Env)

	// Static snapshot
	snapshot, err := content.LoadSnapshot(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	logger.Info("loaded case-study snapshot", "path", cfg.SnapshotPath, "count", snapshot.Len())

	// KV namespace for overrides and the feature flag
	var ns *kv.Namespace
	switch {
	case cfg.UseRedisKV():
		redisStore, err := kv.NewRedisStoreFromURL(cfg.KVURL, cfg.KVPrefix)
		if err != nil {
			return fmt.Errorf("connecting to KV store: %w", err)
		}
		ns = kv.NewNamespace(redisStore)
		logger.Info("using redis KV store", "prefix", cfg.KVPrefix)
	case cfg.KVMemory:
		ns = kv.NewNamespace(kv.NewMemoryStore(time.Minute))
		logger.Info("using in-memory KV store")
	default:
		ns = kv.NewNamespace(nil)
		logger.Warn("KV store unconfigured: overrides read as absent and writes are not persisted")
	}
	defer func() { _ = ns.Close() }()

	// Sessions
	sessionManager := session.New(db, cfg.IsDevelopment())
	sessions := session.NewManager(sessionManager)

	// Auth. The Google verifier is built lazily on the first token
	// verification; concurrent first requests share one build.
	authenticator := auth.New(auth.Options{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL,
		AdminEmail:   cfg.AdminEmail,
		VerifierFactory: func(context.Context) (auth.Verifier, error) {
			return auth.NewGoogleVerifier(), nil
		},
		Sessions: sessions,
	})

	// Services
	overrides := content.NewOverrideService(ns, time.Duration(cfg.OverrideCacheTTL)*time.Second, logger)
	flagSvc := flags.NewService(ns, cfg.UnderConstructionForced(), time.Duration(cfg.OverrideCacheTTL)*time.Second, logger)

	// Handlers
	apiHandler := handler.NewAPIHandler(authenticator, overrides, flagSvc, logger)
	authHandler := handler.NewAuthHandler(authenticator, cfg.IsDevelopment(), logger)
	healthHandler := handler.NewHealthHandler(db, ns, versionInfo)
	frontend, err := handler.NewFrontendHandler(snapshot, overrides, sessions, logger)
	if err != nil {
		return fmt.Errorf("creating frontend handler: %w", err)
	}

	// Background jobs
	sched := scheduler.New(flagSvc, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)

	writeLimiter := middleware.NewGlobalRateLimiter(5, 10)

	r.Route("/api", func(r chi.Router) {
		r.Get("/case-studies/read", apiHandler.ReadCaseStudy)
		r.Get("/under-construction/read", apiHandler.ReadFlag)

		r.Group(func(r chi.Router) {
			r.Use(writeLimiter.Middleware())
			r.Post("/case-studies/update", apiHandler.UpdateCaseStudy)
			r.Post("/content/update", apiHandler.UpdateContent)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", authHandler.Login)
		r.Get("/callback", authHandler.Callback)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)
	})

	r.Get("/healthz", healthHandler.Health)

	// Pages sit behind the under-construction gate; API and auth routes
	// above stay reachable while it is up.
	r.Group(func(r chi.Router) {
		r.Use(middleware.UnderConstructionGate(flagSvc, sessions, http.HandlerFunc(frontend.UnderConstruction)))
		r.Get("/", frontend.Home)
		r.Get("/case-studies/{slug}", frontend.CaseStudy)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
