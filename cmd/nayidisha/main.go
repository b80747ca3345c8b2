package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/application"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/cache"
	rediscache "github.com/Lokesh-hub-coder/Nayi-Disha/internal/cache/redis"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/catalog"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/config"
	httptransport "github.com/Lokesh-hub-coder/Nayi-Disha/internal/http"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/logging"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence/sqlite"
)

const (
	memoryCacheEntries = 256
	redisKeyPrefix     = "nayidisha:"
	shutdownTimeout    = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWithDotEnv()
	if err != nil {
		logging.New(os.Stdout, slog.LevelInfo).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := logging.New(os.Stdout, level)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, err := sqlite.Open(ctx, sqlite.DefaultConfig(cfg.SQLiteDSN))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := store.Migrate(ctx, logger); err != nil {
		return err
	}

	listCache, err := newJobListCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := listCache.Close(); cerr != nil {
			logger.Error("failed to close cache", "error", cerr)
		}
	}()

	services := newServices(store, listCache, cfg, logger)

	if cfg.CatalogFile != "" {
		if err := importCatalogFile(ctx, cfg.CatalogFile, store, services.jobs, logger); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           newHandler(services, store, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return serve(ctx, server, ln, logger)
}

// serve runs server on ln until ctx is cancelled and returns once in-flight
// requests have drained or shutdownTimeout has passed.
func serve(ctx context.Context, server *http.Server, ln net.Listener, logger *slog.Logger) error {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("nayi disha API listening", "addr", ln.Addr().String())
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	<-drained
	logger.Info("server stopped")
	return nil
}

type services struct {
	accounts *application.AccountService
	auth     *application.AuthService
	jobs     *application.JobService
	profiles *application.ProfileService
}

func newServices(store *sqlite.Store, listCache cache.Cache, cfg config.Config, logger *slog.Logger) services {
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	return services{
		accounts: application.NewAccountServiceWithLogger(newAccountRepositoryAdapter(store.Users), nil, uuid.NewString, now, logger),
		auth:     application.NewAuthServiceWithLogger(newCredentialStoreAdapter(store.Users), newSessionRepositoryAdapter(store.Sessions), nil, tokenGenerator, now, cfg.SessionTTL, logger),
		jobs:     application.NewJobServiceWithLogger(newJobRepositoryAdapter(store.Jobs), newCompanyRepositoryAdapter(store.Companies), listCache, cfg.CacheTTL, logger),
		profiles: application.NewProfileServiceWithLogger(newProfileRepositoryAdapter(store.Profiles), now, logger),
	}
}

func newHandler(svc services, db httptransport.Pinger, cfg config.Config, logger *slog.Logger) http.Handler {
	return httptransport.NewRouter(httptransport.RouterConfig{
		Auth:           httptransport.NewAuthHandler(svc.accounts, svc.auth, cfg.SecureCookies, logger),
		Jobs:           httptransport.NewJobHandler(svc.jobs, logger),
		Profiles:       httptransport.NewProfileHandler(svc.profiles, logger),
		Health:         httptransport.NewHealthHandler(db, logger),
		RequireSession: httptransport.RequireSession(svc.auth, logger),
		AuthLimiter:    httptransport.RateLimit(cfg.SigninRate, logger),
		Middleware:     []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})
}

// newJobListCache returns the Redis cache when a URL is configured and the
// in-process cache otherwise.
func newJobListCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(memoryCacheEntries, time.Now), nil
	}
	c, err := rediscache.New(ctx, cfg.RedisURL, redisKeyPrefix)
	if err != nil {
		return nil, err
	}
	logger.Info("job list cache backed by redis")
	return c, nil
}

func importCatalogFile(ctx context.Context, path string, store *sqlite.Store, jobs *application.JobService, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	cat, err := catalog.Load(f)
	if err != nil {
		return fmt.Errorf("load catalog %s: %w", path, err)
	}

	importer := catalog.NewImporter(catalogTransactor(store), jobs.InvalidateJobs, time.Now, logger)
	if _, err := importer.Import(ctx, cat); err != nil {
		return err
	}
	return nil
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
