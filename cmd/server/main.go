// Command moviedesk starts the movie catalog REST API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelines/moviedesk/internal/config"
	"github.com/avelines/moviedesk/internal/limiter"
	"github.com/avelines/moviedesk/internal/migrate"
	"github.com/avelines/moviedesk/internal/repository/postgres"
	httpserver "github.com/avelines/moviedesk/internal/server/http"
	"github.com/avelines/moviedesk/internal/service"
	"github.com/avelines/moviedesk/internal/session"
	"github.com/avelines/moviedesk/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves the HTTP API until
// a termination signal arrives.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.ListenAddr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DSN()
	if err := migrate.Up(ctx, dsn); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	db := &postgres.DB{Pool: pool}
	accountRepo := postgres.NewAccountRepo(db)
	movieRepo := postgres.NewMovieRepo(db)
	userRepo := postgres.NewUserRepo(db)

	lim := limiter.NewPG(pool, 15*time.Minute, 5, 15*time.Minute)

	// Services
	issuer := token.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTTTL)
	authSvc := service.NewAuthService(accountRepo, issuer, cfg.BcryptCost, lim)
	movieSvc := service.NewMovieService(movieRepo)
	userSvc := service.NewUserService(userRepo)

	sessions := session.NewStore([]byte(cfg.SessionSecret), cfg.SessionTTL)

	app := httpserver.New(httpserver.Config{
		Auth:       authSvc,
		Movies:     movieSvc,
		Users:      userSvc,
		Sessions:   sessions,
		Issuer:     issuer,
		DB:         db,
		Log:        logger,
		CookieName: cfg.SessionCookie,
		CookieTTL:  cfg.SessionTTL,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
