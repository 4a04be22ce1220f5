// Package server initializes and runs the main application server.
// It opens the database pool, wires the services and the HTTP API, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/brunononogaki/meubonsai-app-v2/internal/logging"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/api"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/config"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/email"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/password"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/repomanager"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	router *gin.Engine
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	hasher := password.NewHasher(cfg.BcryptCost)
	sender := email.NewSMTPSender(cfg.SMTPAddr, cfg.SMTPUser, cfg.SMTPPassword)

	users := services.NewUserService(db, rm, hasher)
	activations := services.NewActivationService(db, rm, sender, logger,
		cfg.EmailFrom, cfg.WebserverOrigin, cfg.ActivationTokenValidityDuration)
	sessions := services.NewSessionService(db, rm, cfg.SessionValidityDuration)
	auth := services.NewAuthenticationService(db, rm, hasher)
	status := services.NewStatusService(db)
	migrator := services.NewMigratorService(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	h := api.NewHandler(users, activations, sessions, auth, status, migrator,
		logger, cfg.IsProduction())

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		router: api.NewRouter(h),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until the context is cancelled or an OS signal
// arrives, then drains in-flight requests before returning.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.HTTPAddr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.HTTPAddr,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "server failed", "error", err)
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
		<-errCh
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
