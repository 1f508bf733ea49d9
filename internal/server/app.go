// Package server wires configuration, storage, services and transports into
// a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/logging"
	"github.com/dmitrijs2005/pitchpoa/internal/server/config"
	"github.com/dmitrijs2005/pitchpoa/internal/server/gemini"
	"github.com/dmitrijs2005/pitchpoa/internal/server/metrics"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pitchpoa/internal/server/rest"
	"github.com/dmitrijs2005/pitchpoa/internal/server/services"
	"github.com/dmitrijs2005/pitchpoa/internal/server/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	gs "github.com/dmitrijs2005/pitchpoa/internal/server/grpc"
)

const healthCheckInterval = 15 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sqlx.DB
	deps   *rest.Deps
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	db, err := sqlx.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	um := repomanager.NewPostgresRepositoryManager()
	if err := um.RunMigrations(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	gen := gemini.NewClient(gemini.Config{
		APIKey:  c.GeminiAPIKey,
		Model:   c.GeminiModel,
		BaseURL: c.GeminiBaseURL,
		Timeout: c.GeminiTimeout,
	})
	if c.GeminiAPIKey == "" {
		logger.Warn(ctx, "GEMINI_API_KEY is not set, AI endpoints will fail")
	}

	var recordings services.RecordingStore
	if c.StorageEnabled() {
		s3, err := storage.NewS3Store(ctx, storage.Options{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("object storage init error: %w", err)
		}
		recordings = s3
	} else {
		logger.Info(ctx, "Object storage disabled, pitch recordings are not kept")
	}

	met := metrics.New()

	deps := &rest.Deps{
		Users:     services.NewUserService(db, um, c),
		Inventory: services.NewInventoryService(db, um),
		Suppliers: services.NewSupplierService(db, um),
		Customers: services.NewCustomerService(db, um),
		Sales:     services.NewSaleService(db, um),
		Expenses:  services.NewExpenseService(db, um),
		Insights:  services.NewInsightService(db, um, gen, met),
		Pitches: services.NewPitchService(db, um, gen, met,
			services.SimulatedTranscriber{}, recordings, logger),
		Reports: services.NewReportService(db, um),

		DB:      db,
		Metrics: met,
		Logger:  logger,

		JWTSecret:      []byte(c.SecretKey),
		CORSOrigins:    c.CORSOrigins,
		MaxUploadBytes: c.MaxUploadBytes,
	}

	return &App{config: c, logger: logger, db: db, deps: deps}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.HTTPAddr, rest.NewRouter(app.deps), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCHealthAddr, app.logger, app.db, healthCheckInterval)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCHealthAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
