package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/api"
	"github.com/remaimber-it/quizbank/internal/bank"
	"github.com/remaimber-it/quizbank/internal/infrastructure/config"
	"github.com/remaimber-it/quizbank/internal/infrastructure/logger"
	"github.com/remaimber-it/quizbank/internal/infrastructure/metrics"
	"github.com/remaimber-it/quizbank/internal/infrastructure/tracing"
	"github.com/remaimber-it/quizbank/internal/service"
	"github.com/remaimber-it/quizbank/internal/store"

	_ "github.com/remaimber-it/quizbank/docs" // generated swagger docs
)

// @title           Quizbank API
// @version         1.0
// @description     Multiple-choice exam bank: generate balanced exams, score submissions and track study progress per category.

// @host      localhost:8080
// @BasePath  /

func main() {
	loader := config.NewLoader(".")
	cfg, err := loader.Load()
	if err != nil {
		// no logger yet
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	shutdownTracing, err := tracing.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.Open(cfg.Database.Driver, cfg.Database.Path, cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	generator := service.NewExamGenerator(db, cfg.Exam.Policy(), nil, log, m)
	progressSvc := service.NewProgressService(db, log, m)
	if err := progressSvc.SeedAll(context.Background()); err != nil {
		log.Fatal("failed to seed progress", zap.Error(err))
	}

	handler := api.NewHandler(api.Deps{
		Store:     db,
		Generator: generator,
		Recorder:  service.NewExamRecorder(db, cfg.Exam.LookupWorkers, log, m),
		Progress:  progressSvc,
		History:   service.NewHistoryService(db, cfg.Exam.HistoryLimit),
		Loader:    bank.NewLoader(db, log),
		Attempts:  api.NewAttempts(cfg.Exam.PendingTTL),
		Logger:    log,
	})

	watching := loader.Watch(
		func(next *config.Config) {
			if err := generator.SetConfig(next.Exam.Policy()); err != nil {
				log.Warn("exam policy not reloaded", zap.Error(err))
			}
		},
		func(err error) {
			log.Warn("ignoring invalid config change", zap.Error(err))
		},
	)
	log.Info("configuration loaded",
		zap.String("database", cfg.Database.Driver),
		zap.Bool("hot_reload", watching),
	)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", metrics.Handler(reg))

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → Metrics → CORS → RateLimit → mux ─
	middlewares := []api.Middleware{
		api.Logging(log),
		api.Metrics(m),
		api.CORS(cfg.CORS.AllowedOrigins),
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter, err := api.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).
			TrustProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("invalid rate limit settings", zap.Error(err))
		}
		middlewares = append(middlewares, limiter.Middleware())
	}

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.Chain(mux, middlewares...),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Error("failed to flush traces", zap.Error(err))
		}
	}()

	log.Info("starting server", zap.String("address", cfg.ServerAddress))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed to start", zap.Error(err))
	}
	<-idle
}
