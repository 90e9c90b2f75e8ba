// @title Downtime Sidecar API
// @version 1.0
// @description Управляющий API для failover-сервиса основного бота
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/strbit/downtime/internal/bot"
	"github.com/strbit/downtime/internal/config"
	"github.com/strbit/downtime/internal/downtime"
	"github.com/strbit/downtime/internal/http-server/handlers/report"
	"github.com/strbit/downtime/internal/http-server/handlers/status"
	"github.com/strbit/downtime/internal/http-server/middleware/boundary"
	"github.com/strbit/downtime/internal/lib/logger/sl"
	"github.com/strbit/downtime/internal/lib/logger/slogpretty"
	"github.com/strbit/downtime/internal/locale"
	"github.com/strbit/downtime/internal/storage/mongodb"

	_ "github.com/strbit/downtime/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	local = "local"
	dev   = "dev"
	prod  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("init config and start app",
		slog.String("env", cfg.Env),
		slog.Bool("forced_downtime", cfg.Forced),
		slog.Duration("downtime_delay", cfg.Delay),
	)

	ctx := context.Background()

	storage, err := mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	locales, err := locale.New()
	if err != nil {
		log.Error("failed to load locales", sl.Err(err))
		os.Exit(1)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Error("failed to init bot api", sl.Err(err))
		os.Exit(1)
	}

	b := bot.New(log, api, storage, locales, cfg.SupportContact)

	controller := downtime.New(log, downtime.Config{
		Forced:       cfg.Forced,
		Delay:        cfg.Delay,
		OnCallChatID: cfg.OnCallChatID,
		DashboardURL: cfg.DashboardURL(),
	}, b, b)

	go b.Start(ctx)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(boundary.New(log))

	router.Use(corsConfig(cfg.Env))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/downtime", report.New(log, controller))
	router.Get("/downtime", status.New(log, controller))

	log.Info("starting server", slog.String("address", cfg.Address()))

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed to start server", sl.Err(err))
	}

	log.Error("server stopped")
}

func corsConfig(env string) func(next http.Handler) http.Handler {
	switch env {
	case local:
		return cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost", "http://127.0.0.1"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		})
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case local:
		log = setupPrettySlog()
	case dev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case prod:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
