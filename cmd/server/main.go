package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobpulse/internal/application"
	"jobpulse/internal/directory"
	"jobpulse/internal/intake"
	"jobpulse/internal/interaction/handler"
	"jobpulse/internal/interaction/reconcile"
	"jobpulse/internal/interaction/resolver"
	"jobpulse/internal/interaction/service"
	"jobpulse/internal/interaction/store"
	"jobpulse/internal/platform/config"
	"jobpulse/internal/platform/httpserver"
	"jobpulse/internal/platform/kafka/consumer"
	"jobpulse/internal/platform/logger"
	"jobpulse/internal/platform/metrics"
	"jobpulse/internal/platform/postgres"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open database", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	m := metrics.New()

	events := store.NewPostgres(db)
	people := directory.NewPostgresPeople(db)
	organizations := directory.NewPostgresOrganizations(db)
	listings := directory.NewPostgresListings(db)
	media := directory.NewPostgresMedia(db)
	applications := application.NewPostgres(db)

	res := resolver.New(people, organizations, listings, media,
		resolver.WithLogger(log),
		resolver.WithMetrics(m),
	)
	rec := reconcile.New(listings, events, applications,
		reconcile.WithLogger(log),
		reconcile.WithMetrics(m),
	)
	svc := service.New(events, res, listings, rec,
		service.WithLogger(log),
		service.WithMetrics(m),
	)

	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log, cfg.AdminToken).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Intake is optional: without brokers the engine serves reads and
	// company toggles only.
	var intakeConsumer *consumer.Consumer
	if len(cfg.KafkaBrokers) > 0 {
		intakeConsumer, err = consumer.New(cfg.KafkaBrokers, cfg.KafkaGroup, []string{cfg.KafkaTopic}, log)
		if err != nil {
			log.Error("failed to create intake consumer", "error", err.Error())
			os.Exit(1)
		}
		intakeHandler := intake.New(events, log, intake.WithMetrics(m))
		go func() {
			log.Info("intake worker started",
				"topic", cfg.KafkaTopic,
				"group", cfg.KafkaGroup,
			)
			if err := intakeConsumer.Run(ctx, intakeHandler); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("intake worker stopped", "error", err.Error())
			}
		}()
	}

	go func() {
		log.Info("server started", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
	if intakeConsumer != nil {
		intakeConsumer.Close()
	}
}
