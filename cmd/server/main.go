package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fieldsense/location-insights/internal/adapter/googleplaces"
	"github.com/fieldsense/location-insights/internal/adapter/httpapi"
	kafkaadapter "github.com/fieldsense/location-insights/internal/adapter/kafka"
	"github.com/fieldsense/location-insights/internal/adapter/predicthq"
	"github.com/fieldsense/location-insights/internal/config"
	"github.com/fieldsense/location-insights/internal/domain"
	"github.com/fieldsense/location-insights/internal/insights"
	"github.com/fieldsense/location-insights/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	places := googleplaces.NewClient(cfg.GoogleMapsAPIKey, cfg.GoogleTimeout, metrics, logger)

	phq := predicthq.NewClient(cfg.PHQToken, cfg.PHQTimeout, metrics, logger)
	var radius domain.RadiusAdvisor = predicthq.NewCachedRadiusAdvisor(phq, cfg.RadiusCacheSize, metrics)

	// Lookup audit trail (feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS).
	var publisher insights.LookupPublisher
	var auditWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		auditWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = auditWriter
		logger.Info("lookup audit enabled", "topic", cfg.KafkaLookupTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("lookup audit disabled")
	}

	service := insights.New(
		places, radius, phq, publisher,
		cfg.PageTitle, cfg.SuggestedRadiusIndustry, cfg.InsightsCacheSize,
		logger, metrics,
	)

	srv := httpapi.NewServer(cfg.HTTPAddr, cfg.CORSOrigins, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.ServiceUp.Set(1)
	defer metrics.ServiceUp.Set(0)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if auditWriter != nil {
		if err := auditWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
