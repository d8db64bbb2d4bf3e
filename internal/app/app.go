package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// Run собирает зависимости и держит сервис запущенным до отмены ctx:
// HTTP-сервер с метриками и health-пробами плюс outbox worker,
// публикующий события заказов в Kafka.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	kafkaProducer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		// Сервис продолжает работать без публикации событий: заказы
		// копятся в outbox и уйдут после восстановления брокера.
		logger.WithError(err).Warn("starting without kafka, outbox delivery is paused")
	}
	defer closeKafka(kafkaProducer, logger)

	if kafkaProducer != nil {
		worker := outbox.NewWorker(
			deps.Outbox,
			kafka.NewOutboxPublisher(kafkaProducer, kafka.TopicOrderEvents),
			outbox.WithLogger(log.WithField("component", "outbox-worker")),
			outbox.WithDLQPublisher(kafka.NewOutboxPublisher(kafkaProducer, kafka.TopicDeadLetterQueue)),
			outbox.WithPollInterval(cfg.OutboxPollInterval),
			outbox.WithBatchSize(cfg.OutboxBatchSize),
			outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
			outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
		)
		go worker.Run(ctx)
	}

	healthHandler := healthcheck.NewHandler(version.Current().Version)
	if deps.Store != nil {
		healthHandler.Register("postgres", deps.Store.Ping)
	}

	srv, srvErr := startHTTPServer(cfg.MetricsAddr, logger, healthHandler)

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки")
		shutdownHTTP(srv, logger)
		return ctx.Err()
	case err := <-srvErr:
		return err
	}
}

// newHTTPMux собирает роутинг служебного HTTP-сервера.
func newHTTPMux(healthHandler *healthcheck.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.Readiness)
	mux.HandleFunc("/livez", healthcheck.Liveness)
	return mux
}

// startHTTPServer запускает служебный HTTP-сервер с метриками и health-пробами.
func startHTTPServer(addr string, logger *log.Entry, healthHandler *healthcheck.Handler) (*http.Server, <-chan error) {
	srv := &http.Server{Addr: addr, Handler: newHTTPMux(healthHandler)}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return srv, errCh
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
