package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(readLogLevel())
}

// readLogLevel читает уровень логирования из STOREFRONT_LOG_LEVEL,
// по умолчанию info.
func readLogLevel() log.Level {
	raw := strings.TrimSpace(os.Getenv("STOREFRONT_LOG_LEVEL"))
	if raw == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func main() {
	setupLogger()

	cfg, err := app.LoadConfigFromEnv()
	if err != nil {
		log.WithError(err).Fatal("некорректная конфигурация")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"build":          version.Current().String(),
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_enabled":  cfg.KafkaBrokers != "",
	}).Info("запускаем checkout-сервис")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("checkout-сервис остановлен")
}
