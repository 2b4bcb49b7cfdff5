package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uni-assistant/internal/ai"
	"uni-assistant/internal/bot"
	"uni-assistant/internal/config"
	"uni-assistant/internal/content"
	"uni-assistant/internal/health"
	"uni-assistant/internal/logging"
	"uni-assistant/internal/metrics"
	"uni-assistant/internal/repository"
	"uni-assistant/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("uni assistant stopped with error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	holder, err := content.NewHolder(cfg.DataPath, logger.Named("content"))
	if err != nil {
		return err
	}

	store, err := repository.Open(cfg, logger.Named("storage"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close storage", zap.Error(err))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	messenger, err := bot.NewTelegramMessenger(cfg.TelegramToken, logger.Named("telegram"))
	if err != nil {
		return err
	}

	generator, err := ai.NewGemini(ctx, ai.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, free-text chat will reply with an error")
	}

	activity := service.NewActivityService(store, messenger, service.ActivityOptions{
		AdminID:  cfg.AdminID,
		Location: cfg.Location,
		Metrics:  m,
		Logger:   logger.Named("activity"),
	})
	chat := service.NewChatService(generator, cfg.AITimeout, m, logger.Named("chat"))

	uniBot, err := bot.New(bot.Deps{
		Transport: messenger,
		Content:   holder,
		Activity:  activity,
		Chat:      chat,
		AdminID:   cfg.AdminID,
		Location:  cfg.Location,
		Metrics:   m,
		Logger:    logger.Named("bot"),
	})
	if err != nil {
		return err
	}

	if cfg.ReloadInterval > 0 {
		scheduler := service.NewSchedulerService(cfg.Location, logger)
		if _, err := scheduler.ScheduleInterval(cfg.ReloadInterval, func() {
			_, _ = holder.Reload()
		}); err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return health.NewServer(cfg.Port, registry, logger.Named("health")).Run(gctx)
	})
	g.Go(func() error {
		logger.Info("uni assistant started", zap.String("storage", cfg.StorageDriver), zap.Int64("admin_id", cfg.AdminID))
		if err := uniBot.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	return g.Wait()
}
