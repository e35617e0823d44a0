package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"medvision/config"
	telegram "medvision/internal/api"
	app "medvision/internal/application"
	"medvision/internal/container"
	"medvision/internal/infrastructure/codec"
	"medvision/internal/infrastructure/storage"
	"medvision/internal/infrastructure/vision"
	"medvision/internal/logger"
	"medvision/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}

	renderer, err := vision.NewRenderer(cfg.Renderer)
	if err != nil {
		logger.WithError(err).WithField("renderer", cfg.Renderer).Fatal("Failed to create renderer")
	}

	// Создаём хранилище сессий чатов
	sessionRepo := storage.NewMemorySessionRepository()

	imageCodec := codec.New(cfg.JPEGQuality)
	imageCodec.MaxPixels = cfg.MaxImagePixels

	// Собираем сервисы приложения
	appContainer := container.New(sessionRepo, renderer, imageCodec, app.AnalysisOptions{
		Format: cfg.OutputFormat,
		Seed:   cfg.SegmentationSeed,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	if cfg.HTTPEnabled() {
		server := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: transport.NewHandler(appContainer.AnalysisService, cfg.MaxUploadSize),
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.WithFields(logrus.Fields{
				"address":  cfg.HTTPAddr,
				"renderer": cfg.Renderer,
			}).Info("Starting HTTP server")

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Fatal("Failed to start server")
			}
		}()

		go func() {
			<-ctx.Done()
			logger.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Server forced to shutdown")
			}
		}()
	}

	if cfg.BotEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, cfg.MaxUploadSize)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create bot")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Bot is running...")
			if err := bot.Run(ctx); err != nil {
				logger.WithError(err).Error("Bot error")
			}
		}()
	}

	wg.Wait()
	logger.Info("Stopped")
}
