package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	RendererSoftware = "software"
	RendererGoCV     = "gocv"

	// HTTPDisabled значение HTTP_ADDR, выключающее HTTP-сервер.
	HTTPDisabled = "off"
)

type Config struct {
	TelegramToken    string
	HTTPAddr         string
	Renderer         string
	OutputFormat     string
	JPEGQuality      int
	MaxUploadSize    int64
	MaxImagePixels   int64
	SegmentationSeed *uint64
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration
}

// BotEnabled сообщает, нужно ли запускать Telegram-бота.
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// HTTPEnabled сообщает, нужно ли поднимать HTTP-сервер.
func (c *Config) HTTPEnabled() bool {
	return c.HTTPAddr != "" && c.HTTPAddr != HTTPDisabled
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		HTTPAddr:      getEnvOrDefault("HTTP_ADDR", ":8080"),
		Renderer:      strings.ToLower(getEnvOrDefault("RENDERER", RendererSoftware)),
		OutputFormat:  strings.ToLower(getEnvOrDefault("OUTPUT_FORMAT", "jpeg")),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.JPEGQuality, err = parseInt("JPEG_QUALITY", 90); err != nil {
		return nil, err
	}
	maxUpload, err := parseInt("MAX_UPLOAD_SIZE", 10*1024*1024)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadSize = int64(maxUpload)
	maxPixels, err := parseInt("MAX_IMAGE_PIXELS", 40_000_000)
	if err != nil {
		return nil, err
	}
	cfg.MaxImagePixels = int64(maxPixels)
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if value := strings.TrimSpace(os.Getenv("SEGMENTATION_SEED")); value != "" {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SEGMENTATION_SEED: %q", value)
		}
		cfg.SegmentationSeed = &seed
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Renderer {
	case RendererSoftware, RendererGoCV:
	default:
		return fmt.Errorf("invalid RENDERER: %q (want software or gocv)", c.Renderer)
	}
	switch c.OutputFormat {
	case "jpeg", "png":
	default:
		return fmt.Errorf("invalid OUTPUT_FORMAT: %q (want jpeg or png)", c.OutputFormat)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be in [1,100] (got %d)", c.JPEGQuality)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0 (got %d)", c.MaxUploadSize)
	}
	if c.MaxImagePixels <= 0 {
		return fmt.Errorf("MAX_IMAGE_PIXELS must be > 0 (got %d)", c.MaxImagePixels)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0 (got %s)", c.ShutdownTimeout)
	}
	if !c.BotEnabled() && !c.HTTPEnabled() {
		return fmt.Errorf("nothing to run: set TELEGRAM_TOKEN or HTTP_ADDR")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return n, nil
}

func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return d, nil
}
