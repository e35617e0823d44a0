package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"TELEGRAM_TOKEN", "HTTP_ADDR", "RENDERER", "OUTPUT_FORMAT", "JPEG_QUALITY",
	"MAX_UPLOAD_SIZE", "MAX_IMAGE_PIXELS", "SEGMENTATION_SEED", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.True(t, cfg.HTTPEnabled())
	require.False(t, cfg.BotEnabled())
	require.Equal(t, RendererSoftware, cfg.Renderer)
	require.Equal(t, "jpeg", cfg.OutputFormat)
	require.Equal(t, 90, cfg.JPEGQuality)
	require.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	require.Equal(t, int64(40_000_000), cfg.MaxImagePixels)
	require.Nil(t, cfg.SegmentationSeed)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("HTTP_ADDR", "off")
	t.Setenv("RENDERER", "GoCV")
	t.Setenv("OUTPUT_FORMAT", "png")
	t.Setenv("SEGMENTATION_SEED", "42")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.BotEnabled())
	require.False(t, cfg.HTTPEnabled())
	require.Equal(t, RendererGoCV, cfg.Renderer)
	require.Equal(t, "png", cfg.OutputFormat)
	require.NotNil(t, cfg.SegmentationSeed)
	require.Equal(t, uint64(42), *cfg.SegmentationSeed)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"renderer":      {"RENDERER", "cairo"},
		"format":        {"OUTPUT_FORMAT", "gif"},
		"quality":       {"JPEG_QUALITY", "101"},
		"quality text":  {"JPEG_QUALITY", "high"},
		"upload size":   {"MAX_UPLOAD_SIZE", "0"},
		"pixels":        {"MAX_IMAGE_PIXELS", "-5"},
		"seed":          {"SEGMENTATION_SEED", "-1"},
		"timeout":       {"SHUTDOWN_TIMEOUT", "soon"},
		"nothing to do": {"HTTP_ADDR", "off"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			require.Error(t, err)
		})
	}
}
