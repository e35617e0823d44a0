package telegram

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"medvision/internal/domain/entity"
)

func TestFormatReportAnomaly(t *testing.T) {
	rec := &entity.ResultRecord{
		Mode:        entity.ModeAnomalyDetection,
		Implemented: true,
		Findings: []entity.Finding{
			{Label: "Possible fracture", Confidence: 87, Scored: true},
			{Label: "Opacity detected"},
		},
		Diagnoses:      []entity.Finding{{Label: "Fracture", Confidence: 65, Scored: true}},
		Notes:          []string{"Two additional areas of interest identified"},
		Recommendation: "Further evaluation recommended",
		Metrics:        []entity.Metric{{Name: "Processing time", Kind: entity.MetricNumber, Number: 2.1, Unit: "s"}},
		Disclaimer:     entity.Disclaimer,
	}

	text := FormatReport(rec)
	require.Contains(t, text, "Anomaly Detection")
	require.Contains(t, text, "Possible fracture (87%)")
	require.Contains(t, text, "• Opacity detected\n")
	require.Contains(t, text, "Fracture (65%)")
	require.Contains(t, text, "Further evaluation recommended")
	require.Contains(t, text, "Processing time: 2.1 s")
	require.True(t, strings.HasSuffix(text, entity.Disclaimer))
	require.NotContains(t, text, "в разработке")
}

func TestFormatReportNotImplemented(t *testing.T) {
	rec := &entity.ResultRecord{Mode: entity.ModeComparison, Disclaimer: entity.Disclaimer}

	text := FormatReport(rec)
	require.Contains(t, text, "«Comparison» пока в разработке")
	require.NotContains(t, text, "Основная находка")
}

func TestFormatSettings(t *testing.T) {
	cfg := entity.DefaultAnalysisConfig()
	cfg.ShowHeatmap = false

	text := FormatSettings(cfg)
	require.Contains(t, text, "Anomaly Detection")
	require.Contains(t, text, "7 из 10")
	require.Contains(t, text, "Тепловая карта: выкл")
	require.Contains(t, text, "Измерения: вкл")
}

func TestFormatModesMarksCurrent(t *testing.T) {
	text := FormatModes(entity.ModeSegmentation)
	require.Contains(t, text, "▶ 2. Segmentation")
	require.Contains(t, text, "   1. Anomaly Detection")
}

func TestParseModeArg(t *testing.T) {
	m, err := parseModeArg("3")
	require.NoError(t, err)
	require.Equal(t, entity.ModeMeasurement, m)

	m, err = parseModeArg(" segmentation ")
	require.NoError(t, err)
	require.Equal(t, entity.ModeSegmentation, m)

	_, err = parseModeArg("5")
	require.Error(t, err)
	_, err = parseModeArg("heatmap")
	require.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	require.Equal(t, msgUnsupportedFormat, errorMessage(fmt.Errorf("decode: %w", &entity.UnsupportedFormatError{})))
	require.Equal(t, msgInvalidImage, errorMessage(&entity.InvalidImageError{Reason: "empty"}))
	require.Equal(t, msgUnknownMode, errorMessage(&entity.UnsupportedModeError{Mode: "x"}))
	require.Equal(t, msgInvalidSensitivity, errorMessage(&entity.InvalidConfigError{Field: "sensitivity", Value: 0}))
	require.Equal(t, msgProcessingError, errorMessage(errors.New("boom")))
}

func TestUploadLimitMessage(t *testing.T) {
	_, tooLarge := uploadLimitMessage(1024, 1024)
	require.False(t, tooLarge)

	text, tooLarge := uploadLimitMessage(5000, 1024)
	require.True(t, tooLarge)
	require.Equal(t, "⚠️ Файл слишком большой: 4.9 KiB, максимум 1.0 KiB.", text)
}
