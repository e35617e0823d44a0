package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"Anomaly Detection": ModeAnomalyDetection,
		"anomaly":           ModeAnomalyDetection,
		"anomaly_detection": ModeAnomalyDetection,
		" Segmentation ":    ModeSegmentation,
		"measurement":       ModeMeasurement,
		"COMPARISON":        ModeComparison,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestParseModeUnknown(t *testing.T) {
	_, err := ParseMode("heatmap")
	var unsupported *UnsupportedModeError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, "heatmap", unsupported.Mode)
}

func TestModeJSON(t *testing.T) {
	data, err := json.Marshal(DefaultAnalysisConfig())
	require.NoError(t, err)
	require.Contains(t, string(data), `"mode":"Anomaly Detection"`)

	var cfg AnalysisConfig
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"segmentation","sensitivity":3}`), &cfg))
	require.Equal(t, ModeSegmentation, cfg.Mode)
	require.Equal(t, 3, cfg.Sensitivity)
}

func TestAnalysisConfigValidate(t *testing.T) {
	require.NoError(t, DefaultAnalysisConfig().Validate())

	cfg := DefaultAnalysisConfig()
	cfg.Sensitivity = 11
	var invalid *InvalidConfigError
	require.True(t, errors.As(cfg.Validate(), &invalid))
	require.Equal(t, "sensitivity", invalid.Field)

	cfg = DefaultAnalysisConfig()
	cfg.Mode = Mode(42)
	var unsupported *UnsupportedModeError
	require.True(t, errors.As(cfg.Validate(), &unsupported))
}
