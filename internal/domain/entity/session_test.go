package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession_DefaultState(t *testing.T) {
	s := NewSession(1, 10)
	require.Equal(t, StateMainMenu, s.State)
	require.Equal(t, int64(1), s.UserID)
	require.Equal(t, int64(10), s.ChatID)
	require.Equal(t, DefaultAnalysisConfig(), s.Config)
}

func TestMetricValue(t *testing.T) {
	require.Equal(t, "87%", Metric{Kind: MetricNumber, Number: 87, Unit: "%"}.Value())
	require.Equal(t, "2.1 s", Metric{Kind: MetricNumber, Number: 2.1, Unit: "s"}.Value())
	require.Equal(t, "Excellent", Metric{Kind: MetricText, Text: "Excellent"}.Value())
	require.Equal(t, "unavailable (upon request)", Metric{Kind: MetricUnavailable, Text: "upon request"}.Value())
}
