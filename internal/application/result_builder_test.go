package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"medvision/internal/domain/entity"
)

func TestResultBuilder(t *testing.T) {
	rec := NewResultBuilder(entity.ModeAnomalyDetection).
		Finding("Possible fracture", 87).
		Unscored("Opacity detected").
		Note("a note").
		Recommendation("advice").
		Number("score", 87, "%").
		Text("quality", "Excellent").
		Unavailable("volume", "later").
		Build()

	require.True(t, rec.Implemented)
	require.Equal(t, []entity.Finding{
		{Label: "Possible fracture", Confidence: 87, Scored: true},
		{Label: "Opacity detected"},
	}, rec.Findings)
	require.Equal(t, []string{"a note"}, rec.Notes)
	require.Equal(t, "advice", rec.Recommendation)
	require.Len(t, rec.Metrics, 3)
	require.Equal(t, entity.MetricUnavailable, rec.Metrics[2].Kind)
	require.Equal(t, entity.Disclaimer, rec.Disclaimer)
}

func TestResultBuilderBuildCopies(t *testing.T) {
	b := NewResultBuilder(entity.ModeSegmentation)
	first := b.Build()
	b.NotImplemented()
	require.True(t, first.Implemented)
	require.False(t, b.Build().Implemented)
}
