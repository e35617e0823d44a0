package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, Configure("info", "json"))
	})

	require.NoError(t, Configure("debug", "text"))
	require.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, Logger.Formatter)

	require.Error(t, Configure("loud", "json"))
	require.Error(t, Configure("info", "xml"))
}

func TestHelpersWriteStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	t.Cleanup(func() { Logger.SetOutput(os.Stdout) })
	require.NoError(t, Configure("info", "json"))

	WithFields(logrus.Fields{"mode": "Segmentation"}).WithField("width", 600).Info("Analysis completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "Analysis completed", entry["msg"])
	require.Equal(t, "Segmentation", entry["mode"])
	require.Equal(t, float64(600), entry["width"])
}
