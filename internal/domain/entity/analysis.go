package entity

import "strconv"

const (
	MinSensitivity     = 1
	MaxSensitivity     = 10
	DefaultSensitivity = 7
)

// AnalysisConfig параметры одного запуска анализа
type AnalysisConfig struct {
	Mode             Mode `json:"mode"`
	Sensitivity      int  `json:"sensitivity"`
	ShowHeatmap      bool `json:"show_heatmap"`
	ShowMeasurements bool `json:"show_measurements"`
}

// DefaultAnalysisConfig значения по умолчанию панели настроек.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Mode:             ModeAnomalyDetection,
		Sensitivity:      DefaultSensitivity,
		ShowHeatmap:      true,
		ShowMeasurements: true,
	}
}

// Validate проверяет режим и чувствительность.
func (c AnalysisConfig) Validate() error {
	if !c.Mode.Valid() {
		return &UnsupportedModeError{Mode: strconv.Itoa(int(c.Mode))}
	}
	if c.Sensitivity < MinSensitivity || c.Sensitivity > MaxSensitivity {
		return &InvalidConfigError{Field: "sensitivity", Value: c.Sensitivity}
	}
	return nil
}
