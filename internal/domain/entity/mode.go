package entity

import "strings"

// Mode режим анализа изображения
type Mode int

const (
	ModeAnomalyDetection Mode = iota + 1
	ModeSegmentation
	ModeMeasurement
	ModeComparison
)

// Modes перечисляет все объявленные режимы в порядке меню.
var Modes = []Mode{ModeAnomalyDetection, ModeSegmentation, ModeMeasurement, ModeComparison}

var modeNames = map[Mode]string{
	ModeAnomalyDetection: "Anomaly Detection",
	ModeSegmentation:     "Segmentation",
	ModeMeasurement:      "Measurement",
	ModeComparison:       "Comparison",
}

var modeAliases = map[string]Mode{
	"anomaly":           ModeAnomalyDetection,
	"anomalydetection":  ModeAnomalyDetection,
	"anomaly_detection": ModeAnomalyDetection,
	"segmentation":      ModeSegmentation,
	"measurement":       ModeMeasurement,
	"comparison":        ModeComparison,
}

// String возвращает отображаемое имя режима.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Unknown"
}

// Valid сообщает, входит ли режим в перечисление.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode разбирает имя режима: "Anomaly Detection", "anomaly", "segmentation" и т.п.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if m, ok := modeAliases[strings.ReplaceAll(key, " ", "")]; ok {
		return m, nil
	}
	if m, ok := modeAliases[key]; ok {
		return m, nil
	}
	return 0, &UnsupportedModeError{Mode: s}
}

// MarshalText кодирует режим отображаемым именем.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &UnsupportedModeError{Mode: m.String()}
	}
	return []byte(m.String()), nil
}

// UnmarshalText разбирает режим через ParseMode.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
