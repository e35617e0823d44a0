package entity

import (
	"fmt"
	"strconv"
)

// Disclaimer добавляется к каждому результату.
const Disclaimer = "This is a demonstration only. Always consult with a qualified medical professional for diagnosis."

// Finding находка с процентом уверенности
type Finding struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // 0..100
	Scored     bool    `json:"scored"`     // false, если уверенность не указана
}

// MetricKind тип значения метрики
type MetricKind string

const (
	MetricNumber      MetricKind = "number"
	MetricText        MetricKind = "text"
	MetricUnavailable MetricKind = "unavailable"
)

// Metric именованное значение: число, строка или недоступное значение
type Metric struct {
	Name   string     `json:"name"`
	Kind   MetricKind `json:"kind"`
	Number float64    `json:"number,omitempty"`
	Unit   string     `json:"unit,omitempty"`
	Text   string     `json:"text,omitempty"`
}

// Value форматирует значение для показа.
func (m Metric) Value() string {
	switch m.Kind {
	case MetricNumber:
		v := strconv.FormatFloat(m.Number, 'f', -1, 64)
		if m.Unit == "%" {
			return v + "%"
		}
		if m.Unit != "" {
			return v + " " + m.Unit
		}
		return v
	case MetricUnavailable:
		if m.Text != "" {
			return "unavailable (" + m.Text + ")"
		}
		return "unavailable"
	default:
		return m.Text
	}
}

// ResultRecord итоговая сводка запуска анализа
type ResultRecord struct {
	Mode           Mode      `json:"mode"`
	Implemented    bool      `json:"implemented"`
	Findings       []Finding `json:"findings"`
	Diagnoses      []Finding `json:"diagnoses,omitempty"`
	Notes          []string  `json:"notes,omitempty"`
	Recommendation string    `json:"recommendation"`
	Metrics        []Metric  `json:"metrics"`
	Disclaimer     string    `json:"disclaimer"`
}

// Primary возвращает основную находку, если она есть.
func (r *ResultRecord) Primary() (Finding, bool) {
	if len(r.Findings) == 0 {
		return Finding{}, false
	}
	return r.Findings[0], true
}

// Secondary возвращает находки после основной.
func (r *ResultRecord) Secondary() []Finding {
	if len(r.Findings) < 2 {
		return nil
	}
	return r.Findings[1:]
}

// Metric ищет метрику по имени.
func (r *ResultRecord) Metric(name string) (Metric, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// String короткое описание для логов.
func (r *ResultRecord) String() string {
	p, ok := r.Primary()
	if !ok {
		return fmt.Sprintf("%s: %d findings, implemented=%t", r.Mode, len(r.Findings), r.Implemented)
	}
	return fmt.Sprintf("%s: %s (%.0f%%), %d findings", r.Mode, p.Label, p.Confidence, len(r.Findings))
}
