package app

import "medvision/internal/domain/entity"

// ResultBuilder собирает ResultRecord из уже посчитанных значений.
type ResultBuilder struct {
	rec entity.ResultRecord
}

// NewResultBuilder начинает запись для режима.
func NewResultBuilder(mode entity.Mode) *ResultBuilder {
	return &ResultBuilder{rec: entity.ResultRecord{
		Mode:        mode,
		Implemented: true,
		Findings:    []entity.Finding{},
		Metrics:     []entity.Metric{},
		Disclaimer:  entity.Disclaimer,
	}}
}

func (b *ResultBuilder) Finding(label string, confidence float64) *ResultBuilder {
	b.rec.Findings = append(b.rec.Findings, entity.Finding{Label: label, Confidence: confidence, Scored: true})
	return b
}

// Unscored добавляет находку без процента уверенности.
func (b *ResultBuilder) Unscored(label string) *ResultBuilder {
	b.rec.Findings = append(b.rec.Findings, entity.Finding{Label: label})
	return b
}

func (b *ResultBuilder) Diagnosis(label string, probability float64) *ResultBuilder {
	b.rec.Diagnoses = append(b.rec.Diagnoses, entity.Finding{Label: label, Confidence: probability, Scored: true})
	return b
}

func (b *ResultBuilder) Note(note string) *ResultBuilder {
	b.rec.Notes = append(b.rec.Notes, note)
	return b
}

func (b *ResultBuilder) Recommendation(text string) *ResultBuilder {
	b.rec.Recommendation = text
	return b
}

func (b *ResultBuilder) Number(name string, value float64, unit string) *ResultBuilder {
	b.rec.Metrics = append(b.rec.Metrics, entity.Metric{Name: name, Kind: entity.MetricNumber, Number: value, Unit: unit})
	return b
}

func (b *ResultBuilder) Text(name, value string) *ResultBuilder {
	b.rec.Metrics = append(b.rec.Metrics, entity.Metric{Name: name, Kind: entity.MetricText, Text: value})
	return b
}

// Unavailable добавляет метрику, значение которой пока не вычисляется.
func (b *ResultBuilder) Unavailable(name, note string) *ResultBuilder {
	b.rec.Metrics = append(b.rec.Metrics, entity.Metric{Name: name, Kind: entity.MetricUnavailable, Text: note})
	return b
}

// NotImplemented помечает запись как заглушку режима.
func (b *ResultBuilder) NotImplemented() *ResultBuilder {
	b.rec.Implemented = false
	return b
}

// Build возвращает собранную запись.
func (b *ResultBuilder) Build() *entity.ResultRecord {
	rec := b.rec
	return &rec
}
