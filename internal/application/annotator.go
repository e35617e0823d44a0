package app

import (
	"fmt"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
)

const (
	defaultRegionCount = 5
	defaultBlendAlpha  = 0.6
)

// Annotator выбирает стратегию по режиму и строит аннотированный растр и сводку.
type Annotator struct {
	renderer    port.Renderer
	anomalies   []entity.Box
	regionCount int
	alpha       float64
}

// AnnotatorOption настраивает Annotator.
type AnnotatorOption func(*Annotator)

// WithAnomalies заменяет эталонный набор прямоугольников.
func WithAnomalies(boxes []entity.Box) AnnotatorOption {
	return func(a *Annotator) {
		a.anomalies = append([]entity.Box(nil), boxes...)
	}
}

// WithRegionCount меняет число областей сегментации.
func WithRegionCount(n int) AnnotatorOption {
	return func(a *Annotator) {
		if n > 0 {
			a.regionCount = n
		}
	}
}

// NewAnnotator создаёт Annotator поверх рендерера.
func NewAnnotator(renderer port.Renderer, opts ...AnnotatorOption) *Annotator {
	a := &Annotator{
		renderer:    renderer,
		anomalies:   ReferenceAnomalies(),
		regionCount: defaultRegionCount,
		alpha:       defaultBlendAlpha,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Order порядок каналов, в который нужно нормализовать вход.
func (a *Annotator) Order() entity.ChannelOrder {
	return a.renderer.Order()
}

// Annotate строит аннотированную копию working. Исходный растр не меняется.
// rnd используется только сегментацией; nil означает случайное зерно.
func (a *Annotator) Annotate(working *entity.Raster, cfg entity.AnalysisConfig, rnd port.RandomSource) (*entity.Raster, *entity.ResultRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := a.checkWorking(working); err != nil {
		return nil, nil, err
	}

	var (
		out *entity.Raster
		rec *entity.ResultRecord
		err error
	)
	switch cfg.Mode {
	case entity.ModeAnomalyDetection:
		out, rec, err = a.detectAnomalies(working)
	case entity.ModeSegmentation:
		if rnd == nil {
			rnd = NewRandomSource()
		}
		out, rec, err = a.segment(working, rnd)
	case entity.ModeMeasurement, entity.ModeComparison:
		out, rec = working.Clone(), notImplemented(cfg.Mode)
	default:
		return nil, nil, &entity.UnsupportedModeError{Mode: cfg.Mode.String()}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", cfg.Mode, err)
	}

	addSettings(rec, cfg)
	return out, rec, nil
}

// render рисует примитивы по порядку: более поздние ложатся поверх ранних.
func (a *Annotator) render(dst *entity.Raster, regions []entity.Region) error {
	for _, region := range regions {
		switch r := region.(type) {
		case entity.Box:
			style := entity.StyleFor(r)
			if err := a.renderer.DrawBox(dst, r, style); err != nil {
				return fmt.Errorf("draw box %q: %w", r.Label, err)
			}
			if err := a.renderer.DrawLabel(dst, r.Label, r.LabelAnchor(), style); err != nil {
				return fmt.Errorf("draw label %q: %w", r.Label, err)
			}
		case entity.Blob:
			if err := a.renderer.FillBlob(dst, r); err != nil {
				return fmt.Errorf("fill blob at %v: %w", r.Center, err)
			}
		default:
			return fmt.Errorf("unknown region %T", region)
		}
	}
	return nil
}

func (a *Annotator) checkWorking(w *entity.Raster) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.Order != a.renderer.Order() {
		return &entity.InvalidImageError{
			Reason:   "raster is not normalized: expected " + a.renderer.Order().String() + " order, got " + w.Order.String(),
			Width:    w.Width,
			Height:   w.Height,
			Channels: w.Channels,
		}
	}
	return nil
}

func notImplemented(mode entity.Mode) *entity.ResultRecord {
	return NewResultBuilder(mode).
		NotImplemented().
		Note(mode.String() + " is not implemented in this demo").
		Recommendation("Select Anomaly Detection or Segmentation to see annotated results").
		Build()
}

// addSettings добавляет в сводку параметры запуска.
func addSettings(rec *entity.ResultRecord, cfg entity.AnalysisConfig) {
	rec.Metrics = append(rec.Metrics,
		entity.Metric{Name: MetricSensitivity, Kind: entity.MetricNumber, Number: float64(cfg.Sensitivity)},
		entity.Metric{Name: MetricHeatmap, Kind: entity.MetricText, Text: onOff(cfg.ShowHeatmap)},
		entity.Metric{Name: MetricMeasurements, Kind: entity.MetricText, Text: onOff(cfg.ShowMeasurements)},
	)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
