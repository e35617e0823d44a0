package app

import (
	"image"
	"strconv"

	"medvision/internal/domain/entity"
)

// Имена метрик сводки.
const (
	MetricConfidence   = "Anomaly confidence score"
	MetricQuality      = "Image quality"
	MetricProcessing   = "Processing time"
	MetricRegions      = "Regions identified"
	MetricBoundaries   = "Boundary clarity"
	MetricVolume       = "Volume calculation"
	MetricSensitivity  = "Detection sensitivity"
	MetricHeatmap      = "Heatmap"
	MetricMeasurements = "Measurements"
)

const (
	primaryConfidence = 87
	processingSeconds = 2.1
	imageQualityGrade = "Excellent"
	anomalyAdvice     = "Further evaluation recommended"
	secondaryNote     = "additional areas of interest identified"
)

// ReferenceAnomalies эталонный набор из трёх прямоугольников демонстрации.
func ReferenceAnomalies() []entity.Box {
	return []entity.Box{
		{TopLeft: image.Pt(50, 50), BottomRight: image.Pt(200, 200), Label: "Possible fracture", Rank: 0},
		{TopLeft: image.Pt(300, 150), BottomRight: image.Pt(450, 300), Label: "Density irregularity", Rank: 1},
		{TopLeft: image.Pt(180, 300), BottomRight: image.Pt(350, 450), Label: "Opacity detected", Rank: 2},
	}
}

// detectAnomalies рисует прямоугольники с подписями на копии растра.
func (a *Annotator) detectAnomalies(working *entity.Raster) (*entity.Raster, *entity.ResultRecord, error) {
	out := working.Clone()

	regions := make([]entity.Region, 0, len(a.anomalies))
	for _, box := range a.anomalies {
		regions = append(regions, box)
	}
	if err := a.render(out, regions); err != nil {
		return nil, nil, err
	}

	return out, anomalyResult(a.anomalies), nil
}

func anomalyResult(boxes []entity.Box) *entity.ResultRecord {
	b := NewResultBuilder(entity.ModeAnomalyDetection)

	for _, box := range boxes {
		if box.Rank == 0 {
			b.Finding(box.Label, primaryConfidence)
			break
		}
	}
	secondary := 0
	for _, box := range boxes {
		if box.Rank != 0 {
			b.Unscored(box.Label)
			secondary++
		}
	}
	if secondary > 0 {
		b.Note(countWord(secondary) + " " + secondaryNote)
	}

	return b.
		Recommendation(anomalyAdvice).
		Diagnosis("Fracture", 65).
		Diagnosis("Lesion", 42).
		Diagnosis("Normal variant", 23).
		Number(MetricConfidence, primaryConfidence, "%").
		Text(MetricQuality, imageQualityGrade).
		Number(MetricProcessing, processingSeconds, "s").
		Build()
}

func countWord(n int) string {
	words := []string{"No", "One", "Two", "Three", "Four", "Five"}
	if n >= 0 && n < len(words) {
		return words[n]
	}
	return strconv.Itoa(n)
}
