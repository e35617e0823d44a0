package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
	"medvision/internal/logger"
)

// AnalysisService проводит снимок через весь конвейер:
// декодирование → нормализация → аннотация → обратное преобразование → кодирование.
type AnalysisService struct {
	codec     port.ImageCodec
	renderer  port.Renderer
	annotator *Annotator
	random    func() port.RandomSource
	format    string
}

// AnalysisOptions настройки сервиса анализа.
type AnalysisOptions struct {
	Format string  // jpeg или png
	Seed   *uint64 // фиксированное зерно сегментации, при nil случайное
}

// AnalysisOutput результат анализа и аннотированная картинка.
type AnalysisOutput struct {
	ID        string
	Config    entity.AnalysisConfig
	Result    *entity.ResultRecord
	Annotated *entity.Raster // RGB для показа; у заглушек раскладка входа
	Image     []byte
	Format    string
	Duration  time.Duration
}

// NewAnalysisService создаёт сервис анализа.
func NewAnalysisService(renderer port.Renderer, codec port.ImageCodec, opts AnalysisOptions, annotatorOpts ...AnnotatorOption) *AnalysisService {
	random := NewRandomSource
	if opts.Seed != nil {
		seed := *opts.Seed
		random = func() port.RandomSource { return NewSeededSource(seed) }
	}
	format := opts.Format
	if format == "" {
		format = "jpeg"
	}

	return &AnalysisService{
		codec:     codec,
		renderer:  renderer,
		annotator: NewAnnotator(renderer, annotatorOpts...),
		random:    random,
		format:    format,
	}
}

// Format формат закодированного результата.
func (s *AnalysisService) Format() string {
	return s.format
}

// Accepts сообщает, принимается ли загрузка с таким именем файла.
func (s *AnalysisService) Accepts(filename string) bool {
	return s.codec.Accepts(filename)
}

// AnalyzeImage декодирует загруженный файл и анализирует его.
func (s *AnalysisService) AnalyzeImage(ctx context.Context, data []byte, cfg entity.AnalysisConfig) (*AnalysisOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode upload: %w", err)
	}
	return s.Analyze(ctx, input, cfg)
}

// Analyze анализирует уже декодированный растр. Вход не изменяется.
func (s *AnalysisService) Analyze(ctx context.Context, input *entity.Raster, cfg entity.AnalysisConfig) (*AnalysisOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	id := uuid.NewString()

	working, err := Normalize(input, s.annotator.Order())
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	annotated, result, err := s.annotator.Annotate(working, cfg, s.random())
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	// Заглушки режимов отдают вход без изменений, в его исходной раскладке.
	display := input.Clone()
	if result.Implemented {
		display, err = Denormalize(annotated, entity.DisplayLayout)
		if err != nil {
			return nil, fmt.Errorf("denormalize: %w", err)
		}
	}

	encoded, err := s.codec.Encode(display, s.format)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	duration := time.Since(start)
	logger.WithFields(logrus.Fields{
		"analysis_id": id,
		"mode":        cfg.Mode.String(),
		"width":       input.Width,
		"height":      input.Height,
		"channels":    input.Channels,
		"implemented": result.Implemented,
		"duration_ms": duration.Milliseconds(),
	}).Info("Analysis completed")

	return &AnalysisOutput{
		ID:        id,
		Config:    cfg,
		Result:    result,
		Annotated: display,
		Image:     encoded,
		Format:    s.format,
		Duration:  duration,
	}, nil
}

// Preview возвращает закодированную заставку.
func (s *AnalysisService) Preview(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canvas, err := RenderPlaceholder(s.renderer)
	if err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}
	display, err := Denormalize(canvas, entity.DisplayLayout)
	if err != nil {
		return nil, fmt.Errorf("denormalize: %w", err)
	}
	return s.codec.Encode(display, s.format)
}
