package transport

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "medvision/internal/application"
	"medvision/internal/domain/entity"
	"medvision/internal/logger"
)

// AnalysisResponse ответ POST /analyze.
type AnalysisResponse struct {
	ID         string                `json:"id"`
	Config     entity.AnalysisConfig `json:"config"`
	Result     *entity.ResultRecord  `json:"result"`
	Image      string                `json:"image"` // base64
	Format     string                `json:"format"`
	DurationMS int64                 `json:"duration_ms"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler собирает HTTP-роуты поверх сервиса анализа.
func NewHandler(analysis *app.AnalysisService, maxUploadSize int64) http.Handler {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		requestLogger(),
		requestSizeLimiter(maxUploadSize),
	)

	r.GET("/health", healthCheck)
	r.GET("/preview", preview(analysis))
	r.POST("/analyze", analyzeImage(analysis, maxUploadSize))

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "available",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func preview(a *app.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := a.Preview(c.Request.Context())
		if err != nil {
			respondError(c, determineStatusCode(err), "failed to render preview", err)
			return
		}
		c.Data(http.StatusOK, contentType(a.Format()), data)
	}
}

func analyzeImage(a *app.AnalysisService, maxUploadSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := parseConfig(c)
		if err != nil {
			respondError(c, determineStatusCode(err), "invalid analysis settings", err)
			return
		}

		header, err := c.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, http.StatusRequestEntityTooLarge, "upload too large",
					fmt.Errorf("limit is %s", humanize.IBytes(uint64(maxUploadSize))))
				return
			}
			respondError(c, http.StatusBadRequest, "multipart field \"image\" is required", err)
			return
		}
		if !a.Accepts(header.Filename) {
			respondError(c, http.StatusUnsupportedMediaType, "unsupported file",
				&entity.UnsupportedFormatError{Format: header.Filename})
			return
		}

		file, err := header.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "cannot read upload", err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, http.StatusBadRequest, "cannot read upload", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"filename": header.Filename,
			"size":     humanize.IBytes(uint64(len(data))),
			"mode":     cfg.Mode.String(),
		}).Debug("Analyzing upload")

		out, err := a.AnalyzeImage(c.Request.Context(), data, cfg)
		if err != nil {
			respondError(c, determineStatusCode(err), "analysis failed", err)
			return
		}

		c.JSON(http.StatusOK, AnalysisResponse{
			ID:         out.ID,
			Config:     out.Config,
			Result:     out.Result,
			Image:      base64.StdEncoding.EncodeToString(out.Image),
			Format:     out.Format,
			DurationMS: out.Duration.Milliseconds(),
		})
	}
}

// parseConfig читает настройки из полей формы, пустые поля берутся по умолчанию.
func parseConfig(c *gin.Context) (entity.AnalysisConfig, error) {
	cfg := entity.DefaultAnalysisConfig()

	if v := c.PostForm("mode"); v != "" {
		mode, err := entity.ParseMode(v)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if v := c.PostForm("sensitivity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, &entity.InvalidConfigError{Field: "sensitivity", Value: v}
		}
		cfg.Sensitivity = n
	}
	if v := c.PostForm("show_heatmap"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, &entity.InvalidConfigError{Field: "show_heatmap", Value: v}
		}
		cfg.ShowHeatmap = b
	}
	if v := c.PostForm("show_measurements"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, &entity.InvalidConfigError{Field: "show_measurements", Value: v}
		}
		cfg.ShowMeasurements = b
	}

	return cfg, cfg.Validate()
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"ip":          c.ClientIP(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Request handled")
	}
}

func determineStatusCode(err error) int {
	var (
		invalidImage *entity.InvalidImageError
		format       *entity.UnsupportedFormatError
		mode         *entity.UnsupportedModeError
		cfg          *entity.InvalidConfigError
	)

	switch {
	case errors.As(err, &invalidImage):
		return http.StatusUnprocessableEntity
	case errors.As(err, &mode), errors.As(err, &cfg):
		return http.StatusBadRequest
	case errors.As(err, &format):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}

func contentType(format string) string {
	if format == "png" {
		return "image/png"
	}
	return "image/jpeg"
}
