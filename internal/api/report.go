package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"medvision/internal/domain/entity"
)

// FormatReport превращает результат анализа в текст сообщения.
func FormatReport(rec *entity.ResultRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🔬 Режим: %s\n", rec.Mode)

	if !rec.Implemented {
		fmt.Fprintf(&sb, "\nℹ️ Режим «%s» пока в разработке, изображение возвращено без изменений.\n", rec.Mode)
	}

	if primary, ok := rec.Primary(); ok {
		sb.WriteString("\n🩻 Основная находка: ")
		sb.WriteString(formatFinding(primary))
		sb.WriteString("\n")
	}
	if secondary := rec.Secondary(); len(secondary) > 0 {
		sb.WriteString("Дополнительно:\n")
		for _, f := range secondary {
			sb.WriteString("• " + formatFinding(f) + "\n")
		}
	}

	for _, note := range rec.Notes {
		sb.WriteString("📝 " + note + "\n")
	}

	if len(rec.Diagnoses) > 0 {
		sb.WriteString("\n🩺 Возможные диагнозы:\n")
		for _, d := range rec.Diagnoses {
			sb.WriteString("• " + formatFinding(d) + "\n")
		}
	}

	if rec.Recommendation != "" {
		sb.WriteString("\n💡 Рекомендация: " + rec.Recommendation + "\n")
	}

	if len(rec.Metrics) > 0 {
		sb.WriteString("\n📊 Метрики:\n")
		for _, m := range rec.Metrics {
			fmt.Fprintf(&sb, "• %s: %s\n", m.Name, m.Value())
		}
	}

	if rec.Disclaimer != "" {
		sb.WriteString("\n⚠️ " + rec.Disclaimer)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatFinding(f entity.Finding) string {
	if !f.Scored {
		return f.Label
	}
	return f.Label + " (" + strconv.FormatFloat(f.Confidence, 'f', -1, 64) + "%)"
}

// FormatSettings описывает текущие настройки чата.
func FormatSettings(cfg entity.AnalysisConfig) string {
	return fmt.Sprintf(`⚙️ Текущие настройки:
• Режим: %s
• Чувствительность: %d из %d
• Тепловая карта: %s
• Измерения: %s`,
		cfg.Mode, cfg.Sensitivity, entity.MaxSensitivity, onOff(cfg.ShowHeatmap), onOff(cfg.ShowMeasurements))
}

// FormatModes перечисляет режимы с номерами для команды /mode.
func FormatModes(current entity.Mode) string {
	var sb strings.Builder
	sb.WriteString("🧭 Режимы анализа:\n")
	for i, m := range entity.Modes {
		marker := "  "
		if m == current {
			marker = "▶"
		}
		fmt.Fprintf(&sb, "%s %d. %s\n", marker, i+1, m)
	}
	sb.WriteString("\nВыберите: /mode 2 или /mode segmentation")
	return sb.String()
}

// parseModeArg принимает номер режима из меню или его имя.
func parseModeArg(arg string) (entity.Mode, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(entity.Modes) {
			return 0, &entity.UnsupportedModeError{Mode: arg}
		}
		return entity.Modes[n-1], nil
	}
	return entity.ParseMode(arg)
}

// uploadLimitMessage возвращает отказ, если файл больше лимита.
func uploadLimitMessage(size, limit int64) (string, bool) {
	if size <= limit {
		return "", false
	}
	return fmt.Sprintf(msgFileTooLarge, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit))), true
}

// errorMessage подбирает ответ пользователю по типу ошибки.
func errorMessage(err error) string {
	var (
		invalidImage *entity.InvalidImageError
		format       *entity.UnsupportedFormatError
		mode         *entity.UnsupportedModeError
		cfg          *entity.InvalidConfigError
	)

	switch {
	case errors.As(err, &format):
		return msgUnsupportedFormat
	case errors.As(err, &invalidImage):
		return msgInvalidImage
	case errors.As(err, &mode):
		return msgUnknownMode
	case errors.As(err, &cfg):
		return msgInvalidSensitivity
	default:
		return msgProcessingError
	}
}

func onOff(v bool) string {
	if v {
		return "вкл"
	}
	return "выкл"
}
