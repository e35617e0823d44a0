package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	app "medvision/internal/application"
	"medvision/internal/container"
	"medvision/internal/domain/entity"
	"medvision/internal/logger"
)

const (
	msgStart = `👋 Привет! Я демонстрационный бот аннотации медицинских снимков.

📸 Отправьте мне снимок (JPEG или PNG), и я наложу разметку выбранного режима анализа.

📋 Команды:
/check — начать анализ снимка
/mode — выбрать режим анализа
/settings — текущие настройки
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Выберите режим: /mode
2️⃣ Отправьте снимок фото или файлом (.jpg, .jpeg, .png, .dcm)
3️⃣ Получите размеченное изображение и отчёт

⚙️ Настройки:
/mode [номер|имя] — режим анализа
/sensitivity N — чувствительность от 1 до 10
/heatmap — вкл/выкл тепловую карту
/measurements — вкл/выкл измерения
/settings — показать настройки
/reset — сбросить настройки

❗ Результаты сгенерированы для демонстрации и не являются диагнозом.`

	msgAwaitingPhoto      = "📸 Отправьте снимок для анализа."
	msgCancelled          = "❌ Операция отменена. Отправьте /check для нового анализа."
	msgSendPhoto          = "📸 Пожалуйста, отправьте снимок для анализа."
	msgUnknownCommand     = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing         = "⏳ Обрабатываю изображение..."
	msgProcessingError    = "⚠️ Не удалось обработать изображение. Попробуйте другой файл."
	msgUnsupportedFormat  = "⚠️ Формат не поддерживается. Отправьте JPEG или PNG."
	msgInvalidImage       = "⚠️ Изображение повреждено или пустое."
	msgUnknownMode        = "❓ Неизвестный режим. Список режимов: /mode"
	msgInvalidSensitivity = "❓ Чувствительность задаётся числом от 1 до 10, например /sensitivity 7"
	msgResetDone          = "🔄 Настройки сброшены."
	msgFileTooLarge       = "⚠️ Файл слишком большой: %s, максимум %s."
	msgBadExtension       = "⚠️ Файл %q не поддерживается. Допустимы .jpg, .jpeg, .png и .dcm."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	sessions  *app.SessionService
	analysis  *app.AnalysisService
	maxUpload int64
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, maxUpload int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.WithField("account", api.Self.UserName).Info("Authorized on Telegram")

	return &Bot{
		api:       api,
		sessions:  c.SessionService,
		analysis:  c.AnalysisService,
		maxUpload: maxUpload,
	}, nil
}

// Run запускает основной цикл обработки сообщений, пока не отменён ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	session, err := b.sessions.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		logger.WithError(err).WithField("chat_id", msg.Chat.ID).Error("Failed to load session")
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, session)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		b.handleUpload(ctx, msg, session, photo.FileID, int64(photo.FileSize))
		return
	}

	// Снимок, отправленный файлом
	if msg.Document != nil {
		if !b.analysis.Accepts(msg.Document.FileName) {
			b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgBadExtension, msg.Document.FileName))
			return
		}
		b.handleUpload(ctx, msg, session, msg.Document.FileID, int64(msg.Document.FileSize))
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, session *entity.Session) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		b.report(b.sessions.Cancel(ctx, userID, chatID))
		b.sendMessage(chatID, msgStart)
		b.sendPreview(ctx, chatID)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		b.report(b.sessions.BeginAnalysis(ctx, userID, chatID))
		b.sendMessage(chatID, msgAwaitingPhoto+"\n"+FormatSettings(session.Config))

	case "cancel":
		b.report(b.sessions.Cancel(ctx, userID, chatID))
		b.sendMessage(chatID, msgCancelled)

	case "mode":
		if args == "" {
			b.sendMessage(chatID, FormatModes(session.Config.Mode))
			return
		}
		mode, err := parseModeArg(args)
		if err != nil {
			b.sendMessage(chatID, errorMessage(err))
			return
		}
		updated, err := b.sessions.SetMode(ctx, userID, chatID, mode)
		b.replySettings(chatID, updated, err)

	case "sensitivity":
		n, err := strconv.Atoi(args)
		if err != nil {
			b.sendMessage(chatID, msgInvalidSensitivity)
			return
		}
		updated, err := b.sessions.SetSensitivity(ctx, userID, chatID, n)
		b.replySettings(chatID, updated, err)

	case "heatmap":
		updated, err := b.sessions.ToggleHeatmap(ctx, userID, chatID)
		b.replySettings(chatID, updated, err)

	case "measurements":
		updated, err := b.sessions.ToggleMeasurements(ctx, userID, chatID)
		b.replySettings(chatID, updated, err)

	case "settings":
		b.sendMessage(chatID, FormatSettings(session.Config))

	case "reset":
		updated, err := b.sessions.Reset(ctx, userID, chatID)
		if err != nil {
			b.sendMessage(chatID, errorMessage(err))
			return
		}
		b.sendMessage(chatID, msgResetDone+"\n"+FormatSettings(updated.Config))

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handleUpload скачивает снимок, анализирует его и отправляет результат
func (b *Bot) handleUpload(ctx context.Context, msg *tgbotapi.Message, session *entity.Session, fileID string, size int64) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	log := logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"mode":    session.Config.Mode.String(),
	})

	if text, tooLarge := uploadLimitMessage(size, b.maxUpload); tooLarge {
		b.sendMessage(chatID, text)
		return
	}

	// Устанавливаем состояние "обработка"
	b.report(b.sessions.SetState(ctx, userID, chatID, entity.StateProcessing))
	defer func() {
		// Возвращаем в главное меню
		b.report(b.sessions.Cancel(ctx, userID, chatID))
	}()

	b.sendMessage(chatID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.WithError(err).Error("Failed to download upload")
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	log.WithField("size", humanize.IBytes(uint64(len(imageData)))).Debug("Upload received")

	out, err := b.analysis.AnalyzeImage(ctx, imageData, session.Config)
	if err != nil {
		log.WithError(err).Warn("Analysis failed")
		b.sendMessage(chatID, errorMessage(err))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "annotated." + extension(out.Format),
		Bytes: out.Image,
	})
	photo.Caption = out.Result.Mode.String()
	if _, err := b.api.Send(photo); err != nil {
		log.WithError(err).Error("Failed to send annotated image")
	}

	b.sendMessage(chatID, FormatReport(out.Result))
}

func (b *Bot) sendPreview(ctx context.Context, chatID int64) {
	data, err := b.analysis.Preview(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to render preview")
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "preview." + extension(b.analysis.Format()),
		Bytes: data,
	})
	if _, err := b.api.Send(photo); err != nil {
		logger.WithError(err).Error("Failed to send preview")
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, b.maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > b.maxUpload {
		return nil, fmt.Errorf("file exceeds %s", humanize.IBytes(uint64(b.maxUpload)))
	}

	return data, nil
}

func (b *Bot) replySettings(chatID int64, session *entity.Session, err error) {
	if err != nil {
		b.sendMessage(chatID, errorMessage(err))
		return
	}
	b.sendMessage(chatID, "✅ Сохранено.\n"+FormatSettings(session.Config))
}

// report логирует ошибку обновления сессии
func (b *Bot) report(_ *entity.Session, err error) {
	if err != nil {
		logger.WithError(err).Error("Failed to update session")
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

func extension(format string) string {
	if format == "png" {
		return "png"
	}
	return "jpg"
}
