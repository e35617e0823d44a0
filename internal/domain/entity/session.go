package entity

// SessionState состояние диалога с пользователем
type SessionState string

const (
	StateMainMenu      SessionState = "main_menu"      // В главном меню
	StateAwaitingPhoto SessionState = "awaiting_photo" // Ожидание снимка
	StateProcessing    SessionState = "processing"     // Обработка изображения
)

// Session настройки и состояние одного чата
type Session struct {
	UserID int64          // Telegram User ID
	ChatID int64          // Telegram Chat ID
	State  SessionState   // Текущее состояние
	Config AnalysisConfig // Выбранные настройки анализа
}

// NewSession создаёт сессию с настройками по умолчанию
func NewSession(userID, chatID int64) *Session {
	return &Session{
		UserID: userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Config: DefaultAnalysisConfig(),
	}
}

// SetState обновляет состояние сессии
func (s *Session) SetState(state SessionState) {
	s.State = state
}
