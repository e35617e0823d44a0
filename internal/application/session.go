package app

import (
	"context"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
)

// SessionService управляет настройками и состоянием диалога чата.
type SessionService struct {
	repo port.SessionRepository
}

func NewSessionService(repo port.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Get(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetState меняет только состояние диалога, настройки не перезаписываются.
func (s *SessionService) SetState(ctx context.Context, userID, chatID int64, state entity.SessionState) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateState(ctx, userID, state); err != nil {
		return nil, err
	}

	session.SetState(state)
	return session, nil
}

func (s *SessionService) BeginAnalysis(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *SessionService) Cancel(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SetMode выбирает режим анализа.
func (s *SessionService) SetMode(ctx context.Context, userID, chatID int64, mode entity.Mode) (*entity.Session, error) {
	if !mode.Valid() {
		return nil, &entity.UnsupportedModeError{Mode: mode.String()}
	}
	return s.update(ctx, userID, chatID, func(session *entity.Session) error {
		session.Config.Mode = mode
		return nil
	})
}

// SetSensitivity меняет чувствительность, значение проверяется по диапазону [1,10].
func (s *SessionService) SetSensitivity(ctx context.Context, userID, chatID int64, sensitivity int) (*entity.Session, error) {
	return s.update(ctx, userID, chatID, func(session *entity.Session) error {
		cfg := session.Config
		cfg.Sensitivity = sensitivity
		if err := cfg.Validate(); err != nil {
			return err
		}
		session.Config = cfg
		return nil
	})
}

func (s *SessionService) ToggleHeatmap(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.update(ctx, userID, chatID, func(session *entity.Session) error {
		session.Config.ShowHeatmap = !session.Config.ShowHeatmap
		return nil
	})
}

func (s *SessionService) ToggleMeasurements(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.update(ctx, userID, chatID, func(session *entity.Session) error {
		session.Config.ShowMeasurements = !session.Config.ShowMeasurements
		return nil
	})
}

// Reset возвращает настройки по умолчанию и главное меню.
func (s *SessionService) Reset(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.update(ctx, userID, chatID, func(session *entity.Session) error {
		session.Config = entity.DefaultAnalysisConfig()
		session.SetState(entity.StateMainMenu)
		return nil
	})
}

func (s *SessionService) update(ctx context.Context, userID, chatID int64, apply func(*entity.Session) error) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if err := apply(session); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
