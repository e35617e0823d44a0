package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"medvision/internal/domain/entity"
	"medvision/internal/infrastructure/storage"
)

// stateRecorder считает вызовы Save и UpdateState поверх in-memory хранилища.
type stateRecorder struct {
	*storage.MemorySessionRepository
	saves   int
	updates []entity.SessionState
}

func (r *stateRecorder) Save(ctx context.Context, session *entity.Session) error {
	r.saves++
	return r.MemorySessionRepository.Save(ctx, session)
}

func (r *stateRecorder) UpdateState(ctx context.Context, userID int64, state entity.SessionState) error {
	r.updates = append(r.updates, state)
	return r.MemorySessionRepository.UpdateState(ctx, userID, state)
}

func TestSessionService_BeginAndCancel(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())
	ctx := context.Background()

	s, err := svc.BeginAnalysis(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, s.State)

	s, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, s.State)
}

func TestSessionService_Settings(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())
	ctx := context.Background()

	s, err := svc.SetMode(ctx, 2, 20, entity.ModeSegmentation)
	require.NoError(t, err)
	require.Equal(t, entity.ModeSegmentation, s.Config.Mode)

	s, err = svc.SetSensitivity(ctx, 2, 20, 10)
	require.NoError(t, err)
	require.Equal(t, 10, s.Config.Sensitivity)

	s, err = svc.ToggleHeatmap(ctx, 2, 20)
	require.NoError(t, err)
	require.False(t, s.Config.ShowHeatmap)

	s, err = svc.ToggleMeasurements(ctx, 2, 20)
	require.NoError(t, err)
	require.False(t, s.Config.ShowMeasurements)

	s, err = svc.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.ModeSegmentation, s.Config.Mode)

	s, err = svc.Reset(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.DefaultAnalysisConfig(), s.Config)
}

func TestSessionService_RejectsInvalidSettings(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())
	ctx := context.Background()

	_, err := svc.SetSensitivity(ctx, 3, 30, 11)
	var invalid *entity.InvalidConfigError
	require.True(t, errors.As(err, &invalid))

	_, err = svc.SetMode(ctx, 3, 30, entity.Mode(0))
	var unsupported *entity.UnsupportedModeError
	require.True(t, errors.As(err, &unsupported))

	s, err := svc.Get(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.DefaultSensitivity, s.Config.Sensitivity)
}

func TestSessionService_StateChangesUseUpdateState(t *testing.T) {
	repo := &stateRecorder{MemorySessionRepository: storage.NewMemorySessionRepository()}
	svc := NewSessionService(repo)
	ctx := context.Background()

	_, err := svc.SetMode(ctx, 4, 40, entity.ModeSegmentation)
	require.NoError(t, err)
	require.Equal(t, 1, repo.saves)

	s, err := svc.SetState(ctx, 4, 40, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, s.State)
	_, err = svc.Cancel(ctx, 4, 40)
	require.NoError(t, err)

	require.Equal(t, []entity.SessionState{entity.StateProcessing, entity.StateMainMenu}, repo.updates)
	require.Equal(t, 1, repo.saves)

	s, err = svc.Get(ctx, 4, 40)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, s.State)
	require.Equal(t, entity.ModeSegmentation, s.Config.Mode)
}

func TestSessionService_SetStateCreatesSession(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())
	ctx := context.Background()

	s, err := svc.BeginAnalysis(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, int64(50), s.ChatID)

	s, err = svc.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, s.State)
}
