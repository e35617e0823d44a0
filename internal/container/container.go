package container

import (
	app "medvision/internal/application"
	"medvision/internal/domain/port"
)

type Container struct {
	SessionService  *app.SessionService
	AnalysisService *app.AnalysisService
}

func New(sessionRepo port.SessionRepository, renderer port.Renderer, codec port.ImageCodec, opts app.AnalysisOptions) *Container {
	sessionService := app.NewSessionService(sessionRepo)
	analysisService := app.NewAnalysisService(renderer, codec, opts)

	return &Container{
		SessionService:  sessionService,
		AnalysisService: analysisService,
	}
}
