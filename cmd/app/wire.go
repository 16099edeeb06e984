//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/agriguard/agriguard/internal/bootstrap"
	"github.com/agriguard/agriguard/internal/domain/chat"
	"github.com/agriguard/agriguard/internal/domain/diagnosis"
	"github.com/agriguard/agriguard/internal/domain/ipm"
	"github.com/agriguard/agriguard/internal/domain/provider"
	"github.com/agriguard/agriguard/internal/infra/config"
	httpiface "github.com/agriguard/agriguard/internal/interface/http"
	"github.com/agriguard/agriguard/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSelector,
		provideWeatherClient,
		provideDiagnosisService,
		provideIPMService,
		provideSessionStore,
		provideImageArchive,
		provideTokenCounter,
		provideChatService,
		wire.Bind(new(httpiface.DiagnosisService), new(*diagnosis.Service)),
		wire.Bind(new(httpiface.IPMService), new(*ipm.Service)),
		wire.Bind(new(httpiface.ChatService), new(*chat.Service)),
		wire.Bind(new(httpiface.StatusReporter), new(*provider.Selector)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
