//go:build wireinject

package main

import (
	"github.com/google/wire"

	"promptlane.ai/prompt-gateway/app/domain"
	"promptlane.ai/prompt-gateway/app/infrastructure"
	"promptlane.ai/prompt-gateway/app/infrastructure/database/repository"
	"promptlane.ai/prompt-gateway/app/interfaces/http"
	"promptlane.ai/prompt-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		repository.RepositoryProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(DataInitializer), "*"),
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
