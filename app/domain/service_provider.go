package domain

import (
	"github.com/google/wire"

	"promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/domain/healthcheck"
	"promptlane.ai/prompt-gateway/app/domain/organization"
	"promptlane.ai/prompt-gateway/app/domain/prompt"
	"promptlane.ai/prompt-gateway/app/domain/usage"
)

var ServiceProvider = wire.NewSet(
	organization.NewService,
	apikey.NewService,
	prompt.NewService,
	usage.NewService,
	usage.NewReporter,
	healthcheck.NewService,
)
