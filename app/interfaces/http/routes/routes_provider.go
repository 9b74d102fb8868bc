package routes

import (
	"github.com/google/wire"

	v1 "promptlane.ai/prompt-gateway/app/interfaces/http/routes/v1"
	"promptlane.ai/prompt-gateway/app/interfaces/http/routes/v1/prompts"
)

var RouteProvider = wire.NewSet(
	prompts.NewPromptsRoute,
	v1.NewV1Route,
)
