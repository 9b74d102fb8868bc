package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/domain/usage"
	"promptlane.ai/prompt-gateway/app/interfaces/http/middleware"
	"promptlane.ai/prompt-gateway/app/interfaces/http/routes/v1/prompts"
	"promptlane.ai/prompt-gateway/config"
)

type V1Route struct {
	apiKeyService *apikey.ApiKeyService
	usageService  *usage.UsageService
	promptsRoute  *prompts.PromptsRoute
}

func NewV1Route(
	apiKeyService *apikey.ApiKeyService,
	usageService *usage.UsageService,
	promptsRoute *prompts.PromptsRoute,
) *V1Route {
	return &V1Route{
		apiKeyService,
		usageService,
		promptsRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	protected := v1Router.Group("")
	protected.Use(
		middleware.ApiKeyAuth(v1Route.apiKeyService),
		middleware.UsageGuard(v1Route.usageService),
	)
	v1Route.promptsRoute.RegisterRouter(protected)
}

// GetVersion godoc
// @Summary     Get API build version
// @Description Returns the current build version of the API server.
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "version info"
// @Router      /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
