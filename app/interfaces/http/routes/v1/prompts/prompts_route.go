package prompts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/domain/prompt"
	"promptlane.ai/prompt-gateway/app/interfaces/http/responses"
)

type PromptsRoute struct {
	promptService *prompt.PromptService
}

func NewPromptsRoute(promptService *prompt.PromptService) *PromptsRoute {
	return &PromptsRoute{
		promptService: promptService,
	}
}

func (r *PromptsRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/prompts/:prompt_id", r.GetPrompt)
}

// GetPrompt godoc
// @Summary     Fetch one prompt at one version
// @Description Returns prompt metadata plus the content of the requested
// @Description version; omitting version resolves the latest published one.
// @Tags        prompts
// @Produce     json
// @Param       prompt_id path  string true  "prompt public ID"
// @Param       version   query string false "semver or latest"
// @Success     200 {object} prompt.PromptResponse
// @Router      /v1/prompts/{prompt_id} [get]
func (r *PromptsRoute) GetPrompt(reqCtx *gin.Context) {
	resolved, ok := apikey.GetResolvedKeyFromContext(reqCtx)
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "f0c1e7a9-1d2b-4c8e-95ab-7c3a2e61d044",
		})
		return
	}
	if !resolved.Can("prompts", "read") {
		reqCtx.AbortWithStatusJSON(http.StatusForbidden, responses.ErrorResponse{
			Code:  "57b3f6da-63a1-4e2e-8f75-2b9d0cc3ae10",
			Error: "key lacks prompts:read permission",
		})
		return
	}

	promptID := reqCtx.Param("prompt_id")
	version := reqCtx.Query("version")

	resp, err := r.promptService.ResolvePrompt(reqCtx.Request.Context(), promptID, resolved.OrganizationID, version)
	if err != nil {
		switch {
		case errors.Is(err, prompt.ErrInvalidVersion):
			reqCtx.JSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "1de0a9c3-70b7-4a1e-b2c2-8ad4b41f0f5e",
				Error: "version must be a valid semver",
			})
		case errors.Is(err, prompt.ErrNotFound):
			reqCtx.JSON(http.StatusNotFound, responses.ErrorResponse{
				Code:  "9a8ab6f2-5c27-4f27-b6a5-53d2f8e3c7b9",
				Error: "prompt not found",
			})
		case errors.Is(err, prompt.ErrVersionNotFound):
			reqCtx.JSON(http.StatusNotFound, responses.ErrorResponse{
				Code:  "3c93b1de-91f4-48b8-9f44-6a3b8a90ce12",
				Error: "prompt version not found",
			})
		default:
			reqCtx.JSON(http.StatusInternalServerError, responses.ErrorResponse{
				Code: "7e4f2c85-07f5-41d2-a6d3-1b6e5f0ad928",
			})
		}
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}
