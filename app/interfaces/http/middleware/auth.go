package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/interfaces/http/responses"
)

// ApiKeyAuth authenticates the request via Authorization: Bearer or
// X-API-Key and stores the resolved key on the gin context.
func ApiKeyAuth(apiKeyService *apikey.ApiKeyService) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		rawKey := extractApiKey(reqCtx)
		if rawKey == "" {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "2f3a6f5e-9f1b-4a4e-8f34-6f2f1f0b61a4",
				Error: "missing API key",
			})
			return
		}

		resolved, reason, err := apiKeyService.ResolveApiKey(reqCtx.Request.Context(), rawKey)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
				Code: "b95a1c61-2d0f-4d51-bd9a-34a9ce2f8d21",
			})
			return
		}
		if resolved == nil {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "6cf6d55e-8a1e-4a6b-8c0f-ec95f29a9f3d",
				Error: string(reason),
			})
			return
		}
		apikey.SetResolvedKeyToContext(reqCtx, resolved)
	}
}

func extractApiKey(reqCtx *gin.Context) string {
	authorization := reqCtx.GetHeader("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	}
	return strings.TrimSpace(reqCtx.GetHeader("X-API-Key"))
}
