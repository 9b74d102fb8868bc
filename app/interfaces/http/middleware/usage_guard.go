package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/domain/usage"
	"promptlane.ai/prompt-gateway/app/interfaces/http/responses"
)

// UsageGuard enforces the monthly quota, sets the rate-limit headers and,
// once the response has been served successfully, records the call. The
// recording is enqueued, not awaited; it cannot delay or fail the response.
func UsageGuard(usageService *usage.UsageService) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		resolved, ok := apikey.GetResolvedKeyFromContext(reqCtx)
		if !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "e5b8c2aa-7a06-44cf-9f62-18c4ed3f2b91",
			})
			return
		}

		status, err := usageService.CheckLimit(reqCtx.Request.Context(), resolved.OrganizationID)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
				Code: "a4e90b7d-4c35-47d8-ae7a-91d6b2f43c55",
			})
			return
		}

		setRateLimitHeaders(reqCtx, status)
		if !status.Allowed {
			reqCtx.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
				Code:  "0d8e6f11-0a0a-45ba-9f5d-d2f3c6a7e802",
				Error: "monthly quota exceeded",
			})
			return
		}

		reqCtx.Next()

		if reqCtx.Writer.Status() < http.StatusBadRequest {
			usageService.RecordUsage(resolved.OrganizationID)
		}
	}
}

func setRateLimitHeaders(reqCtx *gin.Context, status *usage.UsageStatus) {
	if status.Limit != nil {
		reqCtx.Header("X-RateLimit-Limit", strconv.FormatInt(*status.Limit, 10))
	}
	if status.Remaining != nil {
		reqCtx.Header("X-RateLimit-Remaining", strconv.FormatInt(*status.Remaining, 10))
	}
	reqCtx.Header("X-RateLimit-Reset", strconv.FormatInt(status.ResetAt.Unix(), 10))
}
