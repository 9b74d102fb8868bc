package cache

import "time"

const (
	// PromotionTTL bounds how long a shared-tier hit lives in the local tier.
	PromotionTTL = time.Minute

	ApiKeyTTL        = 5 * time.Minute
	PromptTTL        = 5 * time.Minute
	LatestVersionTTL = 5 * time.Minute
	UsageTTL         = 30 * time.Second
	PlanTTL          = 10 * time.Minute
)
