package cache

import "fmt"

// Cache keys are deterministic per logical entity: repeated lookups for the
// same entity always land on the same key.

func KeyApiKey(keyHash string) string {
	return fmt.Sprintf("apikey:%s", keyHash)
}

func KeyPrompt(promptPublicID string) string {
	return fmt.Sprintf("prompt:%s", promptPublicID)
}

// KeyVersion keys one published version; version is a normalized semver or
// "latest". The latest pointer is a separate entity with its own expiry.
func KeyVersion(promptPublicID, version string) string {
	return fmt.Sprintf("version:%s:%s", promptPublicID, version)
}

const LatestVersion = "latest"

func KeyUsage(orgID uint, period string) string {
	return fmt.Sprintf("usage:%d:%s", orgID, period)
}

func KeyPlan(orgID uint) string {
	return fmt.Sprintf("plan:%d", orgID)
}
