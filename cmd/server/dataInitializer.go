package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/domain/organization"
	"promptlane.ai/prompt-gateway/app/domain/prompt"
	"promptlane.ai/prompt-gateway/app/utils/logger"
)

const demoOrganizationPublicID = "org_demo"
const demoPromptPublicID = "prm_demo"

// DataInitializer seeds a demo organization, key and prompt for local
// development. It is a no-op once the demo organization exists.
type DataInitializer struct {
	OrganizationService *organization.OrganizationService
	ApiKeyService       *apikey.ApiKeyService
	PromptService       *prompt.PromptService
}

func (d *DataInitializer) Install(ctx context.Context) error {
	existing, err := d.OrganizationService.FindByPublicID(ctx, demoOrganizationPublicID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	org, err := d.OrganizationService.Create(ctx, &organization.Organization{
		PublicID: demoOrganizationPublicID,
		Name:     "Demo Organization",
		Plan:     organization.PlanFree,
		Enabled:  true,
	})
	if err != nil {
		return err
	}

	rawKey, keyHash, err := d.ApiKeyService.GenerateKeyAndHash()
	if err != nil {
		return err
	}
	if _, err := d.ApiKeyService.CreateApiKey(ctx, &apikey.ApiKey{
		KeyHash:        keyHash,
		OrganizationID: org.ID,
		Description:    "demo key",
		Permissions:    map[string][]string{"prompts": {"read"}},
		Enabled:        true,
	}); err != nil {
		return err
	}

	demoPrompt := &prompt.Prompt{
		PublicID:       demoPromptPublicID,
		OrganizationID: org.ID,
		Name:           "greeting",
		Description:    "Demo greeting prompt",
	}
	if err := d.PromptService.Create(ctx, demoPrompt); err != nil {
		return err
	}
	versions := []*prompt.PromptVersion{
		{
			PromptID:      demoPrompt.ID,
			Version:       "1.0.0",
			SystemMessage: "You are a friendly greeter.",
			UserMessage:   "Say hello to {{name}}.",
			Published:     true,
		},
		{
			PromptID:      demoPrompt.ID,
			Version:       "1.1.0",
			SystemMessage: "You are a friendly greeter.",
			UserMessage:   "Say hello to {{name}} in {{language}}.",
			Config:        map[string]any{"temperature": 0.7},
			Published:     true,
		},
	}
	for _, v := range versions {
		if err := d.PromptService.CreateVersion(ctx, v); err != nil {
			return err
		}
	}

	// The raw key is only recoverable here; the store keeps the hash.
	logger.GetLogger().WithFields(logrus.Fields{
		"organization": demoOrganizationPublicID,
		"prompt":       demoPromptPublicID,
		"api_key":      rawKey,
	}).Info("seeded demo data")
	return nil
}
