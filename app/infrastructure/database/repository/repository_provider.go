package repository

import (
	"github.com/google/wire"

	"promptlane.ai/prompt-gateway/app/infrastructure/database/repository/apikeyrepo"
	"promptlane.ai/prompt-gateway/app/infrastructure/database/repository/organizationrepo"
	"promptlane.ai/prompt-gateway/app/infrastructure/database/repository/promptrepo"
	"promptlane.ai/prompt-gateway/app/infrastructure/database/repository/usagerepo"
)

var RepositoryProvider = wire.NewSet(
	organizationrepo.NewOrganizationGormRepository,
	apikeyrepo.NewApiKeyGormRepository,
	promptrepo.NewPromptGormRepository,
	usagerepo.NewUsageGormRepository,
)
