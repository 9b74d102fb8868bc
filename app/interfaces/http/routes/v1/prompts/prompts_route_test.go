package prompts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/domain/prompt"
	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
)

type stubPromptRepo struct {
	prompt  *prompt.Prompt
	version *prompt.PromptVersion
}

func (r *stubPromptRepo) Create(ctx context.Context, p *prompt.Prompt) error { return nil }
func (r *stubPromptRepo) CreateVersion(ctx context.Context, v *prompt.PromptVersion) error {
	return nil
}

func (r *stubPromptRepo) FindByPublicID(ctx context.Context, publicID string) (*prompt.Prompt, error) {
	if r.prompt == nil || r.prompt.PublicID != publicID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.prompt, nil
}

func (r *stubPromptRepo) FindVersion(ctx context.Context, promptPublicID, version string) (*prompt.PromptVersion, error) {
	if r.version == nil || r.version.Version != version {
		return nil, gorm.ErrRecordNotFound
	}
	return r.version, nil
}

func (r *stubPromptRepo) FindLatestVersion(ctx context.Context, promptPublicID string) (*prompt.PromptVersion, error) {
	if r.version == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.version, nil
}

func newTestRouter(t *testing.T, repo prompt.PromptRepository, resolved *apikey.CachedApiKey) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	local := cache.NewMemoryCache()
	t.Cleanup(local.Stop)
	service := prompt.NewService(repo, cache.NewTieredCache(local, &cache.NoOpCacheService{}))

	router := gin.New()
	group := router.Group("/")
	if resolved != nil {
		group.Use(func(c *gin.Context) { apikey.SetResolvedKeyToContext(c, resolved) })
	}
	NewPromptsRoute(service).RegisterRouter(group)
	return router
}

func readerKey(orgID uint) *apikey.CachedApiKey {
	return &apikey.CachedApiKey{
		OrganizationID: orgID,
		Permissions:    map[string][]string{"prompts": {"read"}},
		Enabled:        true,
	}
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func TestGetPrompt(t *testing.T) {
	repo := &stubPromptRepo{
		prompt: &prompt.Prompt{ID: 1, PublicID: "prm_x", OrganizationID: 1, Name: "x"},
		version: &prompt.PromptVersion{
			PromptID:      1,
			Version:       "1.0.0",
			SystemMessage: "sys",
			UserMessage:   "usr",
			Published:     true,
		},
	}
	router := newTestRouter(t, repo, readerKey(1))

	recorder := get(router, "/prompts/prm_x?version=1.0.0")
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp prompt.PromptResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "prm_x", resp.PromptID)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "sys", resp.SystemMessage)
	assert.Equal(t, "usr", resp.UserMessage)
}

func TestGetPromptWithoutResolvedKey(t *testing.T) {
	router := newTestRouter(t, &stubPromptRepo{}, nil)

	recorder := get(router, "/prompts/prm_x")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetPromptWithoutPermission(t *testing.T) {
	resolved := &apikey.CachedApiKey{
		OrganizationID: 1,
		Permissions:    map[string][]string{"prompts": {"write"}},
		Enabled:        true,
	}
	router := newTestRouter(t, &stubPromptRepo{}, resolved)

	recorder := get(router, "/prompts/prm_x")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestGetPromptBadVersion(t *testing.T) {
	router := newTestRouter(t, &stubPromptRepo{}, readerKey(1))

	recorder := get(router, "/prompts/prm_x?version=not-semver")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetPromptNotFound(t *testing.T) {
	router := newTestRouter(t, &stubPromptRepo{}, readerKey(1))

	recorder := get(router, "/prompts/prm_absent")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetPromptVersionNotFound(t *testing.T) {
	repo := &stubPromptRepo{
		prompt: &prompt.Prompt{ID: 1, PublicID: "prm_x", OrganizationID: 1, Name: "x"},
	}
	router := newTestRouter(t, repo, readerKey(1))

	recorder := get(router, "/prompts/prm_x?version=9.9.9")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetPromptOtherOrganization(t *testing.T) {
	repo := &stubPromptRepo{
		prompt: &prompt.Prompt{ID: 1, PublicID: "prm_x", OrganizationID: 1, Name: "x"},
		version: &prompt.PromptVersion{
			PromptID: 1, Version: "1.0.0", Published: true,
		},
	}
	router := newTestRouter(t, repo, readerKey(2))

	recorder := get(router, "/prompts/prm_x?version=1.0.0")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
