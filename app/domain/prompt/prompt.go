package prompt

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound covers unknown prompts and prompts owned by another
	// organization; the two are indistinguishable to the caller.
	ErrNotFound = errors.New("prompt not found")
	// ErrVersionNotFound means the prompt exists but the requested version
	// is not published.
	ErrVersionNotFound = errors.New("prompt version not found")
	// ErrInvalidVersion means the requested version is not a valid semver.
	ErrInvalidVersion = errors.New("invalid version")
)

type Prompt struct {
	ID             uint
	PublicID       string
	OrganizationID uint
	Name           string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PromptVersion is one published revision of a prompt. Published content is
// immutable; only the "latest" pointer moves.
type PromptVersion struct {
	ID            uint
	PromptID      uint
	Version       string
	SystemMessage string
	UserMessage   string
	Config        map[string]any
	Published     bool
	CreatedAt     time.Time
}

type PromptRepository interface {
	Create(ctx context.Context, p *Prompt) error
	CreateVersion(ctx context.Context, v *PromptVersion) error
	// FindByPublicID excludes soft-deleted prompts.
	FindByPublicID(ctx context.Context, publicID string) (*Prompt, error)
	// FindVersion returns the published version of the prompt identified by
	// its public ID; unpublished versions are invisible.
	FindVersion(ctx context.Context, promptPublicID, version string) (*PromptVersion, error)
	// FindLatestVersion returns the most recently published version.
	FindLatestVersion(ctx context.Context, promptPublicID string) (*PromptVersion, error)
}
