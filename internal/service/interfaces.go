package service

import (
	"context"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// Every command is confirm-then-apply: the Entity Store call completes
// first and the cache is patched only after it succeeds.

type UserService interface {
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
	GetOrCreateByName(ctx context.Context, name string) (domain.Client, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (domain.Project, error)
	EnsureShareToken(ctx context.Context, id string) (string, error)
	ByShareToken(token string) (*PublicProject, error)
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ActivityService interface {
	Create(ctx context.Context, a *domain.Activity) error
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id string) error
}

type StatsService interface {
	Project(projectID string) ProjectStats
	User(userID string, now time.Time) UserStats
}

// PublicProject is the read-only view served to holders of a share link.
type PublicProject struct {
	Project    domain.Project    `json:"project"`
	Tasks      []domain.Task     `json:"tasks"`
	Activities []domain.Activity `json:"activities"`
}
