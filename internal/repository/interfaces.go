package repository

import (
	"context"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

type UserRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type ClientRepo interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, p *domain.Project) error
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepo interface {
	List(ctx context.Context) ([]domain.Activity, error)
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	Create(ctx context.Context, a *domain.Activity) error
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id string) error
}

type ProjectTypeRepo interface {
	List(ctx context.Context) ([]domain.ProjectType, error)
	Create(ctx context.Context, pt *domain.ProjectType) error
}

// EntityStore is the per-entity CRUD contract consumed by the application
// layer. Every write runs in its own transaction; project and task deletes
// cascade to their dependents.
type EntityStore interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id string) error
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, c *domain.Client) error
	UpdateClient(ctx context.Context, c *domain.Client) error
	DeleteClient(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, p *domain.Project) error
	UpdateProject(ctx context.Context, p *domain.Project) error
	UpdateProjectStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	DeleteProject(ctx context.Context, id string) error

	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, t *domain.Task) error
	UpdateTask(ctx context.Context, t *domain.Task) error
	DeleteTask(ctx context.Context, id string) error

	ListActivities(ctx context.Context) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, a *domain.Activity) error
	UpdateActivity(ctx context.Context, a *domain.Activity) error
	DeleteActivity(ctx context.Context, id string) error

	ListProjectTypes(ctx context.Context) ([]domain.ProjectType, error)
}

var (
	_ UserRepo        = (*SQLUserRepo)(nil)
	_ ClientRepo      = (*SQLClientRepo)(nil)
	_ ProjectRepo     = (*SQLProjectRepo)(nil)
	_ TaskRepo        = (*SQLTaskRepo)(nil)
	_ ActivityRepo    = (*SQLActivityRepo)(nil)
	_ ProjectTypeRepo = (*SQLProjectTypeRepo)(nil)
)
