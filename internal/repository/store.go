package repository

import (
	"context"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// Store is the Entity Store: one CRUD surface per collection backed by the
// SQL repositories. Reads run on the shared connection; every write runs in
// its own unit of work with tx-scoped repositories.
type Store struct {
	conn db.DBTX
	uow  db.UnitOfWork
}

var _ EntityStore = (*Store)(nil)

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithUnitOfWork replaces the transaction boundary, e.g. with a failing one in tests.
func WithUnitOfWork(uow db.UnitOfWork) StoreOption {
	return func(s *Store) { s.uow = uow }
}

func NewStore(conn *db.DB, opts ...StoreOption) *Store {
	s := &Store{conn: conn, uow: db.NewUnitOfWork(conn)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// repos groups the repositories bound to one connection or transaction.
type repos struct {
	users        *SQLUserRepo
	clients      *SQLClientRepo
	projects     *SQLProjectRepo
	tasks        *SQLTaskRepo
	activities   *SQLActivityRepo
	projectTypes *SQLProjectTypeRepo
}

func reposFor(conn db.DBTX) repos {
	return repos{
		users:        NewSQLUserRepo(conn),
		clients:      NewSQLClientRepo(conn),
		projects:     NewSQLProjectRepo(conn),
		tasks:        NewSQLTaskRepo(conn),
		activities:   NewSQLActivityRepo(conn),
		projectTypes: NewSQLProjectTypeRepo(conn),
	}
}

func (s *Store) read() repos { return reposFor(s.conn) }

func (s *Store) write(ctx context.Context, fn func(ctx context.Context, r repos) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, reposFor(tx))
	})
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.read().users.List(ctx)
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.read().users.GetByUsername(ctx, username)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.read().users.GetByEmail(ctx, email)
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.users.Create(ctx, u) })
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.users.Update(ctx, u) })
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.users.Delete(ctx, id) })
}

func (s *Store) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.read().clients.List(ctx)
}

func (s *Store) CreateClient(ctx context.Context, c *domain.Client) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.clients.Create(ctx, c) })
}

func (s *Store) UpdateClient(ctx context.Context, c *domain.Client) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.clients.Update(ctx, c) })
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.clients.Delete(ctx, id) })
}

func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.read().projects.List(ctx)
}

func (s *Store) CreateProject(ctx context.Context, p *domain.Project) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.projects.Create(ctx, p) })
}

func (s *Store) UpdateProject(ctx context.Context, p *domain.Project) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.projects.Update(ctx, p) })
}

func (s *Store) UpdateProjectStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.projects.UpdateStatus(ctx, id, status) })
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.projects.Delete(ctx, id) })
}

func (s *Store) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.read().tasks.List(ctx)
}

func (s *Store) CreateTask(ctx context.Context, t *domain.Task) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.tasks.Create(ctx, t) })
}

func (s *Store) UpdateTask(ctx context.Context, t *domain.Task) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.tasks.Update(ctx, t) })
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.tasks.Delete(ctx, id) })
}

func (s *Store) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	return s.read().activities.List(ctx)
}

func (s *Store) CreateActivity(ctx context.Context, a *domain.Activity) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.activities.Create(ctx, a) })
}

func (s *Store) UpdateActivity(ctx context.Context, a *domain.Activity) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.activities.Update(ctx, a) })
}

func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.activities.Delete(ctx, id) })
}

func (s *Store) ListProjectTypes(ctx context.Context) ([]domain.ProjectType, error) {
	return s.read().projectTypes.List(ctx)
}

func (s *Store) CreateProjectType(ctx context.Context, pt *domain.ProjectType) error {
	return s.write(ctx, func(ctx context.Context, r repos) error { return r.projectTypes.Create(ctx, pt) })
}
