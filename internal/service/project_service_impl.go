package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	store    repository.EntityStore
	cache    *cache.Store
	observer UseCaseObserver
}

func NewProjectService(store repository.EntityStore, c *cache.Store, observers ...UseCaseObserver) ProjectService {
	return &projectService{store: store, cache: c, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "create-project", time.Now().UTC(), map[string]any{"name": p.Name}, &err)

	if p.Status == "" {
		p.Status = domain.ProjectPlanning
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	if p.ShareToken == "" {
		p.ShareToken = uuid.New().String()
	}
	if err = validateProject(p); err != nil {
		return err
	}
	if err = s.store.CreateProject(ctx, p); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	s.cache.AddProject(*p)
	return nil
}

// Update overwrites the project. Client name, leader name and member users
// are recomputed from the cache before the write.
func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "update-project", time.Now().UTC(), map[string]any{"project_id": p.ID}, &err)

	if err = validateProject(p); err != nil {
		return err
	}
	s.denormalize(p)
	if err = s.store.UpdateProject(ctx, p); err != nil {
		return fmt.Errorf("updating project %s: %w", p.ID, err)
	}
	s.cache.UpdateProject(*p)
	return nil
}

// Delete removes the project; the store and the cache both drop its tasks
// and activities.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-project", time.Now().UTC(), map[string]any{"project_id": id}, &err)

	if err = s.store.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	s.cache.RemoveProject(id)
	return nil
}

// SetStatus shows the new status immediately, then writes it. On failure the
// staged value is rolled back and the committed status is shown again.
func (s *projectService) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (p domain.Project, err error) {
	defer observe(ctx, s.observer, "set-project-status", time.Now().UTC(),
		map[string]any{"project_id": id, "status": string(status)}, &err)

	if !status.Valid() {
		return domain.Project{}, invalid("unknown status %q", status)
	}
	p, ok := s.cache.CommittedProject(id)
	if !ok {
		return domain.Project{}, fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}

	s.cache.StageProjectStatus(id, status)
	if err = s.store.UpdateProjectStatus(ctx, id, status); err != nil {
		s.cache.RollbackProjectStatus(id)
		return domain.Project{}, fmt.Errorf("updating status of project %s: %w", id, err)
	}
	p.Status = status
	s.cache.CommitProject(p)
	return p, nil
}

// EnsureShareToken returns the project's share token, minting and storing
// one if it has none yet.
func (s *projectService) EnsureShareToken(ctx context.Context, id string) (token string, err error) {
	defer observe(ctx, s.observer, "share-project", time.Now().UTC(), map[string]any{"project_id": id}, &err)

	p, ok := s.cache.CommittedProject(id)
	if !ok {
		return "", fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}
	if p.ShareToken != "" {
		return p.ShareToken, nil
	}
	p.ShareToken = uuid.New().String()
	if err = s.store.UpdateProject(ctx, &p); err != nil {
		return "", fmt.Errorf("sharing project %s: %w", id, err)
	}
	s.cache.UpdateProject(p)
	return p.ShareToken, nil
}

// ByShareToken serves the public status page.
func (s *projectService) ByShareToken(token string) (*PublicProject, error) {
	p, ok := s.cache.ProjectByShareToken(token)
	if !ok {
		return nil, fmt.Errorf("share token: %w", repository.ErrNotFound)
	}
	return &PublicProject{
		Project:    p,
		Tasks:      s.cache.TasksByProject(p.ID),
		Activities: s.cache.ActivitiesByProject(p.ID),
	}, nil
}

func (s *projectService) denormalize(p *domain.Project) {
	if c, ok := s.cache.Client(p.ClientID); ok {
		p.ClientName = c.Name
	}
	if u, ok := s.cache.User(p.TeamLeaderID); ok {
		p.TeamLeader = u.Name
	}
	if p.TeamMemberIDs == nil {
		p.TeamMemberIDs = []string{}
	}
	p.TeamMembers = make([]domain.User, 0, len(p.TeamMemberIDs))
	for _, id := range p.TeamMemberIDs {
		if u, ok := s.cache.User(id); ok {
			p.TeamMembers = append(p.TeamMembers, u)
		}
	}
}
