package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
)

type activityService struct {
	store    repository.EntityStore
	cache    *cache.Store
	observer UseCaseObserver
}

func NewActivityService(store repository.EntityStore, c *cache.Store, observers ...UseCaseObserver) ActivityService {
	return &activityService{store: store, cache: c, observer: useCaseObserverOrNoop(observers)}
}

// Create logs time against a cached task. The project is taken from the task.
func (s *activityService) Create(ctx context.Context, a *domain.Activity) (err error) {
	defer observe(ctx, s.observer, "log-activity", time.Now().UTC(), map[string]any{"task_id": a.TaskID}, &err)

	if err = validateActivity(a); err != nil {
		return err
	}
	t, ok := s.cache.Task(a.TaskID)
	if !ok {
		return fmt.Errorf("task %s: %w", a.TaskID, repository.ErrNotFound)
	}
	a.ProjectID = t.ProjectID
	if err = s.store.CreateActivity(ctx, a); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	s.cache.AddActivity(*a)
	return nil
}

func (s *activityService) Update(ctx context.Context, a *domain.Activity) (err error) {
	defer observe(ctx, s.observer, "update-activity", time.Now().UTC(), map[string]any{"activity_id": a.ID}, &err)

	if err = validateActivity(a); err != nil {
		return err
	}
	if t, ok := s.cache.Task(a.TaskID); ok {
		a.TaskName, a.ProjectID = t.Name, t.ProjectID
	}
	if u, ok := s.cache.User(a.UserID); ok {
		a.UserName, a.UserAvatar = u.Name, u.Avatar
	}
	if err = s.store.UpdateActivity(ctx, a); err != nil {
		return fmt.Errorf("updating activity %s: %w", a.ID, err)
	}
	s.cache.UpdateActivity(*a)
	return nil
}

func (s *activityService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-activity", time.Now().UTC(), map[string]any{"activity_id": id}, &err)

	if err = s.store.DeleteActivity(ctx, id); err != nil {
		return fmt.Errorf("deleting activity %s: %w", id, err)
	}
	s.cache.RemoveActivity(id)
	return nil
}
