package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
)

type taskService struct {
	store    repository.EntityStore
	cache    *cache.Store
	observer UseCaseObserver
}

func NewTaskService(store repository.EntityStore, c *cache.Store, observers ...UseCaseObserver) TaskService {
	return &taskService{store: store, cache: c, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) (err error) {
	defer observe(ctx, s.observer, "create-task", time.Now().UTC(), map[string]any{"project_id": t.ProjectID}, &err)

	if t.Status == "" {
		t.Status = domain.TaskToDo
	}
	if err = validateTask(t); err != nil {
		return err
	}
	if _, ok := s.cache.Project(t.ProjectID); !ok {
		return fmt.Errorf("project %s: %w", t.ProjectID, repository.ErrNotFound)
	}
	if err = s.store.CreateTask(ctx, t); err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	s.cache.AddTask(*t)
	return nil
}

// Update overwrites the task and renames it on every activity logged
// against it.
func (s *taskService) Update(ctx context.Context, t *domain.Task) (err error) {
	defer observe(ctx, s.observer, "update-task", time.Now().UTC(), map[string]any{"task_id": t.ID}, &err)

	if err = validateTask(t); err != nil {
		return err
	}
	t.UserName, t.UserAvatar = "", ""
	if u, ok := s.cache.User(t.UserID); ok {
		t.UserName, t.UserAvatar = u.Name, u.Avatar
	}
	if err = s.store.UpdateTask(ctx, t); err != nil {
		return fmt.Errorf("updating task %s: %w", t.ID, err)
	}
	s.cache.UpdateTask(*t)
	return nil
}

func (s *taskService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-task", time.Now().UTC(), map[string]any{"task_id": id}, &err)

	if err = s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	s.cache.RemoveTask(id)
	return nil
}
