package cache

import (
	"context"
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Loader is the read surface of the Entity Store.
type Loader interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListActivities(ctx context.Context) ([]domain.Activity, error)
}

// Status is a point-in-time view of the load flags.
type Status struct {
	EssentialLoading  bool                  `json:"essentialLoading"`
	ProjectsLoading   bool                  `json:"projectsLoading"`
	TasksLoading      bool                  `json:"tasksLoading"`
	ActivitiesLoading bool                  `json:"activitiesLoading"`
	Collections       map[domain.Kind]State `json:"collections"`
	LastError         string                `json:"lastError,omitempty"`
}

type loadState struct {
	generation       uint64
	essentialLoading bool
	secondaryLoading bool
	lastErr          error
	secondary        *secondaryRun
}

// secondaryRun tracks one background fetch of projects, tasks and activities.
type secondaryRun struct {
	done chan struct{}
	err  error
}

// Load runs the two-tier initial load. Users and clients are fetched
// concurrently and awaited; an error there is returned and nothing is
// replaced. Projects, tasks and activities are then fetched in the
// background; use Wait to block on them.
func (s *Store) Load(ctx context.Context) error {
	return s.run(ctx, "load")
}

// Refetch discards and rebuilds all five collections. A failure leaves the
// previous contents in place.
func (s *Store) Refetch(ctx context.Context) error {
	return s.run(ctx, "refetch")
}

func (s *Store) run(ctx context.Context, op string) error {
	s.mu.Lock()
	s.load.generation++
	gen := s.load.generation
	s.load.essentialLoading = true
	s.mu.Unlock()

	var (
		users   []domain.User
		clients []domain.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.loader.ListUsers(gctx)
		if err != nil {
			return fmt.Errorf("fetching users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		clients, err = s.loader.ListClients(gctx)
		if err != nil {
			return fmt.Errorf("fetching clients: %w", err)
		}
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	if gen != s.load.generation {
		s.mu.Unlock()
		return err
	}
	s.load.essentialLoading = false
	if err != nil {
		s.load.lastErr = err
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "essential load failed", "op", op, "error", err)
		return err
	}
	s.users.reset(users)
	s.clients.reset(clients)
	s.load.secondaryLoading = true
	run := &secondaryRun{done: make(chan struct{})}
	s.load.secondary = run
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "essential tier loaded", "op", op, "users", len(users), "clients", len(clients))
	go s.loadSecondary(context.WithoutCancel(ctx), op, run)
	return nil
}

func (s *Store) loadSecondary(ctx context.Context, op string, run *secondaryRun) {
	defer close(run.done)

	var (
		projects   []domain.Project
		tasks      []domain.Task
		activities []domain.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if projects, err = s.loader.ListProjects(gctx); err != nil {
			return fmt.Errorf("fetching projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if tasks, err = s.loader.ListTasks(gctx); err != nil {
			return fmt.Errorf("fetching tasks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if activities, err = s.loader.ListActivities(gctx); err != nil {
			return fmt.Errorf("fetching activities: %w", err)
		}
		return nil
	})
	run.err = g.Wait()

	s.mu.Lock()
	if run != s.load.secondary {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "discarding superseded secondary load", "op", op)
		return
	}
	s.load.secondaryLoading = false
	if run.err != nil {
		s.load.lastErr = run.err
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "secondary load failed", "op", op, "error", run.err)
		if s.onSecondaryError != nil {
			s.onSecondaryError(run.err)
		}
		return
	}
	s.projects.reset(projects)
	s.tasks.reset(tasks)
	s.activities.reset(activities)
	s.activities.sortStable(newestFirst)
	clear(s.pending)
	s.load.lastErr = nil
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "secondary tier loaded", "op", op,
		"projects", len(projects), "tasks", len(tasks), "activities", len(activities))
}

// Wait blocks until the most recent background load settles and returns
// its error. It returns nil immediately if none has started.
func (s *Store) Wait(ctx context.Context) error {
	s.mu.RLock()
	run := s.load.secondary
	s.mu.RUnlock()
	if run == nil {
		return nil
	}
	select {
	case <-run.done:
		return run.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{
		EssentialLoading:  s.load.essentialLoading,
		ProjectsLoading:   s.load.secondaryLoading,
		TasksLoading:      s.load.secondaryLoading,
		ActivitiesLoading: s.load.secondaryLoading,
		Collections: map[domain.Kind]State{
			domain.KindUser:     s.users.state,
			domain.KindClient:   s.clients.state,
			domain.KindProject:  s.projects.state,
			domain.KindTask:     s.tasks.state,
			domain.KindActivity: s.activities.state,
		},
	}
	if s.load.lastErr != nil {
		st.LastError = s.load.lastErr.Error()
	}
	return st
}
