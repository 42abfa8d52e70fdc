package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/Neoksnaman/ProTrack/internal/testutil"
	"github.com/stretchr/testify/require"
)

// spyStore wraps a real store, counts delete calls and can inject failures.
type spyStore struct {
	repository.EntityStore

	mu           sync.Mutex
	deletes      int
	statusErr    error
	updateErr    error
	beforeStatus func(status domain.ProjectStatus)
}

func (s *spyStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	s.deletes++
	s.mu.Unlock()
	return s.EntityStore.DeleteUser(ctx, id)
}

func (s *spyStore) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	s.deletes++
	s.mu.Unlock()
	return s.EntityStore.DeleteClient(ctx, id)
}

func (s *spyStore) UpdateProject(ctx context.Context, p *domain.Project) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	return s.EntityStore.UpdateProject(ctx, p)
}

func (s *spyStore) UpdateProjectStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	if s.beforeStatus != nil {
		s.beforeStatus(status)
	}
	if s.statusErr != nil {
		return s.statusErr
	}
	return s.EntityStore.UpdateProjectStatus(ctx, id, status)
}

func (s *spyStore) deleteCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}

type testEnv struct {
	store      *spyStore
	cache      *cache.Store
	seed       testutil.Seed
	users      UserService
	clients    ClientService
	projects   ProjectService
	tasks      TaskService
	activities ActivityService
	stats      StatsService
}

// newTestEnv seeds a store, loads a cache from it and wires every service.
func newTestEnv(t *testing.T, observers ...UseCaseObserver) *testEnv {
	t.Helper()
	ctx := context.Background()

	real, _ := testutil.NewTestStore(t)
	seed := testutil.SeedStore(t, real)
	spy := &spyStore{EntityStore: real}

	c := cache.New(spy)
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.Wait(ctx))

	return &testEnv{
		store:      spy,
		cache:      c,
		seed:       seed,
		users:      NewUserService(spy, c, observers...),
		clients:    NewClientService(spy, c, observers...),
		projects:   NewProjectService(spy, c, observers...),
		tasks:      NewTaskService(spy, c, observers...),
		activities: NewActivityService(spy, c, observers...),
		stats:      NewStatsService(c),
	}
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
