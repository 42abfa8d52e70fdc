// Package cache holds the in-memory mirror of the five entity collections
// that every view reads from during a session.
package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// State is the lifecycle of one collection.
type State int

const (
	Uninitialized State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "uninitialized"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "loaded":
		*s = Loaded
	case "uninitialized":
		*s = Uninitialized
	default:
		return fmt.Errorf("unknown collection state %q", b)
	}
	return nil
}

// Store is the Client Cache. Collections are only mutated through its
// methods; every read returns copies. Operations never fail.
type Store struct {
	mu sync.RWMutex

	users      *collection[domain.User]
	clients    *collection[domain.Client]
	projects   *collection[domain.Project]
	tasks      *collection[domain.Task]
	activities *collection[domain.Activity]

	// pending holds staged project statuses shown ahead of confirmation.
	pending map[string]domain.ProjectStatus

	loader           Loader
	logger           *slog.Logger
	onSecondaryError func(error)
	load             loadState
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSecondaryErrorHandler registers fn to be called when the background
// tier of a load fails.
func WithSecondaryErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onSecondaryError = fn }
}

func New(loader Loader, opts ...Option) *Store {
	s := &Store{
		users:      newCollection(withoutPassword),
		clients:    newCollection[domain.Client](nil),
		projects:   newCollection(cloneProject),
		tasks:      newCollection[domain.Task](nil),
		activities: newCollection[domain.Activity](nil),
		pending:    map[string]domain.ProjectStatus{},
		loader:     loader,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Passwords never enter the cache, whether a user arrives on its own or
// embedded in a project's team.
func withoutPassword(u domain.User) domain.User {
	u.Password = ""
	return u
}

func cloneProject(p domain.Project) domain.Project {
	p = p.Clone()
	for i := range p.TeamMembers {
		p.TeamMembers[i].Password = ""
	}
	return p
}

// newestFirst orders activities by date descending.
func newestFirst(a, b domain.Activity) int {
	return b.Date.Compare(a.Date)
}

// --- Users ---

func (s *Store) AddUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users.add(u)
}

// UpdateUser replaces the cached user and refreshes every denormalized copy
// of it on projects, tasks and activities. Unknown ids are ignored.
func (s *Store) UpdateUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u = withoutPassword(u)
	if !s.users.replace(u) {
		return
	}
	propagate(s, userPropagations, u)
}

func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users.remove(id)
}

// --- Clients ---

func (s *Store) AddClient(c domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients.add(c)
}

func (s *Store) UpdateClient(c domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.clients.replace(c) {
		return
	}
	propagate(s, clientPropagations, c)
}

func (s *Store) RemoveClient(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients.remove(id)
}

// --- Projects ---

func (s *Store) AddProject(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects.add(p)
}

func (s *Store) UpdateProject(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects.replace(p)
}

// RemoveProject evicts the project with its tasks and activities. Dependents
// are evicted even when the project itself is not cached.
func (s *Store) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects.remove(id)
	delete(s.pending, id)
	evict(s, projectCascades, id)
}

// StageProjectStatus shows status on the project until it is committed or
// rolled back.
func (s *Store) StageProjectStatus(id string, status domain.ProjectStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects.index[id]; !ok {
		return
	}
	s.pending[id] = status
}

// CommitProject applies the confirmed project and clears any staged status.
func (s *Store) CommitProject(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, p.ID)
	s.projects.replace(p)
}

// RollbackProjectStatus drops the staged status so reads show the
// committed value again.
func (s *Store) RollbackProjectStatus(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// --- Tasks ---

func (s *Store) AddTask(t domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.add(t)
}

func (s *Store) UpdateTask(t domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tasks.replace(t) {
		return
	}
	propagate(s, taskPropagations, t)
}

// RemoveTask evicts the task with its activities, whether or not the task
// itself is cached.
func (s *Store) RemoveTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.remove(id)
	evict(s, taskCascades, id)
}

// --- Activities ---

// AddActivity inserts a and keeps the collection newest first. Activities
// sharing a date keep their relative order.
func (s *Store) AddActivity(a domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities.add(a)
	s.activities.sortStable(newestFirst)
}

func (s *Store) UpdateActivity(a domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities.replace(a)
}

func (s *Store) RemoveActivity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities.remove(id)
}
