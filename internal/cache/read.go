package cache

import (
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.snapshot()
}

func (s *Store) User(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id)
}

func (s *Store) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients.snapshot()
}

func (s *Store) Client(id string) (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients.get(id)
}

// Projects returns every project with staged statuses applied.
func (s *Store) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.projects.snapshot()
	for i := range out {
		s.overlay(&out[i])
	}
	return out
}

func (s *Store) Project(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects.get(id)
	if ok {
		s.overlay(&p)
	}
	return p, ok
}

// CommittedProject returns the project as last confirmed, ignoring any
// staged status.
func (s *Store) CommittedProject(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.get(id)
}

// ProjectByShareToken finds the project published under token.
func (s *Store) ProjectByShareToken(token string) (domain.Project, bool) {
	if token == "" {
		return domain.Project{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects.items {
		if p.ShareToken == token {
			p = p.Clone()
			s.overlay(&p)
			return p, true
		}
	}
	return domain.Project{}, false
}

func (s *Store) overlay(p *domain.Project) {
	if status, ok := s.pending[p.ID]; ok {
		p.Status = status
	}
}

func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.snapshot()
}

func (s *Store) Task(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.get(id)
}

func (s *Store) TasksByProject(projectID string) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.filter(func(t domain.Task) bool { return t.ProjectID == projectID })
}

func (s *Store) Activities() []domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.snapshot()
}

func (s *Store) Activity(id string) (domain.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.get(id)
}

func (s *Store) ActivitiesByProject(projectID string) []domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.filter(func(a domain.Activity) bool { return a.ProjectID == projectID })
}

func (s *Store) ActivitiesByTask(taskID string) []domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.filter(func(a domain.Activity) bool { return a.TaskID == taskID })
}

// Counts reports the size of each collection.
func (s *Store) Counts() map[domain.Kind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[domain.Kind]int{
		domain.KindUser:     len(s.users.items),
		domain.KindClient:   len(s.clients.items),
		domain.KindProject:  len(s.projects.items),
		domain.KindTask:     len(s.tasks.items),
		domain.KindActivity: len(s.activities.items),
	}
}
