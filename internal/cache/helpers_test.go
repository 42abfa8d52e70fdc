package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// stubLoader serves fixed collections. The *Fn hooks, when set, replace the
// fixed data for that collection.
type stubLoader struct {
	mu         sync.Mutex
	users      []domain.User
	clients    []domain.Client
	projects   []domain.Project
	tasks      []domain.Task
	activities []domain.Activity

	usersErr    error
	clientsErr  error
	projectsErr error

	projectsFn func(ctx context.Context) ([]domain.Project, error)
}

func (l *stubLoader) ListUsers(context.Context) ([]domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.users, l.usersErr
}

func (l *stubLoader) ListClients(context.Context) ([]domain.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.clients, l.clientsErr
}

func (l *stubLoader) ListProjects(ctx context.Context) ([]domain.Project, error) {
	l.mu.Lock()
	fn := l.projectsFn
	projects, err := l.projects, l.projectsErr
	l.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return projects, err
}

func (l *stubLoader) ListTasks(context.Context) ([]domain.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tasks, nil
}

func (l *stubLoader) ListActivities(context.Context) ([]domain.Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activities, nil
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func user(id, name string) domain.User {
	return domain.User{ID: id, Username: name, Name: name, Avatar: domain.AvatarURL(name), Role: domain.RoleAssociate, Status: domain.UserActive}
}

func project(id, clientID, leaderID string) domain.Project {
	return domain.Project{
		ID:            id,
		Name:          "Project " + id,
		ClientID:      clientID,
		TeamLeaderID:  leaderID,
		TeamMemberIDs: []string{},
		TeamMembers:   []domain.User{},
		Status:        domain.ProjectPlanning,
		Priority:      domain.PriorityMedium,
	}
}

func task(id, projectID, name string) domain.Task {
	return domain.Task{ID: id, ProjectID: projectID, Name: name, Status: domain.TaskToDo}
}

func activity(id, taskID, projectID, userID string, date time.Time) domain.Activity {
	return domain.Activity{
		ID:        id,
		TaskID:    taskID,
		ProjectID: projectID,
		UserID:    userID,
		Date:      date,
		StartTime: "09:00",
		EndTime:   "10:00",
	}
}

func activityIDs(as []domain.Activity) []string {
	ids := make([]string, 0, len(as))
	for _, a := range as {
		ids = append(ids, a.ID)
	}
	return ids
}
