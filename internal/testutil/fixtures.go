package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
)

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) { u.Role = r }
}

func WithTeam(t domain.Team) UserOption {
	return func(u *domain.User) { u.Team = t }
}

func WithUserStatus(s domain.UserStatus) UserOption {
	return func(u *domain.User) { u.Status = s }
}

func WithUserID(id string) UserOption {
	return func(u *domain.User) { u.ID = id }
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	u := &domain.User{
		Username: name,
		Name:     name,
		Email:    name + "@example.com",
		Password: "secret",
		Role:     domain.RoleAssociate,
		Team:     domain.Team1,
		Status:   domain.UserActive,
	}
	for _, opt := range opts {
		opt(u)
	}
	u.Normalize()
	return u
}

func NewTestClient(name string) *domain.Client {
	return &domain.Client{Name: name, Address: "1 Main St"}
}

// Project options
type ProjectOption func(*domain.Project)

func WithMembers(ids ...string) ProjectOption {
	return func(p *domain.Project) { p.TeamMemberIDs = ids }
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithDeadline(d time.Time) ProjectOption {
	return func(p *domain.Project) { p.Deadline = d }
}

func WithShareToken(token string) ProjectOption {
	return func(p *domain.Project) { p.ShareToken = token }
}

func WithProjectID(id string) ProjectOption {
	return func(p *domain.Project) { p.ID = id }
}

func NewTestProject(name, clientID, leaderID string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Name:          name,
		Description:   name + " description",
		ClientID:      clientID,
		TeamLeaderID:  leaderID,
		TeamMemberIDs: []string{},
		StartDate:     Date(2026, 1, 5),
		Deadline:      Date(2026, 6, 30),
		Status:        domain.ProjectPlanning,
		Priority:      domain.PriorityMedium,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.Task) { t.UserID = userID }
}

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) { t.ID = id }
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		Name:        name,
		Description: name + " details",
		ProjectID:   projectID,
		Status:      domain.TaskToDo,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithActivityDate(d time.Time) ActivityOption {
	return func(a *domain.Activity) { a.Date = d }
}

func WithTimes(start, end string) ActivityOption {
	return func(a *domain.Activity) {
		a.StartTime = start
		a.EndTime = end
	}
}

func WithActivityID(id string) ActivityOption {
	return func(a *domain.Activity) { a.ID = id }
}

func NewTestActivity(task *domain.Task, userID string, opts ...ActivityOption) *domain.Activity {
	a := &domain.Activity{
		Description: "worked on " + task.Name,
		TaskID:      task.ID,
		TaskName:    task.Name,
		ProjectID:   task.ProjectID,
		UserID:      userID,
		Date:        Date(2026, 2, 10),
		StartTime:   "09:00",
		EndTime:     "10:00",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Seed holds one of each entity created through the store.
type Seed struct {
	Leader   *domain.User
	Member   *domain.User
	Client   *domain.Client
	Project  *domain.Project
	Task     *domain.Task
	Activity *domain.Activity
}

// SeedStore creates a leader, a member, a client, a project, a task and an
// activity through the store, failing the test on any error.
func SeedStore(t *testing.T, store repository.EntityStore) Seed {
	t.Helper()
	ctx := context.Background()

	leader := NewTestUser("Alice", WithRole(domain.RoleSenior))
	member := NewTestUser("Bob")
	for _, u := range []*domain.User{leader, member} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("seeding user: %v", err)
		}
	}
	client := NewTestClient("Acme")
	if err := store.CreateClient(ctx, client); err != nil {
		t.Fatalf("seeding client: %v", err)
	}
	project := NewTestProject("Audit", client.ID, leader.ID, WithMembers(member.ID))
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	task := NewTestTask(project.ID, "Fieldwork")
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("seeding task: %v", err)
	}
	activity := NewTestActivity(task, member.ID)
	if err := store.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("seeding activity: %v", err)
	}
	return Seed{Leader: leader, Member: member, Client: client, Project: project, Task: task, Activity: activity}
}
