package cache

import (
	"testing"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUser_RenamesTeamLeader(t *testing.T) {
	s := New(&stubLoader{})
	s.AddUser(domain.User{ID: "USER-001", Name: "Alice"})
	p := project("PROJ-001", "CLIENT-001", "USER-001")
	p.TeamLeader = "Alice"
	s.AddProject(p)

	s.UpdateUser(domain.User{ID: "USER-001", Name: "Alicia"})

	projects := s.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Alicia", projects[0].TeamLeader)
}

func TestUpdateUser_PropagatesToEveryDependent(t *testing.T) {
	s := New(&stubLoader{})
	alice := user("USER-001", "Alice")
	bob := user("USER-002", "Bob")
	s.AddUser(alice)
	s.AddUser(bob)

	p1 := project("PROJ-001", "CLIENT-001", "USER-002")
	p1.TeamMemberIDs = []string{"USER-001"}
	p1.TeamMembers = []domain.User{alice}
	p2 := project("PROJ-002", "CLIENT-001", "USER-002")
	p2.TeamMemberIDs = []string{"USER-002", "USER-001"}
	p2.TeamMembers = []domain.User{bob, alice}
	s.AddProject(p1)
	s.AddProject(p2)

	tk := task("TASK-0001", "PROJ-001", "Plan")
	tk.UserID, tk.UserName = "USER-001", "Alice"
	s.AddTask(tk)
	a := activity("ACT-0001", "TASK-0001", "PROJ-001", "USER-001", day(1))
	a.UserName, a.UserAvatar = "Alice", alice.Avatar
	s.AddActivity(a)

	renamed := user("USER-001", "Zoe")
	s.UpdateUser(renamed)

	for _, p := range s.Projects() {
		for _, m := range p.TeamMembers {
			if m.ID == "USER-001" {
				assert.Equal(t, renamed, m, "project %s", p.ID)
			}
		}
	}
	got, _ := s.Project("PROJ-002")
	assert.Equal(t, "Bob", got.TeamMembers[0].Name, "member order preserved")
	assert.Equal(t, "Zoe", got.TeamMembers[1].Name)

	gotTask, _ := s.Task("TASK-0001")
	assert.Equal(t, "Zoe", gotTask.UserName)
	assert.Equal(t, renamed.Avatar, gotTask.UserAvatar)

	gotActivity, _ := s.Activity("ACT-0001")
	assert.Equal(t, "Zoe", gotActivity.UserName)
	assert.Equal(t, renamed.Avatar, gotActivity.UserAvatar)
}

func TestUpdateTask_RenamesEveryActivity(t *testing.T) {
	s := New(&stubLoader{})
	s.AddTask(task("TASK-0001", "PROJ-001", "Draft"))
	s.AddTask(task("TASK-0002", "PROJ-001", "Other"))
	for i, id := range []string{"ACT-0001", "ACT-0002", "ACT-0003"} {
		a := activity(id, "TASK-0001", "PROJ-001", "USER-001", day(i+1))
		a.TaskName = "Draft"
		s.AddActivity(a)
	}
	other := activity("ACT-0004", "TASK-0002", "PROJ-001", "USER-001", day(9))
	other.TaskName = "Other"
	s.AddActivity(other)

	s.UpdateTask(task("TASK-0001", "PROJ-001", "Final"))

	for _, a := range s.ActivitiesByTask("TASK-0001") {
		assert.Equal(t, "Final", a.TaskName)
	}
	got, _ := s.Activity("ACT-0004")
	assert.Equal(t, "Other", got.TaskName)
}

func TestUpdateClient_RenamesProjects(t *testing.T) {
	s := New(&stubLoader{})
	s.AddClient(domain.Client{ID: "CLIENT-001", Name: "Acme"})
	for _, id := range []string{"PROJ-001", "PROJ-002"} {
		p := project(id, "CLIENT-001", "USER-001")
		p.ClientName = "Acme"
		s.AddProject(p)
	}

	s.UpdateClient(domain.Client{ID: "CLIENT-001", Name: "Acme Corp"})

	for _, p := range s.Projects() {
		assert.Equal(t, "Acme Corp", p.ClientName)
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	build := func() *Store {
		s := New(&stubLoader{})
		s.AddUser(user("USER-001", "Alice"))
		p := project("PROJ-001", "CLIENT-001", "USER-001")
		p.TeamMemberIDs = []string{"USER-001"}
		p.TeamMembers = []domain.User{user("USER-001", "Alice")}
		s.AddProject(p)
		s.AddActivity(activity("ACT-0001", "TASK-0001", "PROJ-001", "USER-001", day(1)))
		return s
	}
	u := user("USER-001", "Alicia")

	once := build()
	once.UpdateUser(u)
	twice := build()
	twice.UpdateUser(u)
	twice.UpdateUser(u)

	assert.Equal(t, once.Users(), twice.Users())
	assert.Equal(t, once.Projects(), twice.Projects())
	assert.Equal(t, once.Activities(), twice.Activities())
}

func TestUpdate_MissingIDIsNoOp(t *testing.T) {
	s := New(&stubLoader{})
	s.AddUser(user("USER-001", "Alice"))
	p := project("PROJ-001", "CLIENT-001", "USER-001")
	p.TeamLeader = "Alice"
	s.AddProject(p)
	before := s.Projects()

	s.UpdateUser(domain.User{ID: "USER-999", Name: "Ghost"})
	s.UpdateProject(project("PROJ-999", "CLIENT-001", "USER-001"))
	s.UpdateTask(task("TASK-9999", "PROJ-001", "Ghost"))

	assert.Equal(t, []domain.User{user("USER-001", "Alice")}, s.Users())
	assert.Equal(t, before, s.Projects())
	assert.Empty(t, s.Tasks())
}

func TestRemoveProject_CascadesToTasksAndActivities(t *testing.T) {
	s := New(&stubLoader{})
	s.AddProject(project("PROJ-001", "CLIENT-001", "USER-001"))
	s.AddProject(project("PROJ-002", "CLIENT-001", "USER-001"))
	s.AddTask(task("TASK-0001", "PROJ-001", "t1"))
	s.AddTask(task("TASK-0002", "PROJ-001", "t2"))
	s.AddTask(task("TASK-0003", "PROJ-002", "t3"))
	s.AddActivity(activity("ACT-0001", "TASK-0001", "PROJ-001", "USER-001", day(1)))
	s.AddActivity(activity("ACT-0002", "TASK-0002", "PROJ-001", "USER-001", day(2)))
	s.AddActivity(activity("ACT-0003", "TASK-0003", "PROJ-002", "USER-001", day(3)))

	s.RemoveProject("PROJ-001")

	assert.Empty(t, s.TasksByProject("PROJ-001"))
	assert.Empty(t, s.ActivitiesByProject("PROJ-001"))
	assert.Len(t, s.Tasks(), 1)
	assert.Equal(t, []string{"ACT-0003"}, activityIDs(s.Activities()))
	_, ok := s.Project("PROJ-001")
	assert.False(t, ok)
}

func TestRemoveProject_Scenario(t *testing.T) {
	s := New(&stubLoader{})
	s.AddProject(domain.Project{ID: "PROJ-001"})
	s.AddTask(domain.Task{ID: "TASK-001", ProjectID: "PROJ-001"})
	s.AddActivity(domain.Activity{ID: "ACT-001", ProjectID: "PROJ-001", TaskID: "TASK-001"})

	s.RemoveProject("PROJ-001")

	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.Activities())
}

func TestRemoveTask_CascadesToActivities(t *testing.T) {
	s := New(&stubLoader{})
	s.AddTask(task("TASK-0001", "PROJ-001", "t1"))
	s.AddTask(task("TASK-0002", "PROJ-001", "t2"))
	s.AddActivity(activity("ACT-0001", "TASK-0001", "PROJ-001", "USER-001", day(1)))
	s.AddActivity(activity("ACT-0002", "TASK-0001", "PROJ-001", "USER-001", day(2)))
	s.AddActivity(activity("ACT-0003", "TASK-0002", "PROJ-001", "USER-001", day(3)))

	s.RemoveTask("TASK-0001")

	assert.Empty(t, s.ActivitiesByTask("TASK-0001"))
	assert.Equal(t, []string{"ACT-0003"}, activityIDs(s.Activities()))
}

func TestRemove_UncachedParentStillEvictsDependents(t *testing.T) {
	s := New(&stubLoader{})
	s.AddTask(task("TASK-0001", "PROJ-001", "orphan"))
	s.AddActivity(activity("ACT-0001", "TASK-0001", "PROJ-001", "USER-001", day(1)))
	s.AddActivity(activity("ACT-0002", "TASK-0009", "PROJ-002", "USER-001", day(2)))
	s.AddActivity(activity("ACT-0003", "TASK-0003", "PROJ-002", "USER-001", day(3)))

	s.RemoveProject("PROJ-001")

	assert.Empty(t, s.Tasks())
	assert.Equal(t, []string{"ACT-0003", "ACT-0002"}, activityIDs(s.Activities()))

	s.RemoveTask("TASK-0009")

	assert.Equal(t, []string{"ACT-0003"}, activityIDs(s.Activities()))
}

func TestAddActivity_KeepsNewestFirstStable(t *testing.T) {
	s := New(&stubLoader{})
	s.AddActivity(activity("ACT-0001", "T", "P", "U", day(5)))
	s.AddActivity(activity("ACT-0002", "T", "P", "U", day(10)))
	s.AddActivity(activity("ACT-0003", "T", "P", "U", day(5)))
	s.AddActivity(activity("ACT-0004", "T", "P", "U", day(1)))
	s.AddActivity(activity("ACT-0005", "T", "P", "U", day(10)))

	acts := s.Activities()
	assert.Equal(t, []string{"ACT-0002", "ACT-0005", "ACT-0001", "ACT-0003", "ACT-0004"}, activityIDs(acts))
	for i := 1; i < len(acts); i++ {
		assert.False(t, acts[i].Date.After(acts[i-1].Date))
	}

	// Index stays consistent after re-sorting.
	got, ok := s.Activity("ACT-0004")
	require.True(t, ok)
	assert.Equal(t, day(1), got.Date)
}

func TestCollectionsKeepInsertionOrder(t *testing.T) {
	s := New(&stubLoader{})
	s.AddClient(domain.Client{ID: "CLIENT-002", Name: "B"})
	s.AddClient(domain.Client{ID: "CLIENT-001", Name: "A"})
	s.AddClient(domain.Client{ID: "CLIENT-003", Name: "C"})
	s.RemoveClient("CLIENT-001")

	clients := s.Clients()
	require.Len(t, clients, 2)
	assert.Equal(t, "CLIENT-002", clients[0].ID)
	assert.Equal(t, "CLIENT-003", clients[1].ID)
	_, ok := s.Client("CLIENT-003")
	assert.True(t, ok)
}

func TestReadsReturnCopies(t *testing.T) {
	s := New(&stubLoader{})
	p := project("PROJ-001", "CLIENT-001", "USER-001")
	p.TeamMemberIDs = []string{"USER-002"}
	p.TeamMembers = []domain.User{user("USER-002", "Bob")}
	s.AddProject(p)

	// Mutating the argument after the call must not leak in.
	p.TeamMemberIDs[0] = "USER-999"

	got := s.Projects()
	got[0].Name = "changed"
	got[0].TeamMembers[0].Name = "changed"

	again, _ := s.Project("PROJ-001")
	assert.Equal(t, "Project PROJ-001", again.Name)
	assert.Equal(t, "Bob", again.TeamMembers[0].Name)
	assert.Equal(t, []string{"USER-002"}, again.TeamMemberIDs)
}

func TestStagedProjectStatus(t *testing.T) {
	s := New(&stubLoader{})
	s.AddProject(project("PROJ-001", "CLIENT-001", "USER-001"))

	s.StageProjectStatus("PROJ-001", domain.ProjectBlocked)
	shown, _ := s.Project("PROJ-001")
	assert.Equal(t, domain.ProjectBlocked, shown.Status)
	committed, _ := s.CommittedProject("PROJ-001")
	assert.Equal(t, domain.ProjectPlanning, committed.Status)

	s.RollbackProjectStatus("PROJ-001")
	shown, _ = s.Project("PROJ-001")
	assert.Equal(t, domain.ProjectPlanning, shown.Status)

	s.StageProjectStatus("PROJ-001", domain.ProjectCompleted)
	confirmed := committed
	confirmed.Status = domain.ProjectCompleted
	s.CommitProject(confirmed)
	shown, _ = s.Project("PROJ-001")
	assert.Equal(t, domain.ProjectCompleted, shown.Status)
	committed, _ = s.CommittedProject("PROJ-001")
	assert.Equal(t, domain.ProjectCompleted, committed.Status)
}

func TestStageProjectStatus_UnknownProjectIgnored(t *testing.T) {
	s := New(&stubLoader{})
	s.StageProjectStatus("PROJ-404", domain.ProjectBlocked)
	s.AddProject(project("PROJ-404", "CLIENT-001", "USER-001"))

	got, _ := s.Project("PROJ-404")
	assert.Equal(t, domain.ProjectPlanning, got.Status)
}

func TestProjectByShareToken(t *testing.T) {
	s := New(&stubLoader{})
	p := project("PROJ-001", "CLIENT-001", "USER-001")
	p.ShareToken = "tok-123"
	s.AddProject(p)
	s.AddProject(project("PROJ-002", "CLIENT-001", "USER-001"))

	got, ok := s.ProjectByShareToken("tok-123")
	require.True(t, ok)
	assert.Equal(t, "PROJ-001", got.ID)

	_, ok = s.ProjectByShareToken("")
	assert.False(t, ok)
	_, ok = s.ProjectByShareToken("missing")
	assert.False(t, ok)
}

func TestCounts(t *testing.T) {
	s := New(&stubLoader{})
	s.AddUser(user("USER-001", "Alice"))
	s.AddTask(task("TASK-0001", "PROJ-001", "t"))
	s.AddTask(task("TASK-0002", "PROJ-001", "t"))

	counts := s.Counts()
	assert.Equal(t, 1, counts[domain.KindUser])
	assert.Equal(t, 2, counts[domain.KindTask])
	assert.Equal(t, 0, counts[domain.KindActivity])
}

func TestRuleTables(t *testing.T) {
	assert.Contains(t, Propagations(), Rule{domain.KindUser, "name", domain.KindProject, "teamLeader"})
	assert.Contains(t, Propagations(), Rule{domain.KindTask, "name", domain.KindActivity, "taskName"})
	assert.Contains(t, Propagations(), Rule{domain.KindClient, "name", domain.KindProject, "clientName"})
	assert.Equal(t, []Rule{
		{domain.KindProject, "id", domain.KindTask, "projectId"},
		{domain.KindProject, "id", domain.KindActivity, "projectId"},
		{domain.KindTask, "id", domain.KindActivity, "taskId"},
	}, Cascades())
}
