package access

import (
	"slices"
	"testing"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	admin      = domain.User{ID: "USER-001", Name: "Ada", Role: domain.RoleAdmin}
	supervisor = domain.User{ID: "USER-002", Name: "Sam", Role: domain.RoleSupervisor}
	senior     = domain.User{ID: "USER-003", Name: "Sia", Role: domain.RoleSenior, Team: domain.Team1}
	assoc      = domain.User{ID: "USER-004", Name: "Abe", Role: domain.RoleAssociate, Team: domain.Team1}
	outsider   = domain.User{ID: "USER-005", Name: "Oli", Role: domain.RoleAssociate, Team: domain.Team2}
	allUsers   = []domain.User{admin, supervisor, senior, assoc, outsider}
)

func projects() []domain.Project {
	return []domain.Project{
		{ID: "PROJ-001", TeamLeaderID: outsider.ID, TeamMemberIDs: []string{assoc.ID}},
		{ID: "PROJ-002", TeamLeaderID: outsider.ID, TeamMemberIDs: []string{}},
		{ID: "PROJ-003", TeamLeaderID: senior.ID, TeamMemberIDs: []string{}},
		{ID: "PROJ-004", TeamLeaderID: admin.ID, TeamMemberIDs: []string{outsider.ID}},
	}
}

func ids(ps []domain.Project) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestVisibleProjects(t *testing.T) {
	cases := []struct {
		name  string
		actor domain.User
		want  []string
	}{
		{"admin sees all", admin, []string{"PROJ-001", "PROJ-002", "PROJ-003", "PROJ-004"}},
		{"supervisor sees all", supervisor, []string{"PROJ-001", "PROJ-002", "PROJ-003", "PROJ-004"}},
		{"senior sees own and team member projects", senior, []string{"PROJ-001", "PROJ-003"}},
		{"associate sees own", assoc, []string{"PROJ-001"}},
		{"outsider sees led and joined", outsider, []string{"PROJ-001", "PROJ-002", "PROJ-004"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := VisibleProjects(tc.actor, projects(), allUsers)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestVisibleProjects_SeniorWithoutTeam(t *testing.T) {
	loner := domain.User{ID: "USER-009", Role: domain.RoleSenior}
	got := VisibleProjects(loner, projects(), allUsers)
	assert.Empty(t, got)
}

func TestCanViewProject(t *testing.T) {
	ps := projects()
	assert.True(t, CanViewProject(senior, ps[0], allUsers))
	assert.False(t, CanViewProject(senior, ps[1], allUsers))
	assert.True(t, CanViewProject(supervisor, ps[1], allUsers))
}

func TestModifyPermissions(t *testing.T) {
	p := domain.Project{ID: "PROJ-001", TeamLeaderID: senior.ID, TeamMemberIDs: []string{assoc.ID}}

	assert.True(t, CanModifyProject(admin, p))
	assert.True(t, CanModifyProject(senior, p))
	assert.False(t, CanModifyProject(assoc, p))
	assert.False(t, CanModifyProject(supervisor, p))

	assert.True(t, CanUpdateStatus(senior, p))
	assert.False(t, CanUpdateStatus(assoc, p))

	assert.True(t, CanModifyTasks(assoc, p))
	assert.False(t, CanModifyTasks(outsider, p))

	assert.True(t, CanAddActivity(assoc, p))
	assert.True(t, CanAddActivity(admin, p))
	assert.False(t, CanAddActivity(outsider, p))
}

func TestCanEditActivity(t *testing.T) {
	a := domain.Activity{ID: "ACT-0001", UserID: assoc.ID}
	assert.True(t, CanEditActivity(assoc, a))
	assert.True(t, CanEditActivity(admin, a))
	assert.False(t, CanEditActivity(senior, a))
}

func TestSupervisableUsers(t *testing.T) {
	assert.Len(t, SupervisableUsers(admin, allUsers), 5)
	assert.Equal(t, []domain.User{senior, assoc}, SupervisableUsers(senior, allUsers))
	assert.Equal(t, []domain.User{assoc}, SupervisableUsers(assoc, allUsers))
	assert.Equal(t, []domain.User{supervisor}, SupervisableUsers(supervisor, allUsers))
}

func TestAssignableLeaders(t *testing.T) {
	names := func(us []domain.User) []string {
		out := []string{}
		for _, u := range us {
			out = append(out, u.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Abe", "Ada", "Oli", "Sam", "Sia"}, names(AssignableLeaders(admin, allUsers, nil)))
	assert.Equal(t, []string{"Abe", "Sia"}, names(AssignableLeaders(senior, allUsers, nil)))
	assert.Equal(t, []string{"Sia"}, names(AssignableLeaders(senior, allUsers, []string{assoc.ID})))
	assert.Equal(t, []string{"Abe"}, names(AssignableLeaders(assoc, allUsers, nil)))

	retired := domain.User{ID: "USER-006", Name: "Ray", Role: domain.RoleAssociate, Team: domain.Team1, Status: domain.UserInactive}
	withRetired := append(slices.Clone(allUsers), retired)
	assert.Equal(t, []string{"Abe", "Sia"}, names(AssignableLeaders(senior, withRetired, nil)))
	assert.NotContains(t, names(AssignableLeaders(admin, withRetired, nil)), "Ray")
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(supervisor))
}
