package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/app"
	"github.com/Neoksnaman/ProTrack/internal/backup"
	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/intelligence"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/Neoksnaman/ProTrack/internal/service"
	"github.com/Neoksnaman/ProTrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testApp wires a full App over an in-memory DB holding the standard seed.
func testApp(t *testing.T, opts ...app.Option) (*App, testutil.Seed) {
	t.Helper()
	ctx := context.Background()

	store, _ := testutil.NewTestStore(t)
	seed := testutil.SeedStore(t, store)
	c := cache.New(store)
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.Wait(ctx))

	opts = append([]app.Option{
		app.WithClock(func() time.Time { return cliNow }),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return &App{App: app.New(store, c, opts...), Addr: ":0"}, seed
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a)
	require.NoError(t, err)
	assert.Contains(t, out, "protrack")
	assert.Contains(t, out, "project")
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/protrack.yaml", ConfigPath([]string{"project", "list", "--config", "/etc/protrack.yaml", "--overdue"}))
	assert.Equal(t, "x.yaml", ConfigPath([]string{"--config=x.yaml"}))
	assert.Empty(t, ConfigPath([]string{"serve", "--addr", ":9000"}))
}

// --- users and clients ---

func TestUserCmd_AddAndList(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "user", "add",
		"--username", "carol", "--name", "Carol", "--email", "carol@example.com",
		"--role", "senior", "--team", "Team 2")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user Carol [USER-003]")

	u, ok := a.Cache.User("USER-003")
	require.True(t, ok)
	assert.Equal(t, domain.RoleSenior, u.Role)
	assert.Equal(t, domain.Team2, u.Team)

	out, err = executeCmd(t, a, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Carol")
}

func TestUserCmd_RejectsUnknownRole(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "user", "add",
		"--username", "x", "--name", "X", "--email", "x@example.com", "--role", "Boss")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestUserCmd_UpdateRenamesEverywhere(t *testing.T) {
	a, seed := testApp(t)

	_, err := executeCmd(t, a, "user", "update", seed.Member.ID, "--name", "Robert")
	require.NoError(t, err)

	p, _ := a.Cache.Project(seed.Project.ID)
	require.Len(t, p.TeamMembers, 1)
	assert.Equal(t, "Robert", p.TeamMembers[0].Name)
	act, _ := a.Cache.Activity(seed.Activity.ID)
	assert.Equal(t, "Robert", act.UserName)
}

func TestUserCmd_RemoveReferenced(t *testing.T) {
	a, seed := testApp(t)

	_, err := executeCmd(t, a, "user", "remove", seed.Member.ID, "--yes")
	assert.ErrorIs(t, err, service.ErrReferencedUser)

	_, err = executeCmd(t, a, "user", "remove", "USER-999", "--yes")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientCmd_UpdatePropagates(t *testing.T) {
	a, seed := testApp(t)

	out, err := executeCmd(t, a, "client", "update", seed.Client.ID, "--name", "Acme Corp")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated client Acme Corp")

	p, _ := a.Cache.Project(seed.Project.ID)
	assert.Equal(t, "Acme Corp", p.ClientName)

	_, err = executeCmd(t, a, "client", "remove", seed.Client.ID, "-y")
	assert.ErrorIs(t, err, service.ErrReferencedClient)
}

// --- projects ---

func TestProjectCmd_AddWithClientName(t *testing.T) {
	a, seed := testApp(t)

	out, err := executeCmd(t, a, "project", "add",
		"--name", "Tax Review", "--client-name", "Globex", "--leader", seed.Leader.ID,
		"--members", seed.Member.ID, "--start", "2026-03-01", "--deadline", "2026-04-30",
		"--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Tax Review [PROJ-002]")

	p, ok := a.Cache.Project("PROJ-002")
	require.True(t, ok)
	assert.Equal(t, "Globex", p.ClientName)
	assert.Equal(t, domain.PriorityHigh, p.Priority)
	assert.Equal(t, []string{seed.Member.ID}, p.TeamMemberIDs)
	assert.NotEmpty(t, p.ShareToken)
}

func TestProjectCmd_AddRequiresClient(t *testing.T) {
	a, seed := testApp(t)

	_, err := executeCmd(t, a, "project", "add",
		"--name", "X", "--leader", seed.Leader.ID, "--start", "2026-03-01", "--deadline", "2026-04-30")
	require.Error(t, err)

	_, err = executeCmd(t, a, "project", "add",
		"--name", "X", "--client", seed.Client.ID, "--leader", seed.Leader.ID,
		"--start", "03/01/2026", "--deadline", "2026-04-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestProjectCmd_ListFiltersAndActor(t *testing.T) {
	a, seed := testApp(t)
	eve := testutil.NewTestUser("Eve", testutil.WithTeam(domain.Team2))
	require.NoError(t, a.Users.Create(context.Background(), eve))

	out, err := executeCmd(t, a, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Audit")

	out, err = executeCmd(t, a, "project", "list", "--status", "Completed")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found.")

	out, err = executeCmd(t, a, "project", "list", "-q", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "Audit")

	out, err = executeCmd(t, a, "project", "list", "--as", eve.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found.")

	out, err = executeCmd(t, a, "project", "list", "--as", seed.Member.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Audit")

	_, err = executeCmd(t, a, "project", "list", "--as", "USER-999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectCmd_Show(t *testing.T) {
	a, seed := testApp(t)

	out, err := executeCmd(t, a, "project", "show", seed.Project.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Audit")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "Fieldwork")
	assert.Contains(t, out, "1h logged")
}

func TestProjectCmd_Status(t *testing.T) {
	a, seed := testApp(t)

	out, err := executeCmd(t, a, "project", "status", seed.Project.ID, "in progress")
	require.NoError(t, err)
	assert.Contains(t, out, "In Progress")
	p, _ := a.Cache.Project(seed.Project.ID)
	assert.Equal(t, domain.ProjectInProgress, p.Status)

	_, err = executeCmd(t, a, "project", "status", seed.Project.ID, "paused")
	require.Error(t, err)
	p, _ = a.Cache.Project(seed.Project.ID)
	assert.Equal(t, domain.ProjectInProgress, p.Status)
}

func TestProjectCmd_Share(t *testing.T) {
	a, seed := testApp(t)

	out, err := executeCmd(t, a, "project", "share", seed.Project.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "/status/")

	again, err := executeCmd(t, a, "project", "share", seed.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestProjectCmd_RemoveAsksOnTerminal(t *testing.T) {
	a, seed := testApp(t)
	a.IsInteractive = func() bool { return true }
	var asked string
	a.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	out, err := executeCmd(t, a, "project", "remove", seed.Project.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, asked, "Audit")
	assert.Len(t, a.Cache.Projects(), 1)

	out, err = executeCmd(t, a, "project", "remove", seed.Project.ID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed project")
	assert.Empty(t, a.Cache.Projects())
	assert.Empty(t, a.Cache.Tasks())
	assert.Empty(t, a.Cache.Activities())
}

type stubSummarizer struct{}

func (stubSummarizer) SummarizeProject(context.Context, intelligence.ProjectFacts) (*intelligence.ProjectSummary, error) {
	return &intelligence.ProjectSummary{ExecutiveSummary: "On track", RiskAssessment: "Low", ActionableSuggestions: "Continue"}, nil
}

func (stubSummarizer) SuggestActions(context.Context, intelligence.ProjectFacts) (*intelligence.ActionPlan, error) {
	return &intelligence.ActionPlan{ExecutiveSummary: "Fine", RiskAssessment: "Low", BottleneckAnalysis: "None", Suggestions: []string{"Add a reviewer"}}, nil
}

func (stubSummarizer) AssessRisk(context.Context, intelligence.ProjectFacts) (*intelligence.RiskReport, error) {
	return &intelligence.RiskReport{RiskAssessment: "Low", BottleneckAnalysis: "Sign-off"}, nil
}

func TestProjectCmd_SummaryDisabled(t *testing.T) {
	a, seed := testApp(t)

	_, err := executeCmd(t, a, "project", "summary", seed.Project.ID)
	assert.ErrorIs(t, err, intelligence.ErrSummaryUnavailable)
}

func TestProjectCmd_SummaryKinds(t *testing.T) {
	a, seed := testApp(t, app.WithSummarizer(stubSummarizer{}))

	out, err := executeCmd(t, a, "project", "summary", seed.Project.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "On track")

	out, err = executeCmd(t, a, "project", "summary", seed.Project.ID, "--kind", "suggestions")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Add a reviewer")

	out, err = executeCmd(t, a, "project", "summary", seed.Project.ID, "--kind", "risk")
	require.NoError(t, err)
	assert.Contains(t, out, "Sign-off")

	_, err = executeCmd(t, a, "project", "summary", seed.Project.ID, "--kind", "haiku")
	assert.Error(t, err)

	_, err = executeCmd(t, a, "project", "summary", "PROJ-999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- tasks and activities ---

func TestTaskCmd_Lifecycle(t *testing.T) {
	a, seed := testApp(t)

	out, err := executeCmd(t, a, "task", "add", "--project", seed.Project.ID, "--name", "Reporting")
	require.NoError(t, err)
	assert.Contains(t, out, "[TASK-0002]")

	_, err = executeCmd(t, a, "task", "update", seed.Task.ID, "--name", "Onsite work", "--status", "done")
	require.NoError(t, err)
	act, _ := a.Cache.Activity(seed.Activity.ID)
	assert.Equal(t, "Onsite work", act.TaskName)

	out, err = executeCmd(t, a, "task", "list", "--project", seed.Project.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Reporting")
	assert.Contains(t, out, "Onsite work")

	_, err = executeCmd(t, a, "task", "remove", seed.Task.ID, "-y")
	require.NoError(t, err)
	assert.Empty(t, a.Cache.Activities())
	assert.Len(t, a.Cache.Tasks(), 1)

	_, err = executeCmd(t, a, "task", "add", "--project", "PROJ-999", "--name", "Orphan")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityCmd_AddAndList(t *testing.T) {
	a, seed := testApp(t)

	_, err := executeCmd(t, a, "activity", "add",
		"--task", seed.Task.ID, "--activity", "Review", "--start", "13:00", "--end", "14:30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user or --as")

	out, err := executeCmd(t, a, "activity", "add", "--as", seed.Leader.ID,
		"--task", seed.Task.ID, "--activity", "Review", "--start", "13:00", "--end", "14:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 1h 30m on Fieldwork")

	acts := a.Cache.Activities()
	require.Len(t, acts, 2)
	assert.Equal(t, "2026-03-01", acts[0].Date.Format(domain.DateLayout))
	assert.Equal(t, seed.Leader.ID, acts[0].UserID)

	out, err = executeCmd(t, a, "activity", "list", "--user", seed.Member.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "Review")

	_, err = executeCmd(t, a, "log", "add", "--user", seed.Member.ID,
		"--task", seed.Task.ID, "--activity", "Backwards", "--start", "10:00", "--end", "09:00")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestActivityCmd_UpdateAndRemove(t *testing.T) {
	a, seed := testApp(t)

	_, err := executeCmd(t, a, "activity", "update", seed.Activity.ID, "--end", "11:00")
	require.NoError(t, err)
	assert.Equal(t, 120, a.Stats.Project(seed.Project.ID).TotalMinutes)

	out, err := executeCmd(t, a, "activity", "remove", seed.Activity.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed activity")
	assert.Empty(t, a.Cache.Activities())
}

// --- stats, backup and refetch ---

func TestStatsCmd(t *testing.T) {
	a, seed := testApp(t)

	out, err := executeCmd(t, a, "stats", "project", seed.Project.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "0/1 done")
	assert.Contains(t, out, "1h")

	out, err = executeCmd(t, a, "stats", "user", seed.Member.ID, "--as", seed.Leader.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Audit")

	_, err = executeCmd(t, a, "stats", "user", seed.Leader.ID, "--as", seed.Member.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "may not review")
}

func TestBackupCmd(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "backup")
	assert.ErrorIs(t, err, app.ErrNoBackupSink)

	dir := t.TempDir()
	sink, err := backup.NewFileSink(dir)
	require.NoError(t, err)
	a, _ = testApp(t, app.WithBackups(backup.NewWriter(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))))

	out, err := executeCmd(t, a, "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "protrack/snapshot-20260301T120000Z.json")

	data, err := os.ReadFile(filepath.Join(dir, "protrack", "snapshot-20260301T120000Z.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Fieldwork")
}

func TestRefetchCmd(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "refetch")
	require.NoError(t, err)
	assert.Contains(t, out, "activity")
	assert.Contains(t, out, "loaded")
	assert.NotContains(t, out, "uninitialized")
}
