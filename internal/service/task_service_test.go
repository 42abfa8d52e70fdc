package service

import (
	"context"
	"testing"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/Neoksnaman/ProTrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateRequiresCachedProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.tasks.Create(ctx, testutil.NewTestTask("PROJ-404", "Orphan"))
	require.ErrorIs(t, err, repository.ErrNotFound)

	tk := testutil.NewTestTask(env.seed.Project.ID, "Review", testutil.WithAssignee(env.seed.Member.ID))
	tk.Status = ""
	require.NoError(t, env.tasks.Create(ctx, tk))
	assert.Equal(t, domain.TaskToDo, tk.Status)
	assert.Equal(t, "Bob", tk.UserName)
	assert.Len(t, env.cache.TasksByProject(env.seed.Project.ID), 2)
}

func TestTaskService_UpdateRenamesActivities(t *testing.T) {
	env := newTestEnv(t)

	tk := *env.seed.Task
	tk.Name = "Fieldwork phase 2"
	tk.Status = domain.TaskInProgress
	require.NoError(t, env.tasks.Update(context.Background(), &tk))

	for _, a := range env.cache.ActivitiesByTask(tk.ID) {
		assert.Equal(t, "Fieldwork phase 2", a.TaskName)
	}
	got, _ := env.cache.Task(tk.ID)
	assert.Equal(t, domain.TaskInProgress, got.Status)
}

func TestTaskService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.tasks.Delete(context.Background(), env.seed.Task.ID))
	assert.Empty(t, env.cache.Tasks())
	assert.Empty(t, env.cache.Activities())

	err := env.tasks.Delete(context.Background(), env.seed.Task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
