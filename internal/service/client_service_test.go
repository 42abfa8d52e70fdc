package service

import (
	"context"
	"testing"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService_DeleteReferencedRejected(t *testing.T) {
	env := newTestEnv(t)

	err := env.clients.Delete(context.Background(), "CLIENT-001")
	require.ErrorIs(t, err, ErrReferencedClient)
	assert.Equal(t, 0, env.store.deleteCalls())

	clients := env.cache.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "CLIENT-001", clients[0].ID)
}

func TestClientService_UpdateRenamesProjects(t *testing.T) {
	env := newTestEnv(t)

	c := *env.seed.Client
	c.Name = "Acme Holdings"
	require.NoError(t, env.clients.Update(context.Background(), &c))

	p, _ := env.cache.Project(env.seed.Project.ID)
	assert.Equal(t, "Acme Holdings", p.ClientName)
}

func TestClientService_CreateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := &domain.Client{Name: "Globex", Address: "Cypress Creek"}
	require.NoError(t, env.clients.Create(ctx, c))
	assert.Equal(t, "CLIENT-002", c.ID)
	require.NoError(t, env.clients.Delete(ctx, c.ID))
	assert.Len(t, env.cache.Clients(), 1)

	assert.ErrorIs(t, env.clients.Create(ctx, &domain.Client{Name: "  "}), ErrInvalidInput)
}

func TestClientService_GetOrCreateByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	existing, err := env.clients.GetOrCreateByName(ctx, "  acme ")
	require.NoError(t, err)
	assert.Equal(t, env.seed.Client.ID, existing.ID)

	created, err := env.clients.GetOrCreateByName(ctx, "Initech")
	require.NoError(t, err)
	assert.Equal(t, "CLIENT-002", created.ID)
	assert.Len(t, env.cache.Clients(), 2)
}
