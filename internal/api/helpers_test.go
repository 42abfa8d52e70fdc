package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/app"
	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/Neoksnaman/ProTrack/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server *Server
	app    *app.App
	store  *repository.Store
	seed   testutil.Seed
	admin  *domain.User
	// outsider is an associate on another team with no projects.
	outsider *domain.User
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, opts ...app.Option) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, _ := testutil.NewTestStore(t)
	seed := testutil.SeedStore(t, store)
	admin := testutil.NewTestUser("Root", testutil.WithRole(domain.RoleAdmin))
	outsider := testutil.NewTestUser("Eve", testutil.WithTeam(domain.Team2))
	for _, u := range []*domain.User{admin, outsider} {
		require.NoError(t, store.CreateUser(ctx, u))
	}
	require.NoError(t, store.CreateProjectType(ctx, &domain.ProjectType{Name: "Audit"}))

	c := cache.New(store)
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.Wait(ctx))

	opts = append([]app.Option{app.WithClock(func() time.Time { return testNow })}, opts...)
	a := app.New(store, c, opts...)
	return &testEnv{
		server:   NewServer(a, http.NotFoundHandler()),
		app:      a,
		store:    store,
		seed:     seed,
		admin:    admin,
		outsider: outsider,
	}
}

// do sends a request as actorID (no header when empty) and returns the
// recorded response.
func (e *testEnv) do(t *testing.T, method, path, actorID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if actorID != "" {
		req.Header.Set(ActorHeader, actorID)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, rec)["error"]
}
