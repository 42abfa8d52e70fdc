package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/intelligence"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/Neoksnaman/ProTrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_MissingOrUnknown(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, "GET", "/api/projects", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, "GET", "/api/projects", "USER-999", nil).Code)
}

func TestActor_InactiveRefused(t *testing.T) {
	env := newTestEnv(t)
	bob := *env.seed.Member
	bob.Status = domain.UserInactive
	env.app.Cache.UpdateUser(bob)

	rec := env.do(t, "GET", "/api/projects", bob.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", service.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("x: %w", repository.ErrNotFound), http.StatusNotFound},
		{service.ErrReferencedUser, http.StatusConflict},
		{service.ErrReferencedClient, http.StatusConflict},
		{repository.ErrReferenced, http.StatusConflict},
		{service.ErrDuplicateUsername, http.StatusConflict},
		{fmt.Errorf("%w: down", intelligence.ErrSummaryUnavailable), http.StatusBadGateway},
		{errUnauthenticated, http.StatusUnauthorized},
		{errForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "PATCH", "/api/projects", env.admin.ID, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnknownFieldRejected(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/clients", env.admin.ID, map[string]string{"name": "X", "colour": "red"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoadStatusAndRefetch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/load-status", env.admin.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeBody[cache.Status](t, rec)
	assert.False(t, st.EssentialLoading)
	assert.Equal(t, cache.Loaded, st.Collections[domain.KindUser])

	rec = env.do(t, "POST", "/api/refetch", env.admin.ID, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestProjectTypes(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/api/project-types", env.seed.Member.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	types := decodeBody[[]domain.ProjectType](t, rec)
	require.Len(t, types, 1)
	assert.Equal(t, "Audit", types[0].Name)
}

func TestMetricsRouteMounted(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "served by the handler passed in")
}
