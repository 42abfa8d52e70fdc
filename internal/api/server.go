// Package api serves the JSON API, the public status page and /metrics.
// The acting user is named by the X-User-ID header.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/app"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// ActorHeader carries the id of the acting user.
const ActorHeader = "X-User-ID"

type contextKey string

const actorKey contextKey = "actor"

type Server struct {
	app     *app.App
	handler http.Handler
}

// NewServer registers every route. metrics may be nil.
func NewServer(a *app.App, metrics http.Handler) *Server {
	s := &Server{app: a}

	api := http.NewServeMux()
	api.HandleFunc("GET /api/users", s.listUsers)
	api.HandleFunc("POST /api/users", s.createUser)
	api.HandleFunc("PUT /api/users/{id}", s.updateUser)
	api.HandleFunc("DELETE /api/users/{id}", s.deleteUser)

	api.HandleFunc("GET /api/clients", s.listClients)
	api.HandleFunc("POST /api/clients", s.createClient)
	api.HandleFunc("PUT /api/clients/{id}", s.updateClient)
	api.HandleFunc("DELETE /api/clients/{id}", s.deleteClient)

	api.HandleFunc("GET /api/projects", s.listProjects)
	api.HandleFunc("POST /api/projects", s.createProject)
	api.HandleFunc("GET /api/projects/{id}", s.getProject)
	api.HandleFunc("PUT /api/projects/{id}", s.updateProject)
	api.HandleFunc("DELETE /api/projects/{id}", s.deleteProject)
	api.HandleFunc("PUT /api/projects/{id}/status", s.setProjectStatus)
	api.HandleFunc("POST /api/projects/{id}/share", s.shareProject)
	api.HandleFunc("POST /api/projects/{id}/summary", s.summarizeProject)
	api.HandleFunc("GET /api/project-types", s.listProjectTypes)

	api.HandleFunc("GET /api/tasks", s.listTasks)
	api.HandleFunc("POST /api/tasks", s.createTask)
	api.HandleFunc("PUT /api/tasks/{id}", s.updateTask)
	api.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)

	api.HandleFunc("GET /api/activities", s.listActivities)
	api.HandleFunc("POST /api/activities", s.createActivity)
	api.HandleFunc("PUT /api/activities/{id}", s.updateActivity)
	api.HandleFunc("DELETE /api/activities/{id}", s.deleteActivity)

	api.HandleFunc("GET /api/stats/projects/{id}", s.projectStats)
	api.HandleFunc("GET /api/stats/users/{id}", s.userStats)
	api.HandleFunc("POST /api/refetch", s.refetch)
	api.HandleFunc("GET /api/load-status", s.loadStatus)

	mux := http.NewServeMux()
	mux.Handle("/api/", s.withActor(api))
	mux.HandleFunc("GET /status/{token}", s.publicStatus)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	s.handler = s.logRequests(mux)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func actor(r *http.Request) domain.User {
	u, _ := r.Context().Value(actorKey).(domain.User)
	return u
}

// withActor resolves the acting user from the cache. Unknown ids are
// rejected and inactive users are refused.
func (s *Server) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(ActorHeader)
		if id == "" {
			writeError(w, errUnauthenticated)
			return
		}
		u, ok := s.app.Cache.User(id)
		if !ok {
			writeError(w, errUnauthenticated)
			return
		}
		if !u.Active() {
			writeError(w, errForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, u)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.app.Logger.InfoContext(r.Context(), "http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
