package api

import (
	"net/http"
	"slices"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

func (s *Server) projectStats(w http.ResponseWriter, r *http.Request) {
	p, err := s.visibleProject(r, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.app.Stats.Project(p.ID))
}

// userStats is limited to users the actor may supervise.
func (s *Server) userStats(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	allowed := access.SupervisableUsers(actor(r), s.app.Cache.Users())
	if !slices.ContainsFunc(allowed, func(u domain.User) bool { return u.ID == id }) {
		writeError(w, notFound("user", id))
		return
	}
	writeJSON(w, http.StatusOK, s.app.Stats.User(id, s.app.Now()))
}

// refetch reloads users and clients before answering; projects, tasks and
// activities continue loading in the background.
func (s *Server) refetch(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Cache.Refetch(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, s.app.Cache.Status())
}

func (s *Server) loadStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Cache.Status())
}
