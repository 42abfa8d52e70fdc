package api

import (
	"net/http"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

type clientRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Cache.Clients())
}

// createClient is open to every user; new projects may name a new client.
func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c := domain.Client{Name: req.Name, Address: req.Address}
	if err := s.app.Clients.Create(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	if !access.IsAdmin(actor(r)) {
		writeError(w, errForbidden)
		return
	}
	id := r.PathValue("id")
	var req clientRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c, ok := s.app.Cache.Client(id)
	if !ok {
		writeError(w, notFound("client", id))
		return
	}
	setIf(&c.Name, req.Name)
	setIf(&c.Address, req.Address)
	if err := s.app.Clients.Update(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	if !access.IsAdmin(actor(r)) {
		writeError(w, errForbidden)
		return
	}
	if err := s.app.Clients.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
