package api

import (
	"net/http"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

type userRequest struct {
	Username string            `json:"username"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Role     domain.Role       `json:"role"`
	Team     domain.Team       `json:"team"`
	Status   domain.UserStatus `json:"status"`
}

// setIf overwrites dst with v unless v is empty.
func setIf[T ~string](dst *T, v T) {
	if v != "" {
		*dst = v
	}
}

func (req userRequest) apply(u *domain.User) {
	setIf(&u.Username, req.Username)
	setIf(&u.Name, req.Name)
	setIf(&u.Email, req.Email)
	setIf(&u.Role, req.Role)
	setIf(&u.Team, req.Team)
	setIf(&u.Status, req.Status)
	u.Password = req.Password
	u.Normalize()
}

func (req userRequest) changesAccess() bool {
	return req.Role != "" || req.Team != "" || req.Status != ""
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, access.SupervisableUsers(actor(r), s.app.Cache.Users()))
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	if !access.IsAdmin(actor(r)) {
		writeError(w, errForbidden)
		return
	}
	var req userRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	u := domain.User{Role: domain.RoleAssociate}
	req.apply(&u)
	if err := s.app.Users.Create(r.Context(), &u); err != nil {
		writeError(w, err)
		return
	}
	u.Password = ""
	writeJSON(w, http.StatusCreated, u)
}

// updateUser lets admins edit anyone and users edit their own profile,
// but not their own role, team or status.
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	me, id := actor(r), r.PathValue("id")
	var req userRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !access.IsAdmin(me) && (me.ID != id || req.changesAccess()) {
		writeError(w, errForbidden)
		return
	}
	u, ok := s.app.Cache.User(id)
	if !ok {
		writeError(w, notFound("user", id))
		return
	}
	req.apply(&u)
	if err := s.app.Users.Update(r.Context(), &u); err != nil {
		writeError(w, err)
		return
	}
	u.Password = ""
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	me, id := actor(r), r.PathValue("id")
	if !access.IsAdmin(me) {
		writeError(w, errForbidden)
		return
	}
	if me.ID == id {
		writeError(w, badRequest("cannot delete yourself"))
		return
	}
	if err := s.app.Users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
