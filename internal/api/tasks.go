package api

import (
	"net/http"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

type taskRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ProjectID   string            `json:"projectId"`
	UserID      string            `json:"userId"`
	Status      domain.TaskStatus `json:"status"`
}

func (req taskRequest) apply(t *domain.Task) {
	setIf(&t.Name, req.Name)
	setIf(&t.Description, req.Description)
	setIf(&t.UserID, req.UserID)
	setIf(&t.Status, req.Status)
}

// visibleProjectIDs is the set of project ids the actor may see.
func (s *Server) visibleProjectIDs(r *http.Request) map[string]bool {
	ids := map[string]bool{}
	for _, p := range access.VisibleProjects(actor(r), s.app.Cache.Projects(), s.app.Cache.Users()) {
		ids[p.ID] = true
	}
	return ids
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		if _, err := s.visibleProject(r, projectID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.app.Cache.TasksByProject(projectID))
		return
	}
	visible := s.visibleProjectIDs(r)
	tasks := []domain.Task{}
	for _, t := range s.app.Cache.Tasks() {
		if visible[t.ProjectID] {
			tasks = append(tasks, t)
		}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// taskProject returns the project a task change applies to, checking the
// actor may change its tasks.
func (s *Server) taskProject(r *http.Request, projectID string) (domain.Project, error) {
	p, ok := s.app.Cache.Project(projectID)
	if !ok {
		return domain.Project{}, notFound("project", projectID)
	}
	if !access.CanModifyTasks(actor(r), p) {
		return domain.Project{}, errForbidden
	}
	return p, nil
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.taskProject(r, req.ProjectID); err != nil {
		writeError(w, err)
		return
	}
	t := domain.Task{ProjectID: req.ProjectID}
	req.apply(&t)
	if err := s.app.Tasks.Create(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req taskRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, ok := s.app.Cache.Task(id)
	if !ok {
		writeError(w, notFound("task", id))
		return
	}
	if req.ProjectID != "" && req.ProjectID != t.ProjectID {
		writeError(w, badRequest("a task cannot move to another project"))
		return
	}
	if _, err := s.taskProject(r, t.ProjectID); err != nil {
		writeError(w, err)
		return
	}
	req.apply(&t)
	if err := s.app.Tasks.Update(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	t, ok := s.app.Cache.Task(id)
	if !ok {
		writeError(w, notFound("task", id))
		return
	}
	if _, err := s.taskProject(r, t.ProjectID); err != nil {
		writeError(w, err)
		return
	}
	if err := s.app.Tasks.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
