package api

import (
	"net/http"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

type activityRequest struct {
	Activity  string `json:"activity"`
	TaskID    string `json:"taskId"`
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (req activityRequest) apply(a *domain.Activity) error {
	setIf(&a.Description, req.Activity)
	setIf(&a.TaskID, req.TaskID)
	setIf(&a.UserID, req.UserID)
	setIf(&a.StartTime, req.StartTime)
	setIf(&a.EndTime, req.EndTime)
	if req.Date != "" {
		d, err := parseDate("date", req.Date)
		if err != nil {
			return err
		}
		a.Date = d
	}
	return nil
}

func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projectID, taskID, userID := q.Get("projectId"), q.Get("taskId"), q.Get("userId")

	visible := s.visibleProjectIDs(r)
	out := []domain.Activity{}
	for _, a := range s.app.Cache.Activities() {
		switch {
		case !visible[a.ProjectID]:
		case projectID != "" && a.ProjectID != projectID:
		case taskID != "" && a.TaskID != taskID:
		case userID != "" && a.UserID != userID:
		default:
			out = append(out, a)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// createActivity logs time for the actor. Only admins may log for someone
// else. The date defaults to today.
func (s *Server) createActivity(w http.ResponseWriter, r *http.Request) {
	me := actor(r)
	var req activityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	task, ok := s.app.Cache.Task(req.TaskID)
	if !ok {
		writeError(w, notFound("task", req.TaskID))
		return
	}
	p, ok := s.app.Cache.Project(task.ProjectID)
	if !ok {
		writeError(w, notFound("project", task.ProjectID))
		return
	}
	if !access.CanAddActivity(me, p) || (req.UserID != "" && req.UserID != me.ID && !access.IsAdmin(me)) {
		writeError(w, errForbidden)
		return
	}

	now := s.app.Now().UTC()
	a := domain.Activity{
		UserID: me.ID,
		Date:   now.Truncate(24 * time.Hour),
	}
	if err := req.apply(&a); err != nil {
		writeError(w, err)
		return
	}
	if err := s.app.Activities.Create(r.Context(), &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) updateActivity(w http.ResponseWriter, r *http.Request) {
	me, id := actor(r), r.PathValue("id")
	var req activityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	a, ok := s.app.Cache.Activity(id)
	if !ok {
		writeError(w, notFound("activity", id))
		return
	}
	if !access.CanEditActivity(me, a) || (req.UserID != "" && req.UserID != a.UserID && !access.IsAdmin(me)) {
		writeError(w, errForbidden)
		return
	}
	if err := req.apply(&a); err != nil {
		writeError(w, err)
		return
	}
	if err := s.app.Activities.Update(r.Context(), &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	a, ok := s.app.Cache.Activity(id)
	if !ok {
		writeError(w, notFound("activity", id))
		return
	}
	if !access.CanEditActivity(actor(r), a) {
		writeError(w, errForbidden)
		return
	}
	if err := s.app.Activities.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
