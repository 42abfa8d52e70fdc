package api

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/intelligence"
	"github.com/Neoksnaman/ProTrack/internal/service"
)

const defaultPerPage = 20

type projectRequest struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	ClientID      string               `json:"clientId"`
	ClientName    string               `json:"clientName"`
	TeamLeaderID  string               `json:"teamLeaderId"`
	TeamMemberIDs []string             `json:"teamMemberIds"`
	StartDate     string               `json:"startDate"`
	Deadline      string               `json:"deadline"`
	Status        domain.ProjectStatus `json:"status"`
	Priority      domain.Priority      `json:"priority"`
	Type          string               `json:"type"`
}

func parseDate(field, v string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return time.Time{}, badRequest("%s %q: use YYYY-MM-DD", field, v)
	}
	return t, nil
}

// apply copies the non-empty fields of req onto p. A nil member list keeps
// the current members.
func (req projectRequest) apply(p *domain.Project) error {
	setIf(&p.Name, req.Name)
	setIf(&p.Description, req.Description)
	setIf(&p.ClientID, req.ClientID)
	setIf(&p.TeamLeaderID, req.TeamLeaderID)
	setIf(&p.Status, req.Status)
	setIf(&p.Priority, req.Priority)
	setIf(&p.Type, req.Type)
	if req.TeamMemberIDs != nil {
		p.TeamMemberIDs = slices.Clone(req.TeamMemberIDs)
	}
	if req.StartDate != "" {
		d, err := parseDate("startDate", req.StartDate)
		if err != nil {
			return err
		}
		p.StartDate = d
	}
	if req.Deadline != "" {
		d, err := parseDate("deadline", req.Deadline)
		if err != nil {
			return err
		}
		p.Deadline = d
	}
	return nil
}

type projectPage struct {
	Items []domain.Project `json:"items"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
	Total int              `json:"total"`
}

type projectDetail struct {
	Project    domain.Project       `json:"project"`
	Stats      service.ProjectStats `json:"stats"`
	Progress   float64              `json:"progress"`
	Overdue    bool                 `json:"overdue"`
	Tasks      []domain.Task        `json:"tasks"`
	Activities []domain.Activity    `json:"activities"`
}

// visibleProject loads a project the actor may see. Hidden projects are
// reported as missing.
func (s *Server) visibleProject(r *http.Request, id string) (domain.Project, error) {
	p, ok := s.app.Cache.Project(id)
	if !ok || !access.CanViewProject(actor(r), p, s.app.Cache.Users()) {
		return domain.Project{}, notFound("project", id)
	}
	return p, nil
}

// committedProject returns the confirmed row of a visible project once allow
// grants the actor the change. Hidden projects stay missing.
func (s *Server) committedProject(r *http.Request, id string, allow func(domain.User, domain.Project) bool) (domain.Project, error) {
	if _, err := s.visibleProject(r, id); err != nil {
		return domain.Project{}, err
	}
	p, ok := s.app.Cache.CommittedProject(id)
	if !ok {
		return domain.Project{}, notFound("project", id)
	}
	if !allow(actor(r), p) {
		return domain.Project{}, errForbidden
	}
	return p, nil
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, err)
		return
	}
	perPage, err := queryInt(r, "perPage", defaultPerPage)
	if err != nil {
		writeError(w, err)
		return
	}
	overdue, _ := strconv.ParseBool(q.Get("overdue"))
	filter := service.ProjectFilter{
		Status:      domain.ProjectStatus(q.Get("status")),
		Priority:    domain.Priority(q.Get("priority")),
		OverdueOnly: overdue,
		Query:       q.Get("q"),
	}

	visible := access.VisibleProjects(actor(r), s.app.Cache.Projects(), s.app.Cache.Users())
	matched := service.FilterProjects(visible, filter, s.app.Now())
	items, pages := service.Page(matched, page, perPage)
	writeJSON(w, http.StatusOK, projectPage{
		Items: items,
		Page:  min(page, pages),
		Pages: pages,
		Total: len(matched),
	})
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.visibleProject(r, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	stats := s.app.Stats.Project(p.ID)
	writeJSON(w, http.StatusOK, projectDetail{
		Project:    p,
		Stats:      stats,
		Progress:   stats.ProgressPct(),
		Overdue:    p.IsOverdue(s.app.Now()),
		Tasks:      s.app.Cache.TasksByProject(p.ID),
		Activities: s.app.Cache.ActivitiesByProject(p.ID),
	})
}

// createProject defaults the leader to the actor and resolves clientName
// to an existing or new client. Non-admins may only name leaders they are
// allowed to assign.
func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	me := actor(r)
	var req projectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p := domain.Project{TeamLeaderID: me.ID}
	if err := req.apply(&p); err != nil {
		writeError(w, err)
		return
	}
	leaders := access.AssignableLeaders(me, s.app.Cache.Users(), p.TeamMemberIDs)
	if !slices.ContainsFunc(leaders, func(u domain.User) bool { return u.ID == p.TeamLeaderID }) {
		writeError(w, errForbidden)
		return
	}
	if p.ClientID == "" && req.ClientName != "" {
		c, err := s.app.Clients.GetOrCreateByName(r.Context(), req.ClientName)
		if err != nil {
			writeError(w, err)
			return
		}
		p.ClientID = c.ID
	}
	if err := s.app.Projects.Create(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req projectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.committedProject(r, id, access.CanModifyProject)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := req.apply(&p); err != nil {
		writeError(w, err)
		return
	}
	if err := s.app.Projects.Update(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	_, err := s.committedProject(r, id, access.CanModifyProject)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.app.Projects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setProjectStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		Status domain.ProjectStatus `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	_, err := s.committedProject(r, id, access.CanUpdateStatus)
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.app.Projects.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) shareProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	_, err := s.committedProject(r, id, access.CanModifyProject)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := s.app.Projects.EnsureShareToken(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"url":   domain.Project{ShareToken: token}.ShareURL(),
	})
}

// summarizeProject runs one summarizer request. kind selects the shape:
// summary (default), suggestions or risk.
func (s *Server) summarizeProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.visibleProject(r, id); err != nil {
		writeError(w, err)
		return
	}
	facts, ok := intelligence.FactsFromCache(s.app.Cache, id)
	if !ok {
		writeError(w, notFound("project", id))
		return
	}

	var (
		out any
		err error
	)
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", "summary":
		out, err = s.app.Summarizer.SummarizeProject(r.Context(), facts)
	case "suggestions":
		out, err = s.app.Summarizer.SuggestActions(r.Context(), facts)
	case "risk":
		out, err = s.app.Summarizer.AssessRisk(r.Context(), facts)
	default:
		err = badRequest("unknown summary kind %q", kind)
	}
	if err != nil {
		if errors.Is(err, intelligence.ErrSummaryUnavailable) {
			s.app.Logger.WarnContext(r.Context(), "summary_failed", "project_id", id, "error", err.Error())
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listProjectTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.app.Store.ListProjectTypes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// publicStatus serves the read-only share page. No actor is required.
func (s *Server) publicStatus(w http.ResponseWriter, r *http.Request) {
	view, err := s.app.Projects.ByShareToken(r.PathValue("token"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
