package service

import (
	"strings"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// ProjectFilter narrows a project list. Zero values match everything.
type ProjectFilter struct {
	Status      domain.ProjectStatus
	Priority    domain.Priority
	OverdueOnly bool
	// Query matches the project or client name, ignoring case.
	Query string
}

func (f ProjectFilter) Match(p domain.Project, now time.Time) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Priority != "" && p.Priority != f.Priority {
		return false
	}
	if f.OverdueOnly && !p.IsOverdue(now) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.ClientName), q)
	}
	return true
}

func FilterProjects(projects []domain.Project, f ProjectFilter, now time.Time) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if f.Match(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// Page returns the 1-based page of items and the page count.
func Page[T any](items []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		return items, 1
	}
	pages := max(1, (len(items)+perPage-1)/perPage)
	page = min(max(page, 1), pages)
	start := (page - 1) * perPage
	end := min(start+perPage, len(items))
	return items[start:end], pages
}
