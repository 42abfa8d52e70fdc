package service

import (
	"math"
	"slices"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// ChartWindowDays bounds the per-project hours breakdown in UserStats.
const ChartWindowDays = 30

// ProjectStats summarises progress on one project.
type ProjectStats struct {
	ProjectID      string `json:"projectId"`
	CompletedTasks int    `json:"completedTasks"`
	TotalTasks     int    `json:"totalTasks"`
	TotalMinutes   int    `json:"totalMinutes"`
}

// ProgressPct is the share of tasks done, 0 when there are none.
func (s ProjectStats) ProgressPct() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
}

// ProjectHours is time logged on one project inside the chart window.
type ProjectHours struct {
	Project string  `json:"name"`
	Hours   float64 `json:"hours"`
}

// UserStats summarises one user's workload.
type UserStats struct {
	UserID         string         `json:"userId"`
	ActiveProjects int            `json:"activeProjects"`
	TasksCompleted int            `json:"tasksCompleted"`
	TotalMinutes   int            `json:"totalMinutes"`
	RecentHours    []ProjectHours `json:"recentHours"`
}

type statsService struct {
	cache *cache.Store
}

func NewStatsService(c *cache.Store) StatsService {
	return &statsService{cache: c}
}

func (s *statsService) Project(projectID string) ProjectStats {
	st := ProjectStats{ProjectID: projectID}
	for _, t := range s.cache.TasksByProject(projectID) {
		st.TotalTasks++
		if t.Status == domain.TaskDone {
			st.CompletedTasks++
		}
	}
	for _, a := range s.cache.ActivitiesByProject(projectID) {
		st.TotalMinutes += a.Minutes()
	}
	return st
}

// User aggregates the user's projects, assigned tasks and logged time.
// RecentHours covers activities dated after now minus ChartWindowDays, in
// first-seen order.
func (s *statsService) User(userID string, now time.Time) UserStats {
	st := UserStats{UserID: userID, RecentHours: []ProjectHours{}}

	names := map[string]string{}
	for _, p := range s.cache.Projects() {
		names[p.ID] = p.Name
		if p.Involves(userID) && p.Status != domain.ProjectCompleted {
			st.ActiveProjects++
		}
	}
	for _, t := range s.cache.Tasks() {
		if t.UserID == userID && t.Status == domain.TaskDone {
			st.TasksCompleted++
		}
	}

	cutoff := now.AddDate(0, 0, -ChartWindowDays)
	minutesByProject := map[string]int{}
	var order []string
	for _, a := range s.cache.Activities() {
		if a.UserID != userID {
			continue
		}
		mins := a.Minutes()
		st.TotalMinutes += mins
		name, ok := names[a.ProjectID]
		if !ok || mins == 0 || !a.Date.After(cutoff) {
			continue
		}
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
		minutesByProject[name] += mins
	}
	for _, name := range order {
		hours := float64(minutesByProject[name]) / 60
		st.RecentHours = append(st.RecentHours, ProjectHours{Project: name, Hours: math.Round(hours*100) / 100})
	}
	return st
}
