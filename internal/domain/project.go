package domain

import (
	"slices"
	"time"
)

// DateLayout is the calendar date format used for project and activity dates.
const DateLayout = "2006-01-02"

type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	ClientID      string        `json:"clientId"`
	ClientName    string        `json:"clientName"`
	TeamLeaderID  string        `json:"teamLeaderId"`
	TeamLeader    string        `json:"teamLeader"`
	TeamMemberIDs []string      `json:"teamMemberIds"`
	TeamMembers   []User        `json:"teamMembers"`
	StartDate     time.Time     `json:"startDate"`
	Deadline      time.Time     `json:"deadline"`
	Status        ProjectStatus `json:"status"`
	Priority      Priority      `json:"priority"`
	Type          string        `json:"type,omitempty"`
	ShareToken    string        `json:"shareToken,omitempty"`
}

func (p Project) EntityID() string { return p.ID }

// Clone returns a copy that shares no slices with p.
func (p Project) Clone() Project {
	p.TeamMemberIDs = slices.Clone(p.TeamMemberIDs)
	p.TeamMembers = slices.Clone(p.TeamMembers)
	return p
}

// HasMember reports whether userID is listed as a team member.
func (p Project) HasMember(userID string) bool {
	return slices.Contains(p.TeamMemberIDs, userID)
}

// Involves reports whether userID leads or belongs to the project.
func (p Project) Involves(userID string) bool {
	return p.TeamLeaderID == userID || p.HasMember(userID)
}

// IsOverdue reports whether the deadline has passed on an unfinished project.
func (p Project) IsOverdue(now time.Time) bool {
	if p.Status == ProjectCompleted || p.Deadline.IsZero() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return p.Deadline.Before(today)
}

// ShareURL returns the public status page path for the project.
func (p Project) ShareURL() string {
	if p.ShareToken == "" {
		return ""
	}
	return "/status/" + p.ShareToken
}
