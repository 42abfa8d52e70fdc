// Package access decides what an acting user may see and change.
package access

import (
	"slices"
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

func IsAdmin(actor domain.User) bool {
	return actor.Role == domain.RoleAdmin
}

func seesEverything(actor domain.User) bool {
	return actor.Role == domain.RoleAdmin || actor.Role == domain.RoleSupervisor
}

// VisibleProjects filters projects down to those actor may view, keeping order.
// users supplies team membership for Seniors.
func VisibleProjects(actor domain.User, projects []domain.Project, users []domain.User) []domain.Project {
	if seesEverything(actor) {
		return projects
	}
	team := teamMembers(actor, users)
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if canView(actor, p, team) {
			out = append(out, p)
		}
	}
	return out
}

// CanViewProject reports whether actor may open p.
func CanViewProject(actor domain.User, p domain.Project, users []domain.User) bool {
	if seesEverything(actor) {
		return true
	}
	return canView(actor, p, teamMembers(actor, users))
}

func canView(actor domain.User, p domain.Project, team map[string]bool) bool {
	if p.Involves(actor.ID) {
		return true
	}
	for _, id := range p.TeamMemberIDs {
		if team[id] {
			return true
		}
	}
	return false
}

// teamMembers returns the ids sharing a Senior actor's team. Other roles
// get an empty set.
func teamMembers(actor domain.User, users []domain.User) map[string]bool {
	set := map[string]bool{}
	if actor.Role != domain.RoleSenior || actor.Team == domain.TeamNone {
		return set
	}
	for _, u := range users {
		if u.Team == actor.Team {
			set[u.ID] = true
		}
	}
	return set
}

// AssignableLeaders lists who actor may name as a project's team leader,
// excluding inactive users and anyone already picked as a member. Result is
// sorted by name.
func AssignableLeaders(actor domain.User, users []domain.User, memberIDs []string) []domain.User {
	var leaders []domain.User
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleSupervisor:
		leaders = slices.Clone(users)
	case domain.RoleSenior:
		leaders = []domain.User{actor}
		for _, u := range users {
			if u.Team == actor.Team && u.ID != actor.ID {
				leaders = append(leaders, u)
			}
		}
	default:
		leaders = []domain.User{actor}
	}
	leaders = slices.DeleteFunc(leaders, func(u domain.User) bool {
		return !u.Active() || slices.Contains(memberIDs, u.ID)
	})
	slices.SortStableFunc(leaders, func(a, b domain.User) int {
		return strings.Compare(a.Name, b.Name)
	})
	return leaders
}

// CanModifyProject covers editing and deleting the project itself.
func CanModifyProject(actor domain.User, p domain.Project) bool {
	return IsAdmin(actor) || p.TeamLeaderID == actor.ID
}

func CanUpdateStatus(actor domain.User, p domain.Project) bool {
	return CanModifyProject(actor, p)
}

// CanModifyTasks covers adding, editing and removing tasks on p.
func CanModifyTasks(actor domain.User, p domain.Project) bool {
	return IsAdmin(actor) || p.Involves(actor.ID)
}

func CanAddActivity(actor domain.User, p domain.Project) bool {
	return IsAdmin(actor) || p.Involves(actor.ID)
}

// CanEditActivity covers editing and deleting a logged activity.
func CanEditActivity(actor domain.User, a domain.Activity) bool {
	return IsAdmin(actor) || a.UserID == actor.ID
}

// SupervisableUsers lists whose time logs actor may review.
func SupervisableUsers(actor domain.User, users []domain.User) []domain.User {
	switch {
	case IsAdmin(actor):
		return users
	case (actor.Role == domain.RoleSupervisor || actor.Role == domain.RoleSenior) && actor.Team != domain.TeamNone:
		out := []domain.User{}
		for _, u := range users {
			if u.Team == actor.Team {
				out = append(out, u)
			}
		}
		return out
	default:
		for _, u := range users {
			if u.ID == actor.ID {
				return []domain.User{u}
			}
		}
		return []domain.User{actor}
	}
}
