package cache

import (
	"slices"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// Rule describes one denormalized dependency: when Source changes (or is
// removed), DependentField on every matching Dependent follows SourceField.
type Rule struct {
	Source         domain.Kind
	SourceField    string
	Dependent      domain.Kind
	DependentField string
}

type propagation[S any] struct {
	Rule
	apply func(s *Store, src S) int
}

// cascade evicts dependents whose foreign key equals the removed id.
type cascade struct {
	Rule
	evict func(s *Store, id string) int
}

var userPropagations = []propagation[domain.User]{
	{
		Rule: Rule{domain.KindUser, "name", domain.KindProject, "teamLeader"},
		apply: func(s *Store, u domain.User) int {
			return s.projects.patch(func(p *domain.Project) bool {
				if p.TeamLeaderID != u.ID {
					return false
				}
				p.TeamLeader = u.Name
				return true
			})
		},
	},
	{
		Rule: Rule{domain.KindUser, "*", domain.KindProject, "teamMembers"},
		apply: func(s *Store, u domain.User) int {
			return s.projects.patch(func(p *domain.Project) bool {
				changed := false
				for i := range p.TeamMembers {
					if p.TeamMembers[i].ID == u.ID {
						p.TeamMembers[i] = u
						changed = true
					}
				}
				return changed
			})
		},
	},
	{
		Rule: Rule{domain.KindUser, "name,avatar", domain.KindTask, "userName,userAvatar"},
		apply: func(s *Store, u domain.User) int {
			return s.tasks.patch(func(t *domain.Task) bool {
				if t.UserID != u.ID {
					return false
				}
				t.UserName, t.UserAvatar = u.Name, u.Avatar
				return true
			})
		},
	},
	{
		Rule: Rule{domain.KindUser, "name,avatar", domain.KindActivity, "userName,userAvatar"},
		apply: func(s *Store, u domain.User) int {
			return s.activities.patch(func(a *domain.Activity) bool {
				if a.UserID != u.ID {
					return false
				}
				a.UserName, a.UserAvatar = u.Name, u.Avatar
				return true
			})
		},
	},
}

var clientPropagations = []propagation[domain.Client]{
	{
		Rule: Rule{domain.KindClient, "name", domain.KindProject, "clientName"},
		apply: func(s *Store, c domain.Client) int {
			return s.projects.patch(func(p *domain.Project) bool {
				if p.ClientID != c.ID {
					return false
				}
				p.ClientName = c.Name
				return true
			})
		},
	},
}

var taskPropagations = []propagation[domain.Task]{
	{
		Rule: Rule{domain.KindTask, "name", domain.KindActivity, "taskName"},
		apply: func(s *Store, t domain.Task) int {
			return s.activities.patch(func(a *domain.Activity) bool {
				if a.TaskID != t.ID {
					return false
				}
				a.TaskName = t.Name
				return true
			})
		},
	},
}

var projectCascades = []cascade{
	{
		Rule: Rule{domain.KindProject, "id", domain.KindTask, "projectId"},
		evict: func(s *Store, id string) int {
			return s.tasks.removeWhere(func(t domain.Task) bool { return t.ProjectID == id })
		},
	},
	{
		Rule: Rule{domain.KindProject, "id", domain.KindActivity, "projectId"},
		evict: func(s *Store, id string) int {
			return s.activities.removeWhere(func(a domain.Activity) bool { return a.ProjectID == id })
		},
	},
}

var taskCascades = []cascade{
	{
		Rule: Rule{domain.KindTask, "id", domain.KindActivity, "taskId"},
		evict: func(s *Store, id string) int {
			return s.activities.removeWhere(func(a domain.Activity) bool { return a.TaskID == id })
		},
	},
}

// Propagations lists every update rule in execution order.
func Propagations() []Rule {
	var rules []Rule
	for _, p := range userPropagations {
		rules = append(rules, p.Rule)
	}
	for _, p := range clientPropagations {
		rules = append(rules, p.Rule)
	}
	for _, p := range taskPropagations {
		rules = append(rules, p.Rule)
	}
	return rules
}

// Cascades lists every delete rule in execution order.
func Cascades() []Rule {
	var rules []Rule
	for _, c := range slices.Concat(projectCascades, taskCascades) {
		rules = append(rules, c.Rule)
	}
	return rules
}

func propagate[S any](s *Store, table []propagation[S], src S) int {
	n := 0
	for _, p := range table {
		n += p.apply(s, src)
	}
	return n
}

func evict(s *Store, table []cascade, id string) int {
	n := 0
	for _, c := range table {
		n += c.evict(s, id)
	}
	return n
}
