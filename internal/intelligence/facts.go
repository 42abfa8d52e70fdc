package intelligence

import (
	"encoding/json"
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// TaskFact is the slice of a task the model sees.
type TaskFact struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ProjectFacts is everything a summary request is built from.
type ProjectFacts struct {
	Name        string     `json:"projectName"`
	Description string     `json:"description"`
	TeamMembers []string   `json:"teamMembers"`
	StartDate   string     `json:"startDate"`
	Deadline    string     `json:"deadline"`
	Status      string     `json:"currentStatus"`
	Tasks       []TaskFact `json:"tasks"`
}

// FactsFromCache collects the facts for projectID from the cache. The
// reported status includes any staged change.
func FactsFromCache(c *cache.Store, projectID string) (ProjectFacts, bool) {
	p, ok := c.Project(projectID)
	if !ok {
		return ProjectFacts{}, false
	}

	facts := ProjectFacts{
		Name:        p.Name,
		Description: p.Description,
		TeamMembers: make([]string, 0, len(p.TeamMembers)),
		StartDate:   formatDate(p.StartDate.IsZero(), p.StartDate.Format(domain.DateLayout)),
		Deadline:    formatDate(p.Deadline.IsZero(), p.Deadline.Format(domain.DateLayout)),
		Status:      string(p.Status),
	}
	for _, m := range p.TeamMembers {
		facts.TeamMembers = append(facts.TeamMembers, m.Name)
	}
	for _, t := range c.TasksByProject(projectID) {
		facts.Tasks = append(facts.Tasks, TaskFact{
			Name:        t.Name,
			Description: t.Description,
			Status:      string(t.Status),
		})
	}
	return facts, true
}

func formatDate(zero bool, s string) string {
	if zero {
		return ""
	}
	return s
}

// TasksJSON renders the task list as a JSON array, "[]" when empty.
func (f ProjectFacts) TasksJSON() string {
	tasks := f.Tasks
	if tasks == nil {
		tasks = []TaskFact{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// prompt renders the facts as the user prompt. Tasks are only included
// when withTasks is set.
func (f ProjectFacts) prompt(withTasks bool) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
	line("Project Name", f.Name)
	line("Description", f.Description)
	line("Team Members", strings.Join(f.TeamMembers, ", "))
	line("Start Date", f.StartDate)
	line("Deadline", f.Deadline)
	line("Current Status", f.Status)
	if withTasks {
		line("Tasks", f.TasksJSON())
	}
	return b.String()
}
