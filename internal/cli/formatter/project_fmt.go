package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/service"
)

func FormatProjectList(projects []domain.Project, now time.Time) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			Dim(p.ID),
			Bold(Truncate(p.Name, 32)),
			p.ClientName,
			p.TeamLeader,
			StatusPill(p.Status),
			PriorityBadge(p.Priority),
			Deadline(p, now),
		})
	}
	return RenderTable([]string{"ID", "PROJECT", "CLIENT", "LEADER", "STATUS", "PRIORITY", "DEADLINE"}, rows)
}

// ProjectDetail is everything the project view shows.
type ProjectDetail struct {
	Project    domain.Project
	Stats      service.ProjectStats
	Tasks      []domain.Task
	Activities []domain.Activity
	Now        time.Time
}

func FormatProjectDetail(d ProjectDetail) string {
	p := d.Project
	var b strings.Builder

	members := make([]string, 0, len(p.TeamMembers))
	for _, m := range p.TeamMembers {
		members = append(members, m.Name)
	}

	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), Dim(p.ID))
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n", p.Description)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Client    %s\n", p.ClientName)
	fmt.Fprintf(&b, "Leader    %s\n", p.TeamLeader)
	fmt.Fprintf(&b, "Members   %s\n", orDash(strings.Join(members, ", ")))
	fmt.Fprintf(&b, "Status    %s   %s\n", StatusPill(p.Status), PriorityBadge(p.Priority))
	fmt.Fprintf(&b, "Dates     %s → %s\n", p.StartDate.Format(domain.DateLayout), Deadline(p, d.Now))
	if p.Type != "" {
		fmt.Fprintf(&b, "Type      %s\n", p.Type)
	}
	fmt.Fprintf(&b, "Progress  %s  %s\n",
		RenderProgress(d.Stats.ProgressPct(), 20),
		Dim(fmt.Sprintf("%d/%d tasks · %s logged", d.Stats.CompletedTasks, d.Stats.TotalTasks, FormatMinutes(d.Stats.TotalMinutes))))

	box := RenderBox("project", strings.TrimRight(b.String(), "\n"))

	var out strings.Builder
	out.WriteString(box)
	out.WriteString("\n\n")
	out.WriteString(Header("Tasks"))
	out.WriteString("\n")
	if len(d.Tasks) == 0 {
		out.WriteString(Dim("No tasks yet."))
	} else {
		out.WriteString(FormatTaskList(d.Tasks))
	}
	out.WriteString("\n\n")
	out.WriteString(Header("Activity"))
	out.WriteString("\n")
	if len(d.Activities) == 0 {
		out.WriteString(Dim("No time logged."))
	} else {
		out.WriteString(FormatActivityList(d.Activities))
	}
	return out.String()
}
