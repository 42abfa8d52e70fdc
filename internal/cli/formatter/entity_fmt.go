package formatter

import (
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

func FormatUserList(users []domain.User) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			Dim(u.ID),
			Bold(u.Name),
			u.Username,
			orDash(u.Email),
			RoleBadge(u.Role, u.Team),
			UserStatusPill(u.Status),
		})
	}
	return RenderTable([]string{"ID", "NAME", "USERNAME", "EMAIL", "ROLE", "STATUS"}, rows)
}

func FormatClientList(clients []domain.Client) string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{Dim(c.ID), Bold(c.Name), orDash(c.Address)})
	}
	return RenderTable([]string{"ID", "NAME", "ADDRESS"}, rows)
}

func FormatTaskList(tasks []domain.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			Dim(t.ID),
			Bold(t.Name),
			Dim(t.ProjectID),
			orDash(t.UserName),
			TaskStatusPill(t.Status),
		})
	}
	return RenderTable([]string{"ID", "TASK", "PROJECT", "ASSIGNEE", "STATUS"}, rows)
}

// FormatActivityList renders time logs newest first, as the cache keeps them.
func FormatActivityList(activities []domain.Activity) string {
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []string{
			Dim(a.ID),
			a.Date.Format(domain.DateLayout),
			a.StartTime + "–" + a.EndTime,
			FormatMinutes(a.Minutes()),
			a.UserName,
			a.TaskName,
			Truncate(strings.TrimSpace(a.Description), 40),
		})
	}
	return RenderTable([]string{"ID", "DATE", "TIME", "SPENT", "USER", "TASK", "ACTIVITY"}, rows)
}
