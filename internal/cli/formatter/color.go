package formatter

import (
	"fmt"
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill renders a project status with a colored marker.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectPlanning:
		return StyleBlue.Render("○ Planning")
	case domain.ProjectInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.ProjectBlocked:
		return StyleRed.Render("■ Blocked")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskToDo:
		return StyleBlue.Render("○ To Do")
	case domain.TaskInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.TaskDone:
		return StyleDim.Render("✔ Done")
	default:
		return StyleDim.Render(string(status))
	}
}

func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ High")
	case domain.PriorityMedium:
		return StyleYellow.Render("◆ Medium")
	case domain.PriorityLow:
		return StyleGreen.Render("▼ Low")
	default:
		return StyleDim.Render(string(p))
	}
}

// RoleBadge renders the role, with the team appended when there is one.
func RoleBadge(role domain.Role, team domain.Team) string {
	label := StylePurple.Render(string(role))
	if team != domain.TeamNone {
		label += Dim(" · " + string(team))
	}
	return label
}

func UserStatusPill(s domain.UserStatus) string {
	if s == domain.UserInactive {
		return StyleDim.Render("○ Inactive")
	}
	return StyleGreen.Render("● Active")
}

// Header renders an upper-cased section title over a rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(strings.Repeat("─", lipgloss.Width(upper))))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
