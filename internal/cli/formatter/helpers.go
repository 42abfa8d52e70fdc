package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// FormatMinutes renders minutes as "1h 30m", "2h" or "45m".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// RelativeDays describes day relative to now in whole calendar days.
func RelativeDays(day, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Round(target.Sub(today).Hours() / 24))

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// Deadline renders the date with urgency coloring. Completed projects are
// never flagged.
func Deadline(p domain.Project, now time.Time) string {
	text := p.Deadline.Format(domain.DateLayout)
	if p.Status == domain.ProjectCompleted {
		return StyleDim.Render(text)
	}
	if p.IsOverdue(now) {
		return StyleRed.Render(text + " (overdue)")
	}
	if p.Deadline.Sub(now) <= 7*24*time.Hour {
		return StyleYellow.Render(text + " (" + RelativeDays(p.Deadline, now) + ")")
	}
	return StyleFg.Render(text)
}

// Truncate shortens s to at most n visible runes, marking the cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
