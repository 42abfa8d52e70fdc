package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/service"
)

func FormatProjectStats(name string, s service.ProjectStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(name), Dim(s.ProjectID))
	fmt.Fprintf(&b, "Tasks     %d/%d done\n", s.CompletedTasks, s.TotalTasks)
	fmt.Fprintf(&b, "Logged    %s\n", FormatMinutes(s.TotalMinutes))
	fmt.Fprintf(&b, "Progress  %s", RenderProgress(s.ProgressPct(), 20))
	return RenderBox("project stats", b.String())
}

// FormatUserStats renders totals plus one bar per project in the chart
// window, scaled to the busiest project.
func FormatUserStats(name string, s service.UserStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(name), Dim(s.UserID))
	fmt.Fprintf(&b, "Active projects  %d\n", s.ActiveProjects)
	fmt.Fprintf(&b, "Tasks completed  %d\n", s.TasksCompleted)
	fmt.Fprintf(&b, "Total logged     %s", FormatMinutes(s.TotalMinutes))

	if len(s.RecentHours) > 0 {
		peak := slices.MaxFunc(s.RecentHours, func(a, b service.ProjectHours) int {
			switch {
			case a.Hours < b.Hours:
				return -1
			case a.Hours > b.Hours:
				return 1
			}
			return 0
		}).Hours
		fmt.Fprintf(&b, "\n\n%s\n", StyleHeader.Render(fmt.Sprintf("Last %d days", service.ChartWindowDays)))
		for _, h := range s.RecentHours {
			pct := 0.0
			if peak > 0 {
				pct = h.Hours / peak * 100
			}
			fmt.Fprintf(&b, "\n%-20s %s %.1fh", Truncate(h.Project, 20), StyleBlue.Render(strings.Repeat(filledBlock, int(pct/5))), h.Hours)
		}
	}
	return RenderBox("user stats", b.String())
}

// FormatLoadStatus lists each collection's lifecycle and in-flight flags.
func FormatLoadStatus(st cache.Status) string {
	loading := map[domain.Kind]bool{
		domain.KindUser:     st.EssentialLoading,
		domain.KindClient:   st.EssentialLoading,
		domain.KindProject:  st.ProjectsLoading,
		domain.KindTask:     st.TasksLoading,
		domain.KindActivity: st.ActivitiesLoading,
	}
	rows := make([][]string, 0, len(domain.Kinds))
	for _, k := range domain.Kinds {
		state := Dim(st.Collections[k].String())
		if st.Collections[k] == cache.Loaded {
			state = StyleGreen.Render(st.Collections[k].String())
		}
		flag := ""
		if loading[k] {
			flag = StyleYellow.Render("loading…")
		}
		rows = append(rows, []string{string(k), state, flag})
	}
	out := RenderTable([]string{"COLLECTION", "STATE", ""}, rows)
	if st.LastError != "" {
		out += "\n" + StyleRed.Render("last error: "+st.LastError)
	}
	return out
}
