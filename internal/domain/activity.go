package domain

import (
	"fmt"
	"time"
)

// ClockLayout is the HH:mm format of activity start and end times.
const ClockLayout = "15:04"

// Activity is a time-stamped log entry against a task.
type Activity struct {
	ID          string    `json:"id"`
	Description string    `json:"activity"`
	TaskID      string    `json:"taskId"`
	TaskName    string    `json:"taskName"`
	ProjectID   string    `json:"projectId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	UserAvatar  string    `json:"userAvatar"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
}

func (a Activity) EntityID() string { return a.ID }

// Minutes returns the logged duration. Unparseable or non-positive spans count as zero.
func (a Activity) Minutes() int {
	start, err := ParseClock(a.StartTime)
	if err != nil {
		return 0
	}
	end, err := ParseClock(a.EndTime)
	if err != nil {
		return 0
	}
	if end <= start {
		return 0
	}
	return end - start
}

// ParseClock converts an HH:mm string into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: use HH:mm", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
