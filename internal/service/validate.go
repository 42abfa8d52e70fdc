package service

import (
	"fmt"
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/domain"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

func validateUser(u *domain.User) error {
	for _, f := range []struct{ name, value string }{
		{"name", u.Name}, {"username", u.Username}, {"email", u.Email},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	if !strings.Contains(u.Email, "@") {
		return invalid("email %q is not valid", u.Email)
	}
	if !u.Role.Valid() {
		return invalid("unknown role %q", u.Role)
	}
	if u.Team != domain.TeamNone && !u.Team.Valid() {
		return invalid("unknown team %q", u.Team)
	}
	if u.Status != "" && !u.Status.Valid() {
		return invalid("unknown status %q", u.Status)
	}
	return nil
}

func validateProject(p *domain.Project) error {
	if err := required("name", p.Name); err != nil {
		return err
	}
	if err := required("client", p.ClientID); err != nil {
		return err
	}
	if err := required("team leader", p.TeamLeaderID); err != nil {
		return err
	}
	if p.StartDate.IsZero() || p.Deadline.IsZero() {
		return invalid("start date and deadline are required")
	}
	if p.Deadline.Before(p.StartDate) {
		return invalid("deadline %s is before start date %s",
			p.Deadline.Format(domain.DateLayout), p.StartDate.Format(domain.DateLayout))
	}
	if !p.Status.Valid() {
		return invalid("unknown status %q", p.Status)
	}
	if !p.Priority.Valid() {
		return invalid("unknown priority %q", p.Priority)
	}
	return nil
}

func validateTask(t *domain.Task) error {
	if err := required("name", t.Name); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return invalid("unknown status %q", t.Status)
	}
	return nil
}

func validateActivity(a *domain.Activity) error {
	if err := required("activity", a.Description); err != nil {
		return err
	}
	if a.Date.IsZero() {
		return invalid("date is required")
	}
	start, err := domain.ParseClock(a.StartTime)
	if err != nil {
		return invalid("start time: %v", err)
	}
	end, err := domain.ParseClock(a.EndTime)
	if err != nil {
		return invalid("end time: %v", err)
	}
	if end <= start {
		return invalid("end time %s must be after start time %s", a.EndTime, a.StartTime)
	}
	return nil
}
