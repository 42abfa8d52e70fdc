package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

const activityColumns = `id, activity, task_id, project_id, user_id, activity_date, start_time, end_time`

// SQLActivityRepo implements ActivityRepo.
type SQLActivityRepo struct {
	db db.DBTX
}

func NewSQLActivityRepo(conn db.DBTX) *SQLActivityRepo {
	return &SQLActivityRepo{db: conn}
}

// List returns activities newest date first; activities sharing a date keep
// their stored order. Rows whose user or task is gone are skipped.
func (r *SQLActivityRepo) List(ctx context.Context) ([]domain.Activity, error) {
	users, err := userIndex(ctx, r.db)
	if err != nil {
		return nil, err
	}
	taskNames, err := r.taskNames(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := r.query(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY activity_date DESC, position`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Activity, 0, len(stored))
	for _, row := range stored {
		a, err := row.toActivity()
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed activity row", "activity_id", row.id, "error", err)
			continue
		}
		u, ok := users[a.UserID]
		if !ok {
			slog.WarnContext(ctx, "skipping activity with unknown user", "activity_id", a.ID, "user_id", a.UserID)
			continue
		}
		taskName, ok := taskNames[a.TaskID]
		if !ok {
			slog.WarnContext(ctx, "skipping activity with unknown task", "activity_id", a.ID, "task_id", a.TaskID)
			continue
		}
		a.UserName, a.UserAvatar, a.TaskName = u.Name, u.Avatar, taskName
		out = append(out, a)
	}
	return out, nil
}

func (r *SQLActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	stored, err := r.query(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	a, err := stored[0].toActivity()
	if err != nil {
		return nil, err
	}
	if err := r.resolve(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	seq, err := NewSQLSequenceRepo(r.db).Next(ctx, domain.KindActivity)
	if err != nil {
		return err
	}
	a.ID = domain.FormatID(domain.KindActivity, seq)

	query := `INSERT INTO activities (id, position, activity, task_id, project_id, user_id, activity_date, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		a.ID, seq, a.Description, a.TaskID, a.ProjectID, a.UserID,
		formatDate(a.Date), a.StartTime, a.EndTime,
	); err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return r.resolve(ctx, a)
}

func (r *SQLActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	query := `UPDATE activities SET activity = ?, task_id = ?, project_id = ?, user_id = ?,
		activity_date = ?, start_time = ?, end_time = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.Description, a.TaskID, a.ProjectID, a.UserID,
		formatDate(a.Date), a.StartTime, a.EndTime, a.ID)
	if err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}
	return requireAffected(res, "activity", a.ID)
}

func (r *SQLActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return requireAffected(res, "activity", id)
}

// resolve fills display fields, falling back to placeholders for missing references.
func (r *SQLActivityRepo) resolve(ctx context.Context, a *domain.Activity) error {
	users, err := userIndex(ctx, r.db)
	if err != nil {
		return err
	}
	taskNames, err := r.taskNames(ctx)
	if err != nil {
		return err
	}
	a.UserName, a.UserAvatar = unknownUser, domain.AvatarURL("U")
	if u, ok := users[a.UserID]; ok {
		a.UserName, a.UserAvatar = u.Name, u.Avatar
	}
	a.TaskName = unknownTask
	if name, ok := taskNames[a.TaskID]; ok {
		a.TaskName = name
	}
	return nil
}

func (r *SQLActivityRepo) taskNames(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("listing task names: %w", err)
	}
	defer rows.Close()

	names := map[string]string{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning task name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

type activityRow struct {
	id, text, taskID, projectID, userID, date, start, end string
}

func (r *SQLActivityRepo) query(ctx context.Context, query string, args ...any) ([]activityRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var out []activityRow
	for rows.Next() {
		var ar activityRow
		if err := rows.Scan(&ar.id, &ar.text, &ar.taskID, &ar.projectID, &ar.userID, &ar.date, &ar.start, &ar.end); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		out = append(out, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}

func (ar activityRow) toActivity() (domain.Activity, error) {
	date, err := parseDate(ar.date)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("parsing activity_date: %w", err)
	}
	return domain.Activity{
		ID:          ar.id,
		Description: ar.text,
		TaskID:      ar.taskID,
		ProjectID:   ar.projectID,
		UserID:      ar.userID,
		Date:        date,
		StartTime:   ar.start,
		EndTime:     ar.end,
	}, nil
}
