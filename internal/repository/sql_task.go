package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

const taskColumns = `id, name, description, project_id, user_id, status`

// SQLTaskRepo implements TaskRepo. A task may name an assignee whose
// display name and avatar are resolved on read.
type SQLTaskRepo struct {
	db db.DBTX
}

func NewSQLTaskRepo(conn db.DBTX) *SQLTaskRepo {
	return &SQLTaskRepo{db: conn}
}

// List returns tasks in stored order, skipping tasks assigned to a user that no longer exists.
func (r *SQLTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	users, err := userIndex(ctx, r.db)
	if err != nil {
		return nil, err
	}
	tasks, err := r.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.UserID != "" {
			u, ok := users[t.UserID]
			if !ok {
				slog.WarnContext(ctx, "skipping task with unknown assignee", "task_id", t.ID, "user_id", t.UserID)
				continue
			}
			t.UserName, t.UserAvatar = u.Name, u.Avatar
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *SQLTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	tasks, err := r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	t := tasks[0]
	if err := r.resolveAssignee(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	seq, err := NewSQLSequenceRepo(r.db).Next(ctx, domain.KindTask)
	if err != nil {
		return err
	}
	t.ID = domain.FormatID(domain.KindTask, seq)

	query := `INSERT INTO tasks (id, position, name, description, project_id, user_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		t.ID, seq, t.Name, t.Description, t.ProjectID, t.UserID, string(t.Status),
	); err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return r.resolveAssignee(ctx, t)
}

func (r *SQLTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET name = ?, description = ?, project_id = ?, user_id = ?, status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name, t.Description, t.ProjectID, t.UserID, string(t.Status), t.ID)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task", t.ID)
}

// Delete removes the task and every activity logged against it.
// Callers run it inside a transaction so the cascade is all-or-nothing.
func (r *SQLTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("deleting task activities: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task", id)
}

func (r *SQLTaskRepo) resolveAssignee(ctx context.Context, t *domain.Task) error {
	t.UserName, t.UserAvatar = "", ""
	if t.UserID == "" {
		return nil
	}
	u, err := NewSQLUserRepo(r.db).GetByID(ctx, t.UserID)
	if errors.Is(err, ErrNotFound) {
		t.UserName, t.UserAvatar = unknownUser, domain.AvatarURL(unknownUser)
		return nil
	}
	if err != nil {
		return err
	}
	t.UserName, t.UserAvatar = u.Name, u.Avatar
	return nil
}

func (r *SQLTaskRepo) query(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(rows *sql.Rows) (domain.Task, error) {
	var t domain.Task
	var status string
	if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ProjectID, &t.UserID, &status); err != nil {
		return domain.Task{}, fmt.Errorf("scanning task row: %w", err)
	}
	t.Status = domain.TaskStatus(status)
	return t, nil
}
