package repository

import (
	"context"
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/google/uuid"
)

// SQLProjectTypeRepo implements ProjectTypeRepo over the project type lookup list.
type SQLProjectTypeRepo struct {
	db db.DBTX
}

func NewSQLProjectTypeRepo(conn db.DBTX) *SQLProjectTypeRepo {
	return &SQLProjectTypeRepo{db: conn}
}

func (r *SQLProjectTypeRepo) List(ctx context.Context) ([]domain.ProjectType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM project_types WHERE name <> '' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing project types: %w", err)
	}
	defer rows.Close()

	types := []domain.ProjectType{}
	for rows.Next() {
		var pt domain.ProjectType
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, fmt.Errorf("scanning project type: %w", err)
		}
		types = append(types, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project types: %w", err)
	}
	return types, nil
}

func (r *SQLProjectTypeRepo) Create(ctx context.Context, pt *domain.ProjectType) error {
	if pt.ID == "" {
		pt.ID = uuid.New().String()
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO project_types (id, name) VALUES (?, ?)`, pt.ID, pt.Name); err != nil {
		return fmt.Errorf("inserting project type: %w", err)
	}
	return nil
}
