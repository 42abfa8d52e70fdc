package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// SQLClientRepo implements ClientRepo.
type SQLClientRepo struct {
	db db.DBTX
}

func NewSQLClientRepo(conn db.DBTX) *SQLClientRepo {
	return &SQLClientRepo{db: conn}
}

func (r *SQLClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, address FROM clients ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address); err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

func (r *SQLClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	err := r.db.QueryRowContext(ctx, `SELECT id, name, address FROM clients WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	return &c, nil
}

func (r *SQLClientRepo) Create(ctx context.Context, c *domain.Client) error {
	seq, err := NewSQLSequenceRepo(r.db).Next(ctx, domain.KindClient)
	if err != nil {
		return err
	}
	c.ID = domain.FormatID(domain.KindClient, seq)

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO clients (id, position, name, address) VALUES (?, ?, ?, ?)`,
		c.ID, seq, c.Name, c.Address)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (r *SQLClientRepo) Update(ctx context.Context, c *domain.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, address = ? WHERE id = ?`,
		c.Name, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return requireAffected(res, "client", c.ID)
}

// Delete removes the client unless a project is still billed to it.
func (r *SQLClientRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	var refs int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE client_id = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("checking client references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("client %s: %w", id, ErrReferenced)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return requireAffected(res, "client", id)
}
