package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

const userColumns = `id, username, name, email, password, role, team, status`

// SQLUserRepo implements UserRepo.
type SQLUserRepo struct {
	db db.DBTX
}

func NewSQLUserRepo(conn db.DBTX) *SQLUserRepo {
	return &SQLUserRepo{db: conn}
}

func (r *SQLUserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanOne(row, id)
}

func (r *SQLUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return r.scanOne(row, username)
}

func (r *SQLUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER(?)`, email)
	return r.scanOne(row, email)
}

// Create assigns the next USER id and appends the row.
func (r *SQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	seq, err := NewSQLSequenceRepo(r.db).Next(ctx, domain.KindUser)
	if err != nil {
		return err
	}
	u.ID = domain.FormatID(domain.KindUser, seq)
	u.Normalize()

	query := `INSERT INTO users (id, position, username, name, email, password, role, team, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		u.ID, seq, u.Username, u.Name, u.Email, u.Password,
		string(u.Role), string(u.Team), string(u.Status),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// Update overwrites the row. An empty password keeps the stored one.
func (r *SQLUserRepo) Update(ctx context.Context, u *domain.User) error {
	u.Normalize()
	query := `UPDATE users SET username = ?, name = ?, email = ?,
		password = CASE WHEN ? = '' THEN password ELSE ? END,
		role = ?, team = ?, status = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.Username, u.Name, u.Email,
		u.Password, u.Password,
		string(u.Role), string(u.Team), string(u.Status),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return requireAffected(res, "user", u.ID)
}

// Delete removes the user unless a project names them as leader or member.
func (r *SQLUserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	var refs int
	query := `SELECT COUNT(*) FROM projects
		WHERE team_leader_id = ? OR (',' || team_member_ids || ',') LIKE ?`
	if err := r.db.QueryRowContext(ctx, query, id, "%,"+id+",%").Scan(&refs); err != nil {
		return fmt.Errorf("checking user references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("user %s: %w", id, ErrReferenced)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return requireAffected(res, "user", id)
}

func (r *SQLUserRepo) scanOne(row *sql.Row, key string) (*domain.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", key, ErrNotFound)
	}
	return u, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role, team, status string
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password, &role, &team, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = domain.Role(role)
	u.Team = domain.Team(team)
	u.Status = domain.UserStatus(status)
	if u.Status == "" {
		u.Status = domain.UserActive
	}
	u.Avatar = domain.AvatarURL(u.Name)
	return &u, nil
}
