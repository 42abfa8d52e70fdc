package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

const projectColumns = `id, name, description, client_id, team_leader_id, team_member_ids,
		start_date, deadline, status, priority, type, share_token`

const (
	unknownClient = "Unknown Client"
	unknownUser   = "Unknown User"
	unknownTask   = "Unknown Task"
)

// SQLProjectRepo implements ProjectRepo. Reads resolve the client name,
// team leader name and team member users from their own tables.
type SQLProjectRepo struct {
	db db.DBTX
}

func NewSQLProjectRepo(conn db.DBTX) *SQLProjectRepo {
	return &SQLProjectRepo{db: conn}
}

// List returns projects in stored order. Rows whose leader or client no
// longer exists, or whose dates cannot be parsed, are skipped.
func (r *SQLProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	users, err := userIndex(ctx, r.db)
	if err != nil {
		return nil, err
	}
	clients, err := r.clientNames(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := r.listRows(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY position`)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(stored))
	for _, row := range stored {
		p, err := row.toProject()
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed project row", "project_id", row.id, "error", err)
			continue
		}
		leader, ok := users[p.TeamLeaderID]
		if !ok {
			slog.WarnContext(ctx, "skipping project with unknown team leader", "project_id", p.ID, "team_leader_id", p.TeamLeaderID)
			continue
		}
		clientName, ok := clients[p.ClientID]
		if !ok {
			slog.WarnContext(ctx, "skipping project with unknown client", "project_id", p.ID, "client_id", p.ClientID)
			continue
		}
		p.TeamLeader = leader.Name
		p.ClientName = clientName
		p.TeamMembers = resolveMembers(p.TeamMemberIDs, users)
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *SQLProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	stored, err := r.listRows(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	p, err := stored[0].toProject()
	if err != nil {
		return nil, err
	}
	if err := r.resolve(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create assigns the next PROJ id, appends the row and fills the display
// fields from the current users and clients.
func (r *SQLProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	seq, err := NewSQLSequenceRepo(r.db).Next(ctx, domain.KindProject)
	if err != nil {
		return err
	}
	p.ID = domain.FormatID(domain.KindProject, seq)
	if p.TeamMemberIDs == nil {
		p.TeamMemberIDs = []string{}
	}

	query := `INSERT INTO projects (id, position, name, description, client_id, team_leader_id, team_member_ids,
		start_date, deadline, status, priority, type, share_token)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, seq, p.Name, p.Description, p.ClientID, p.TeamLeaderID, joinIDs(p.TeamMemberIDs),
		formatDate(p.StartDate), formatDate(p.Deadline),
		string(p.Status), string(p.Priority), p.Type, p.ShareToken,
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.resolve(ctx, p)
}

// Update overwrites the row. Display fields are left as the caller set them.
func (r *SQLProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, client_id = ?, team_leader_id = ?, team_member_ids = ?,
		start_date = ?, deadline = ?, status = ?, priority = ?, type = ?, share_token = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.ClientID, p.TeamLeaderID, joinIDs(p.TeamMemberIDs),
		formatDate(p.StartDate), formatDate(p.Deadline),
		string(p.Status), string(p.Priority), p.Type, p.ShareToken,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project", p.ID)
}

// UpdateStatus writes only the status cell.
func (r *SQLProjectRepo) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE projects SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating project status: %w", err)
	}
	return requireAffected(res, "project", id)
}

// Delete removes the project together with its tasks and activities.
// Callers run it inside a transaction so the cascade is all-or-nothing.
func (r *SQLProjectRepo) Delete(ctx context.Context, id string) error {
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE id = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("looking up project: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("deleting project activities: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("deleting project tasks: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project", id)
}

// resolve fills display fields, falling back to placeholders for missing references.
func (r *SQLProjectRepo) resolve(ctx context.Context, p *domain.Project) error {
	users, err := userIndex(ctx, r.db)
	if err != nil {
		return err
	}
	clients, err := r.clientNames(ctx)
	if err != nil {
		return err
	}
	p.ClientName = unknownClient
	if name, ok := clients[p.ClientID]; ok {
		p.ClientName = name
	}
	p.TeamLeader = unknownUser
	if leader, ok := users[p.TeamLeaderID]; ok {
		p.TeamLeader = leader.Name
	}
	p.TeamMembers = resolveMembers(p.TeamMemberIDs, users)
	return nil
}

func (r *SQLProjectRepo) clientNames(ctx context.Context) (map[string]string, error) {
	clients, err := NewSQLClientRepo(r.db).List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names, nil
}

// resolveMembers maps member ids to users in order, dropping unknown ids.
func resolveMembers(ids []string, users map[string]domain.User) []domain.User {
	members := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			members = append(members, u)
		}
	}
	return members
}

// projectRow is a project as stored, before date parsing and resolution.
type projectRow struct {
	id, name, description, clientID, leaderID, memberIDs string
	startDate, deadline, status, priority, kind, token   string
}

func (r *SQLProjectRepo) listRows(ctx context.Context, query string, args ...any) ([]projectRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []projectRow
	for rows.Next() {
		var pr projectRow
		if err := rows.Scan(&pr.id, &pr.name, &pr.description, &pr.clientID, &pr.leaderID, &pr.memberIDs,
			&pr.startDate, &pr.deadline, &pr.status, &pr.priority, &pr.kind, &pr.token); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return out, nil
}

func (pr projectRow) toProject() (domain.Project, error) {
	if pr.name == "" || pr.leaderID == "" || pr.clientID == "" {
		return domain.Project{}, fmt.Errorf("incomplete project row")
	}
	start, err := parseDate(pr.startDate)
	if err != nil {
		return domain.Project{}, fmt.Errorf("parsing start_date: %w", err)
	}
	deadline, err := parseDate(pr.deadline)
	if err != nil {
		return domain.Project{}, fmt.Errorf("parsing deadline: %w", err)
	}
	return domain.Project{
		ID:            pr.id,
		Name:          pr.name,
		Description:   pr.description,
		ClientID:      pr.clientID,
		TeamLeaderID:  pr.leaderID,
		TeamMemberIDs: splitIDs(pr.memberIDs),
		StartDate:     start,
		Deadline:      deadline,
		Status:        domain.ProjectStatus(pr.status),
		Priority:      domain.Priority(pr.priority),
		Type:          pr.kind,
		ShareToken:    pr.token,
	}, nil
}
