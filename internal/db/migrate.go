package db

import (
	"context"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and portable
// across SQLite and Postgres.
func Migrate(ctx context.Context, d *DB) error {
	for i, stmt := range migrations {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Each entity table is one "sheet". position records row order so listing
// returns rows as stored; ids are assigned from entity_sequences.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		position   BIGINT NOT NULL,
		username   TEXT NOT NULL,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		password   TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL,
		team       TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'Active'
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id         TEXT PRIMARY KEY,
		position   BIGINT NOT NULL,
		name       TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		position         BIGINT NOT NULL,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		client_id        TEXT NOT NULL,
		team_leader_id   TEXT NOT NULL,
		team_member_ids  TEXT NOT NULL DEFAULT '',
		start_date       TEXT NOT NULL,
		deadline         TEXT NOT NULL,
		status           TEXT NOT NULL,
		priority         TEXT NOT NULL,
		type             TEXT NOT NULL DEFAULT '',
		share_token      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_share_token ON projects(share_token)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		position     BIGINT NOT NULL,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		project_id   TEXT NOT NULL,
		user_id      TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id             TEXT PRIMARY KEY,
		position       BIGINT NOT NULL,
		activity       TEXT NOT NULL,
		task_id        TEXT NOT NULL,
		project_id     TEXT NOT NULL,
		user_id        TEXT NOT NULL,
		activity_date  TEXT NOT NULL,
		start_time     TEXT NOT NULL,
		end_time       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_project ON activities(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_task ON activities(task_id)`,

	`CREATE TABLE IF NOT EXISTS project_types (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS entity_sequences (
		kind      TEXT PRIMARY KEY,
		next_seq  BIGINT NOT NULL
	)`,
}
