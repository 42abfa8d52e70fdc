package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// joinIDs stores an ordered id list as a comma separated cell.
func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

// splitIDs parses a comma separated cell, trimming blanks.
func splitIDs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}

// userIndex loads every user keyed by id. Rows are fully drained before
// returning so callers can issue further queries on a single connection.
func userIndex(ctx context.Context, conn db.DBTX) (map[string]domain.User, error) {
	users, err := NewSQLUserRepo(conn).List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]domain.User, len(users))
	for _, u := range users {
		idx[u.ID] = u
	}
	return idx, nil
}
