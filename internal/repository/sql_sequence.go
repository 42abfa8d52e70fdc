package repository

import (
	"context"
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

var kindTables = map[domain.Kind]string{
	domain.KindUser:     "users",
	domain.KindClient:   "clients",
	domain.KindProject:  "projects",
	domain.KindTask:     "tasks",
	domain.KindActivity: "activities",
}

// SQLSequenceRepo allocates per-collection id sequence values from the
// entity_sequences table.
type SQLSequenceRepo struct {
	db db.DBTX
}

func NewSQLSequenceRepo(conn db.DBTX) *SQLSequenceRepo {
	return &SQLSequenceRepo{db: conn}
}

// Next returns the next sequence value for kind. The counter is seeded from
// the highest stored row on first use and only ever moves forward, so ids of
// deleted rows are never handed out again. Allocation is a single atomic
// UPDATE ... RETURNING and is safe under concurrent creates.
func (r *SQLSequenceRepo) Next(ctx context.Context, kind domain.Kind) (int, error) {
	table, ok := kindTables[kind]
	if !ok {
		return 0, fmt.Errorf("no sequence for kind %q", kind)
	}

	seed := `INSERT INTO entity_sequences (kind, next_seq)
		SELECT ?, COALESCE(MAX(position), 0) + 1 FROM ` + table + ` WHERE true
		ON CONFLICT (kind) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, seed, string(kind)); err != nil {
		return 0, fmt.Errorf("seeding %s sequence: %w", kind, err)
	}

	var next int
	alloc := `UPDATE entity_sequences
		SET next_seq = next_seq + 1
		WHERE kind = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, alloc, string(kind)).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating %s sequence: %w", kind, err)
	}
	return next, nil
}
