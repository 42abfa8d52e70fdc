package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/db"
)

// FailingWriteUoW runs transactions like the real unit of work but fails the
// first statement that inserts into, updates or deletes from Table. Multi-write
// operations can then be interrupted at a chosen step and their rollback
// checked.
type FailingWriteUoW struct {
	DB    *db.DB
	Table string
	Err   error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, table: strings.ToLower(u.Table), err: u.Err})
	})
}

type failingWrites struct {
	db.DBTX
	table string
	err   error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if writeTarget(query) == f.table {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// writeTarget names the table a write statement changes, or "" for anything
// else.
func writeTarget(query string) string {
	words := strings.Fields(strings.ToLower(query))
	var table string
	switch {
	case len(words) >= 3 && words[0] == "insert" && words[1] == "into":
		table = words[2]
	case len(words) >= 3 && words[0] == "delete" && words[1] == "from":
		table = words[2]
	case len(words) >= 2 && words[0] == "update":
		table = words[1]
	}
	table, _, _ = strings.Cut(table, "(")
	return table
}
