// Package backup writes JSON snapshots of the client cache to a blob sink.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
)

// KeyPrefix is prepended to every snapshot key.
const KeyPrefix = "protrack/"

const keyTimeLayout = "20060102T150405Z"

// Snapshot is a point-in-time copy of all five collections.
type Snapshot struct {
	TakenAt    time.Time         `json:"takenAt"`
	Users      []domain.User     `json:"users"`
	Clients    []domain.Client   `json:"clients"`
	Projects   []domain.Project  `json:"projects"`
	Tasks      []domain.Task     `json:"tasks"`
	Activities []domain.Activity `json:"activities"`
}

// Take copies the cache. Projects carry their committed status.
func Take(c *cache.Store, now time.Time) Snapshot {
	projects := c.Projects()
	for i := range projects {
		if committed, ok := c.CommittedProject(projects[i].ID); ok {
			projects[i] = committed
		}
	}
	return Snapshot{
		TakenAt:    now.UTC(),
		Users:      c.Users(),
		Clients:    c.Clients(),
		Projects:   projects,
		Tasks:      c.Tasks(),
		Activities: c.Activities(),
	}
}

// Key is the object key the snapshot is stored under.
func (s Snapshot) Key() string {
	return KeyPrefix + "snapshot-" + s.TakenAt.UTC().Format(keyTimeLayout) + ".json"
}

// Sink stores one object.
type Sink interface {
	Put(ctx context.Context, key string, r io.Reader, size int64) error
}

// Writer encodes snapshots and hands them to a Sink.
type Writer struct {
	sink   Sink
	logger *slog.Logger
}

func NewWriter(sink Sink, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{sink: sink, logger: logger}
}

// Write stores snap and returns its key.
func (w *Writer) Write(ctx context.Context, snap Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	key := snap.Key()
	if err := w.sink.Put(ctx, key, bytes.NewReader(data), int64(len(data))); err != nil {
		w.logger.ErrorContext(ctx, "backup_failed", "key", key, "error", err.Error())
		return "", fmt.Errorf("writing snapshot %s: %w", key, err)
	}
	w.logger.InfoContext(ctx, "backup_written",
		"key", key,
		"bytes", len(data),
		"projects", len(snap.Projects),
		"activities", len(snap.Activities),
	)
	return key, nil
}
