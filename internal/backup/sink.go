package backup

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// DriverNone turns backups off.
const DriverNone = "none"

// Config selects and configures the sink.
type Config struct {
	// Driver is "file", "s3" or "none".
	Driver string   `yaml:"driver"`
	Dir    string   `yaml:"dir"`
	S3     S3Config `yaml:"s3"`
}

// Enabled reports whether cfg names a sink.
func (c Config) Enabled() bool {
	return !strings.EqualFold(c.Driver, DriverNone)
}

// OpenSink builds the sink named by cfg.Driver.
func OpenSink(ctx context.Context, cfg Config) (Sink, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "file":
		return NewFileSink(cfg.Dir)
	case "s3":
		return NewS3Sink(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown backup driver %q", cfg.Driver)
	}
}

// OpenOnFirstPut defers OpenSink until the first Put. A failed open is
// retried on the next Put.
func OpenOnFirstPut(cfg Config) Sink {
	return &lazySink{cfg: cfg}
}

type lazySink struct {
	cfg Config

	mu   sync.Mutex
	sink Sink
}

func (l *lazySink) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	l.mu.Lock()
	if l.sink == nil {
		sink, err := OpenSink(ctx, l.cfg)
		if err != nil {
			l.mu.Unlock()
			return fmt.Errorf("opening backup sink: %w", err)
		}
		l.sink = sink
	}
	sink := l.sink
	l.mu.Unlock()
	return sink.Put(ctx, key, r, size)
}
