package llm

import (
	"log/slog"
	"time"
)

// CallEvent describes one finished Generate call.
type CallEvent struct {
	Task      TaskType
	Model     string
	Latency   time.Duration
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives call events for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events through slog.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	attrs := []any{
		"task", string(e.Task),
		"model", e.Model,
		"latency_ms", e.Latency.Milliseconds(),
		"attempts", e.Attempts,
	}
	if !e.Success {
		o.logger.Warn("llm_call", append(attrs, "error_code", e.ErrorCode)...)
		return
	}
	o.logger.Info("llm_call", attrs...)
}

// Observers fans each event out to every member.
type Observers []Observer

func (obs Observers) OnCallComplete(e CallEvent) {
	for _, o := range obs {
		if o != nil {
			o.OnCallComplete(e)
		}
	}
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
