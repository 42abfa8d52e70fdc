// Package app wires the Entity Store, the Client Cache and the services into
// one value shared by the HTTP API and the CLI.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/backup"
	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/intelligence"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/Neoksnaman/ProTrack/internal/service"
)

type App struct {
	Store repository.EntityStore
	Cache *cache.Store

	Users      service.UserService
	Clients    service.ClientService
	Projects   service.ProjectService
	Tasks      service.TaskService
	Activities service.ActivityService
	Stats      service.StatsService

	Summarizer intelligence.Summarizer
	// Backups is nil when no sink is configured.
	Backups *backup.Writer

	Logger *slog.Logger
	Now    func() time.Time

	observers []service.UseCaseObserver
}

// ErrNoBackupSink is returned by Backup when no writer is configured.
var ErrNoBackupSink = errors.New("no backup sink configured")

type Option func(*App)

func WithSummarizer(s intelligence.Summarizer) Option {
	return func(a *App) { a.Summarizer = s }
}

func WithBackups(w *backup.Writer) Option {
	return func(a *App) { a.Backups = w }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.Logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.Now = now }
}

func WithObservers(observers ...service.UseCaseObserver) Option {
	return func(a *App) { a.observers = append(a.observers, observers...) }
}

// New builds the services over store and c. Summaries are disabled unless
// WithSummarizer is given.
func New(store repository.EntityStore, c *cache.Store, opts ...Option) *App {
	a := &App{
		Store:      store,
		Cache:      c,
		Summarizer: intelligence.Disabled(),
		Logger:     slog.Default(),
		Now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Users = service.NewUserService(store, c, a.observers...)
	a.Clients = service.NewClientService(store, c, a.observers...)
	a.Projects = service.NewProjectService(store, c, a.observers...)
	a.Tasks = service.NewTaskService(store, c, a.observers...)
	a.Activities = service.NewActivityService(store, c, a.observers...)
	a.Stats = service.NewStatsService(c)
	return a
}

// Backup snapshots the cache through the configured writer.
func (a *App) Backup(ctx context.Context) (string, error) {
	if a.Backups == nil {
		return "", ErrNoBackupSink
	}
	return a.Backups.Write(ctx, backup.Take(a.Cache, a.Now()))
}
