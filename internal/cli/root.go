// Package cli is the protrack command line: cobra commands over the shared
// application services, rendered with lipgloss.
package cli

import (
	"fmt"
	"net/http"

	"github.com/Neoksnaman/ProTrack/internal/app"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/spf13/cobra"
)

// App is the CLI view of the application.
type App struct {
	*app.App

	// Metrics is mounted on /metrics by serve.
	Metrics http.Handler
	Addr    string

	// IsInteractive reports whether stdin is a terminal. Removals only ask
	// for confirmation when it returns true.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title string) (bool, error)
}

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	config string
	as     string
}

// NewRootCmd creates the top-level "protrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "protrack",
		Short:         "Track projects, tasks and time for client work",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.config, ConfigFlag, "", "Config file (YAML); also $PROTRACK_CONFIG")
	root.PersistentFlags().StringVar(&flags.as, "as", "", "Act as this user id; list and stats commands apply their access rules")

	root.AddCommand(
		newUserCmd(a),
		newClientCmd(a),
		newProjectCmd(a, flags),
		newTaskCmd(a),
		newActivityCmd(a, flags),
		newStatsCmd(a, flags),
		newServeCmd(a),
		newBackupCmd(a),
		newRefetchCmd(a),
	)
	return root
}

// actor resolves --as. ok is false when no actor was given.
func (f *rootFlags) actor(a *App) (u domain.User, ok bool, err error) {
	if f.as == "" {
		return domain.User{}, false, nil
	}
	u, found := a.Cache.User(f.as)
	if !found {
		return domain.User{}, false, fmt.Errorf("user %s: %w", f.as, repository.ErrNotFound)
	}
	return u, true, nil
}
