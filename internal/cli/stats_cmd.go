package cli

import (
	"fmt"
	"slices"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/cli/formatter"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show project or user statistics",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "project ID",
			Short: "Tasks done and time logged on a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, ok := a.Cache.Project(args[0])
				if !ok {
					return fmt.Errorf("project %s: %w", args[0], repository.ErrNotFound)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectStats(p.Name, a.Stats.Project(p.ID)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "user ID",
			Short: "A user's projects, completed tasks and recent hours",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, ok := a.Cache.User(args[0])
				if !ok {
					return fmt.Errorf("user %s: %w", args[0], repository.ErrNotFound)
				}
				me, restricted, err := flags.actor(a)
				if err != nil {
					return err
				}
				if restricted && !slices.ContainsFunc(access.SupervisableUsers(me, a.Cache.Users()),
					func(s domain.User) bool { return s.ID == u.ID }) {
					return fmt.Errorf("%s may not review %s's time", me.Name, u.Name)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserStats(u.Name, a.Stats.User(u.ID, a.Now())))
				return nil
			},
		},
	)
	return cmd
}
