package cli

import (
	"fmt"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/cli/formatter"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/spf13/cobra"
)

func newActivityCmd(a *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"log"},
		Short:   "Log and review time spent on tasks",
	}
	cmd.AddCommand(
		newActivityAddCmd(a, flags),
		newActivityListCmd(a, flags),
		newActivityUpdateCmd(a),
		newActivityRemoveCmd(a),
	)
	return cmd
}

func activityFlags(cmd *cobra.Command, act *domain.Activity) {
	cmd.Flags().StringVar(&act.Description, "activity", "", "What was done")
	cmd.Flags().StringVar(&act.TaskID, "task", "", "Task id")
	cmd.Flags().Var(dateFlag{&act.Date}, "date", "Date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&act.StartTime, "start", "", "Start time (HH:mm)")
	cmd.Flags().StringVar(&act.EndTime, "end", "", "End time (HH:mm)")
}

// newActivityAddCmd logs time for --user, falling back to the --as actor.
func newActivityAddCmd(a *App, flags *rootFlags) *cobra.Command {
	var act domain.Activity

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log time against a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := act
			if entry.UserID == "" {
				me, ok, err := flags.actor(a)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("--user or --as is required")
				}
				entry.UserID = me.ID
			}
			if entry.Date.IsZero() {
				entry.Date = a.Now().UTC().Truncate(24 * time.Hour)
			}
			if err := a.Activities.Create(cmd.Context(), &entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s [%s]\n",
				formatter.FormatMinutes(entry.Minutes()), entry.TaskName, entry.ID)
			return nil
		},
	}
	activityFlags(cmd, &act)
	cmd.Flags().StringVar(&act.UserID, "user", "", "User id the time belongs to")
	_ = cmd.MarkFlagRequired("activity")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newActivityListCmd(a *App, flags *rootFlags) *cobra.Command {
	var projectID, taskID, userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged time, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, restricted, err := flags.actor(a)
			if err != nil {
				return err
			}
			visible := map[string]bool{}
			if restricted {
				for _, p := range access.VisibleProjects(me, a.Cache.Projects(), a.Cache.Users()) {
					visible[p.ID] = true
				}
			}

			var out []domain.Activity
			for _, act := range a.Cache.Activities() {
				switch {
				case restricted && !visible[act.ProjectID]:
				case projectID != "" && act.ProjectID != projectID:
				case taskID != "" && act.TaskID != taskID:
				case userID != "" && act.UserID != userID:
				default:
					out = append(out, act)
				}
			}
			if len(out) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activities found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityList(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Only this project")
	cmd.Flags().StringVar(&taskID, "task", "", "Only this task")
	cmd.Flags().StringVar(&userID, "user", "", "Only this user")
	return cmd
}

func newActivityUpdateCmd(a *App) *cobra.Command {
	var patch domain.Activity

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a logged activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, ok := a.Cache.Activity(args[0])
			if !ok {
				return fmt.Errorf("activity %s: %w", args[0], repository.ErrNotFound)
			}
			f := cmd.Flags()
			if f.Changed("activity") {
				act.Description = patch.Description
			}
			if f.Changed("task") {
				act.TaskID = patch.TaskID
			}
			if f.Changed("date") {
				act.Date = patch.Date
			}
			if f.Changed("start") {
				act.StartTime = patch.StartTime
			}
			if f.Changed("end") {
				act.EndTime = patch.EndTime
			}
			if err := a.Activities.Update(cmd.Context(), &act); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s\n", act.ID)
			return nil
		},
	}
	activityFlags(cmd, &patch)
	return cmd
}

func newActivityRemoveCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a logged activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, ok := a.Cache.Activity(args[0])
			if !ok {
				return fmt.Errorf("activity %s: %w", args[0], repository.ErrNotFound)
			}
			what := fmt.Sprintf("%s logged by %s on %s", formatter.FormatMinutes(act.Minutes()), act.UserName, act.Date.Format(domain.DateLayout))
			if ok, err := a.confirmRemoval(cmd.OutOrStdout(), yes, what); !ok || err != nil {
				return err
			}
			if err := a.Activities.Delete(cmd.Context(), act.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed activity %s\n", act.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
