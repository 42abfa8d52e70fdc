package cli

import (
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/cli/formatter"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/spf13/cobra"
)

func newTaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskListCmd(a),
		newTaskUpdateCmd(a),
		newTaskRemoveCmd(a),
	)
	return cmd
}

func taskFlags(cmd *cobra.Command, t *domain.Task) {
	cmd.Flags().StringVar(&t.Name, "name", "", "Task name")
	cmd.Flags().StringVar(&t.Description, "description", "", "Description")
	cmd.Flags().StringVar(&t.UserID, "assignee", "", "Assigned user id")
	cmd.Flags().Var(newEnumFlag(&t.Status, domain.TaskStatuses), "status", "To Do, In Progress or Done")
}

func newTaskAddCmd(a *App) *cobra.Command {
	var t domain.Task

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Tasks.Create(cmd.Context(), &t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s [%s]\n", t.Name, t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&t.ProjectID, "project", "", "Project id")
	taskFlags(cmd, &t)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTaskListCmd(a *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := a.Cache.Tasks()
			if projectID != "" {
				tasks = a.Cache.TasksByProject(projectID)
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Only tasks of this project")
	return cmd
}

func newTaskUpdateCmd(a *App) *cobra.Command {
	var patch domain.Task

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task; its activities pick up a new name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := a.Cache.Task(args[0])
			if !ok {
				return fmt.Errorf("task %s: %w", args[0], repository.ErrNotFound)
			}
			f := cmd.Flags()
			if f.Changed("name") {
				t.Name = patch.Name
			}
			if f.Changed("description") {
				t.Description = patch.Description
			}
			if f.Changed("assignee") {
				t.UserID = patch.UserID
			}
			if f.Changed("status") {
				t.Status = patch.Status
			}
			if err := a.Tasks.Update(cmd.Context(), &t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s [%s]\n", t.Name, t.ID)
			return nil
		},
	}
	taskFlags(cmd, &patch)
	return cmd
}

func newTaskRemoveCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task and its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := a.Cache.Task(args[0])
			if !ok {
				return fmt.Errorf("task %s: %w", args[0], repository.ErrNotFound)
			}
			what := fmt.Sprintf("task %s and its %d activity log(s)", t.Name, len(a.Cache.ActivitiesByTask(t.ID)))
			if ok, err := a.confirmRemoval(cmd.OutOrStdout(), yes, what); !ok || err != nil {
				return err
			}
			if err := a.Tasks.Delete(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", t.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
