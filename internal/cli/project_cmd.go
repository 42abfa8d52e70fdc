package cli

import (
	"fmt"
	"io"

	"github.com/Neoksnaman/ProTrack/internal/access"
	"github.com/Neoksnaman/ProTrack/internal/cli/formatter"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/intelligence"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/Neoksnaman/ProTrack/internal/service"
	"github.com/spf13/cobra"
)

func newProjectCmd(a *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(a),
		newProjectListCmd(a, flags),
		newProjectShowCmd(a),
		newProjectUpdateCmd(a),
		newProjectRemoveCmd(a),
		newProjectStatusCmd(a),
		newProjectShareCmd(a),
		newProjectSummaryCmd(a),
	)
	return cmd
}

// projectFields are the flags shared by add and update.
type projectFields struct {
	p          domain.Project
	clientName string
}

func (pf *projectFields) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&pf.p.Name, "name", "", "Project name")
	f.StringVar(&pf.p.Description, "description", "", "Description")
	f.StringVar(&pf.p.ClientID, "client", "", "Client id")
	f.StringVar(&pf.clientName, "client-name", "", "Client name; created when no client matches")
	f.StringVar(&pf.p.TeamLeaderID, "leader", "", "Team leader user id")
	f.StringSliceVar(&pf.p.TeamMemberIDs, "members", nil, "Team member user ids, comma separated")
	f.Var(dateFlag{&pf.p.StartDate}, "start", "Start date (YYYY-MM-DD)")
	f.Var(dateFlag{&pf.p.Deadline}, "deadline", "Deadline (YYYY-MM-DD)")
	f.Var(newEnumFlag(&pf.p.Status, domain.ProjectStatuses), "status", "Planning, In Progress, Blocked or Completed")
	f.Var(newEnumFlag(&pf.p.Priority, domain.Priorities), "priority", "High, Medium or Low")
	f.StringVar(&pf.p.Type, "type", "", "Project type")
}

// resolveClient fills ClientID from --client-name when no id was given.
func (pf *projectFields) resolveClient(cmd *cobra.Command, a *App, p *domain.Project) error {
	if !cmd.Flags().Changed("client-name") || cmd.Flags().Changed("client") {
		return nil
	}
	c, err := a.Clients.GetOrCreateByName(cmd.Context(), pf.clientName)
	if err != nil {
		return err
	}
	p.ClientID = c.ID
	return nil
}

func newProjectAddCmd(a *App) *cobra.Command {
	pf := &projectFields{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pf.p
			if err := pf.resolveClient(cmd, a, &p); err != nil {
				return err
			}
			if err := a.Projects.Create(cmd.Context(), &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}
	pf.bind(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("leader")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("deadline")
	cmd.MarkFlagsOneRequired("client", "client-name")
	return cmd
}

func newProjectListCmd(a *App, flags *rootFlags) *cobra.Command {
	var filter service.ProjectFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := a.Cache.Projects()
			me, ok, err := flags.actor(a)
			if err != nil {
				return err
			}
			if ok {
				projects = access.VisibleProjects(me, projects, a.Cache.Users())
			}
			now := a.Now()
			projects = service.FilterProjects(projects, filter, now)
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, now))
			return nil
		},
	}
	f := cmd.Flags()
	f.Var(newEnumFlag(&filter.Status, domain.ProjectStatuses), "status", "Only projects with this status")
	f.Var(newEnumFlag(&filter.Priority, domain.Priorities), "priority", "Only projects with this priority")
	f.BoolVar(&filter.OverdueOnly, "overdue", false, "Only overdue projects")
	f.StringVarP(&filter.Query, "query", "q", "", "Match project or client name")
	return cmd
}

func newProjectShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project with its tasks and time log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.Cache.Project(args[0])
			if !ok {
				return fmt.Errorf("project %s: %w", args[0], repository.ErrNotFound)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(formatter.ProjectDetail{
				Project:    p,
				Stats:      a.Stats.Project(p.ID),
				Tasks:      a.Cache.TasksByProject(p.ID),
				Activities: a.Cache.ActivitiesByProject(p.ID),
				Now:        a.Now(),
			}))
			return nil
		},
	}
}

func newProjectUpdateCmd(a *App) *cobra.Command {
	pf := &projectFields{}

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.Cache.CommittedProject(args[0])
			if !ok {
				return fmt.Errorf("project %s: %w", args[0], repository.ErrNotFound)
			}
			f := cmd.Flags()
			if f.Changed("name") {
				p.Name = pf.p.Name
			}
			if f.Changed("description") {
				p.Description = pf.p.Description
			}
			if f.Changed("client") {
				p.ClientID = pf.p.ClientID
			}
			if f.Changed("leader") {
				p.TeamLeaderID = pf.p.TeamLeaderID
			}
			if f.Changed("members") {
				p.TeamMemberIDs = pf.p.TeamMemberIDs
			}
			if f.Changed("start") {
				p.StartDate = pf.p.StartDate
			}
			if f.Changed("deadline") {
				p.Deadline = pf.p.Deadline
			}
			if f.Changed("status") {
				p.Status = pf.p.Status
			}
			if f.Changed("priority") {
				p.Priority = pf.p.Priority
			}
			if f.Changed("type") {
				p.Type = pf.p.Type
			}
			if err := pf.resolveClient(cmd, a, &p); err != nil {
				return err
			}
			if err := a.Projects.Update(cmd.Context(), &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newProjectRemoveCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project with its tasks and activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.Cache.Project(args[0])
			if !ok {
				return fmt.Errorf("project %s: %w", args[0], repository.ErrNotFound)
			}
			what := fmt.Sprintf("project %s and its %d task(s)", p.Name, len(a.Cache.TasksByProject(p.ID)))
			if ok, err := a.confirmRemoval(cmd.OutOrStdout(), yes, what); !ok || err != nil {
				return err
			}
			if err := a.Projects.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", p.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newProjectStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set a project's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var status domain.ProjectStatus
			if err := newEnumFlag(&status, domain.ProjectStatuses).Set(args[1]); err != nil {
				return fmt.Errorf("status %q: %w", args[1], err)
			}
			p, err := a.Projects.SetStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.Name, formatter.StatusPill(p.Status))
			return nil
		},
	}
}

func newProjectShareCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "share ID",
		Short: "Print the project's public status link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.Projects.EnsureShareToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.Project{ShareToken: token}.ShareURL())
			return nil
		},
	}
}

func newProjectSummaryCmd(a *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "summary ID",
		Short: "Ask the AI for a summary, suggestions or a risk report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facts, ok := intelligence.FactsFromCache(a.Cache, args[0])
			if !ok {
				return fmt.Errorf("project %s: %w", args[0], repository.ErrNotFound)
			}
			return runSummary(cmd, a, kind, facts)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "summary", "summary, suggestions or risk")
	return cmd
}

func runSummary(cmd *cobra.Command, a *App, kind string, facts intelligence.ProjectFacts) error {
	ctx, out := cmd.Context(), cmd.OutOrStdout()
	switch kind {
	case "summary":
		s, err := a.Summarizer.SummarizeProject(ctx, facts)
		if err != nil {
			return err
		}
		return writeLine(out, formatter.FormatSummary(s))
	case "suggestions":
		p, err := a.Summarizer.SuggestActions(ctx, facts)
		if err != nil {
			return err
		}
		return writeLine(out, formatter.FormatActionPlan(p))
	case "risk":
		r, err := a.Summarizer.AssessRisk(ctx, facts)
		if err != nil {
			return err
		}
		return writeLine(out, formatter.FormatRiskReport(r))
	default:
		return fmt.Errorf("unknown summary kind %q: use summary, suggestions or risk", kind)
	}
}

func writeLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
