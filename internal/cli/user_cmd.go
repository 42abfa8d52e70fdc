package cli

import (
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/cli/formatter"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/spf13/cobra"
)

func newUserCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(
		newUserAddCmd(a),
		newUserListCmd(a),
		newUserUpdateCmd(a),
		newUserRemoveCmd(a),
	)
	return cmd
}

// userFlags binds the editable user fields. Only flags the caller sets are
// applied on update.
func userFlags(cmd *cobra.Command, u *domain.User) {
	cmd.Flags().StringVar(&u.Username, "username", "", "Login name")
	cmd.Flags().StringVar(&u.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&u.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&u.Password, "password", "", "Password")
	cmd.Flags().Var(newEnumFlag(&u.Role, domain.Roles), "role", "Admin, Supervisor, Senior or Associate")
	cmd.Flags().Var(newEnumFlag(&u.Team, domain.Teams), "team", "Team 1, Team 2 or Team 3")
	cmd.Flags().Var(newEnumFlag(&u.Status, []domain.UserStatus{domain.UserActive, domain.UserInactive}), "status", "Active or Inactive")
}

func newUserAddCmd(a *App) *cobra.Command {
	u := domain.User{Role: domain.RoleAssociate}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Users.Create(cmd.Context(), &u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s [%s]\n", u.Name, u.ID)
			return nil
		},
	}
	userFlags(cmd, &u)
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUserListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users := a.Cache.Users()
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}
}

func newUserUpdateCmd(a *App) *cobra.Command {
	var patch domain.User

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := a.Cache.User(args[0])
			if !ok {
				return fmt.Errorf("user %s: %w", args[0], repository.ErrNotFound)
			}
			f := cmd.Flags()
			if f.Changed("username") {
				u.Username = patch.Username
			}
			if f.Changed("name") {
				u.Name = patch.Name
			}
			if f.Changed("email") {
				u.Email = patch.Email
			}
			if f.Changed("password") {
				u.Password = patch.Password
			}
			if f.Changed("role") {
				u.Role = patch.Role
			}
			if f.Changed("team") {
				u.Team = patch.Team
			}
			if f.Changed("status") {
				u.Status = patch.Status
			}
			if err := a.Users.Update(cmd.Context(), &u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated user %s [%s]\n", u.Name, u.ID)
			return nil
		},
	}
	userFlags(cmd, &patch)
	return cmd
}

func newUserRemoveCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a user who leads and belongs to no project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := a.Cache.User(args[0])
			if !ok {
				return fmt.Errorf("user %s: %w", args[0], repository.ErrNotFound)
			}
			if ok, err := a.confirmRemoval(cmd.OutOrStdout(), yes, "user "+u.Name); !ok || err != nil {
				return err
			}
			if err := a.Users.Delete(cmd.Context(), u.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed user %s\n", u.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
