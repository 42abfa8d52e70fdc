package cli

import (
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/cli/formatter"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/spf13/cobra"
)

func newClientCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}
	cmd.AddCommand(
		newClientAddCmd(a),
		newClientListCmd(a),
		newClientUpdateCmd(a),
		newClientRemoveCmd(a),
	)
	return cmd
}

func newClientAddCmd(a *App) *cobra.Command {
	var c domain.Client

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Clients.Create(cmd.Context(), &c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created client %s [%s]\n", c.Name, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "Client name")
	cmd.Flags().StringVar(&c.Address, "address", "", "Postal address")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newClientListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients := a.Cache.Clients()
			if len(clients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clients found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatClientList(clients))
			return nil
		},
	}
}

func newClientUpdateCmd(a *App) *cobra.Command {
	var name, address string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a client; projects pick up a new name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := a.Cache.Client(args[0])
			if !ok {
				return fmt.Errorf("client %s: %w", args[0], repository.ErrNotFound)
			}
			if cmd.Flags().Changed("name") {
				c.Name = name
			}
			if cmd.Flags().Changed("address") {
				c.Address = address
			}
			if err := a.Clients.Update(cmd.Context(), &c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated client %s [%s]\n", c.Name, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Client name")
	cmd.Flags().StringVar(&address, "address", "", "Postal address")
	return cmd
}

func newClientRemoveCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a client no project references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := a.Cache.Client(args[0])
			if !ok {
				return fmt.Errorf("client %s: %w", args[0], repository.ErrNotFound)
			}
			if ok, err := a.confirmRemoval(cmd.OutOrStdout(), yes, "client "+c.Name); !ok || err != nil {
				return err
			}
			if err := a.Clients.Delete(cmd.Context(), c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed client %s\n", c.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
