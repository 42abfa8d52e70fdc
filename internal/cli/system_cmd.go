package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/api"
	"github.com/Neoksnaman/ProTrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and the public status pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			metrics := a.Metrics
			if metrics == nil {
				metrics = http.NotFoundHandler()
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(a.App, metrics),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			a.Logger.InfoContext(ctx, "serving", "addr", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			a.Logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", a.Addr, "Listen address")
	return cmd
}

func newBackupCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a JSON snapshot of every collection to the backup sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.Backup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote backup %s\n", key)
			return nil
		},
	}
}

func newRefetchCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refetch",
		Short: "Reload every collection from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.Cache.Refetch(ctx); err != nil {
				return err
			}
			err := a.Cache.Wait(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLoadStatus(a.Cache.Status()))
			return err
		},
	}
}
