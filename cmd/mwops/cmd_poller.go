package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mwops/mwops/config/mwenv"
	"github.com/mwops/mwops/internal/poller"
	uc "github.com/mwops/mwops/usecase/platform"
)

// newCmdPoller runs the background poll scheduler until SIGINT/SIGTERM.
func newCmdPoller() *cobra.Command {
	return &cobra.Command{Use: "poller", Short: "Run the background poll scheduler", SilenceUsage: true, SilenceErrors: true, RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := mwenv.Load()
		if err != nil {
			return err
		}
		u, err := buildPlatformUseCase(cmd)
		if err != nil {
			return err
		}
		poll := func(ctx context.Context, platformID int64) error {
			_, err := u.Poll(ctx, &uc.PollInput{ID: platformID})
			return err
		}
		s := poller.New(u.Repos.Platform, u.Repos.State, poll, &poller.Options{
			Interval: settings.PollInterval,
			Workers:  settings.PollWorkers,
		})
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}}
}
