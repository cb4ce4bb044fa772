package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/leavebot/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduled reports until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			ctx := cmd.Context()

			r, err := a.runner(ctx, false)
			if err != nil {
				return err
			}
			s := scheduler.New(a.logger, r)
			if err := s.Register(ctx, scheduler.Triggers); err != nil {
				return err
			}
			s.Start()
			for name, at := range s.Next() {
				a.logger.Info().Str("report", name).Time("next_run", at).Msg("waiting for trigger")
			}

			<-ctx.Done()
			a.logger.Info().Msg("shutting down")

			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			s.Stop(stopCtx)
			return nil
		},
	}
}
