package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
		output: os.Stdout,
	}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		a.logger.Error().Err(err).Msg("leavebot failed")
		stop()
		os.Exit(1)
	}
}
