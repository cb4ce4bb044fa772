package runner

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/guilherme-santos/leavebot/internal"
	"github.com/guilherme-santos/leavebot/internal/report"
)

var ErrJobFailed = errors.New("job failed, check the logs")

type Builder interface {
	Build(_ context.Context, _ report.Report, today internal.Date) (string, error)
}

// Runner builds a report and posts it. A failed run is logged and not
// retried.
type Runner struct {
	builder  Builder
	notifier internal.Notifier
	logger   zerolog.Logger

	// Now returns the current time, time.Now when nil.
	Now func() time.Time
}

func New(logger zerolog.Logger, builder Builder, notifier internal.Notifier) *Runner {
	return &Runner{
		builder:  builder,
		notifier: notifier,
		logger:   logger,
	}
}

func (r Runner) today() internal.Date {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return internal.NewDateFromTime(now().UTC())
}

// Run posts rep for the current UTC day.
func (r Runner) Run(ctx context.Context, rep report.Report) error {
	return r.RunFor(ctx, rep, r.today())
}

func (r Runner) RunFor(ctx context.Context, rep report.Report, today internal.Date) error {
	logger := r.logger.With().Str("report", rep.Name).Stringer("date", today).Logger()
	logger.Info().Msg("building report")
	started := time.Now()

	msg, err := r.builder.Build(ctx, rep, today)
	if err != nil {
		logger.Error().
			Str("op", "build").
			Str("error", internal.Truncate(err.Error())).
			Msg("unable to build report, nothing posted")
		return ErrJobFailed
	}

	if err := r.notifier.Post(ctx, msg); err != nil {
		logger.Error().
			Str("op", "post").
			Str("error", internal.Truncate(err.Error())).
			Msg("unable to post report")
		return ErrJobFailed
	}

	logger.Info().Dur("took", time.Since(started)).Msg("report posted")
	return nil
}
