package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/guilherme-santos/leavebot/internal/report"
)

// Trigger fires Report on a cron Spec evaluated in UTC.
type Trigger struct {
	Report report.Report
	Spec   string
}

var Triggers = []Trigger{
	{Report: report.TeamLeave, Spec: "0 9 * * *"},
	{Report: report.UpcomingLeave, Spec: "0 14 * * MON"},
	{Report: report.MorningMeetings, Spec: "50 8 * * *"},
	{Report: report.EveningMeetings, Spec: "55 16 * * *"},
}

type Runner interface {
	Run(context.Context, report.Report) error
}

// Scheduler runs reports on their triggers, one at a time.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	logger  zerolog.Logger
	entries map[string]cron.EntryID

	// held while a job body runs so jobs never overlap
	mu sync.Mutex
}

func New(logger zerolog.Logger, runner Runner) *Scheduler {
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		runner:  runner,
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// Register adds every trigger. ctx is handed to each job run.
func (s *Scheduler) Register(ctx context.Context, triggers []Trigger) error {
	for _, t := range triggers {
		rep := t.Report
		id, err := s.cron.AddFunc(t.Spec, func() {
			s.run(ctx, rep)
		})
		if err != nil {
			return fmt.Errorf("scheduler: report %s: invalid spec %q: %w", t.Report.Name, t.Spec, err)
		}
		s.entries[t.Report.Name] = id
		s.logger.Info().Str("report", t.Report.Name).Str("spec", t.Spec).Msg("report scheduled")
	}
	return nil
}

func (s *Scheduler) run(ctx context.Context, rep report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	// Failures are logged by the runner, the next trigger is the retry.
	_ = s.runner.Run(ctx, rep)
}

// Next returns when each registered report fires next.
func (s *Scheduler) Next() map[string]time.Time {
	now := time.Now().UTC()
	next := make(map[string]time.Time, len(s.entries))
	for name, id := range s.entries {
		next[name] = s.cron.Entry(id).Schedule.Next(now)
	}
	return next
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for a running job to finish or ctx to
// be done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// NextRun parses spec and returns its first activation after t, in UTC.
func NextRun(spec string, t time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(t.UTC()), nil
}

type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
