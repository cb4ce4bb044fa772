// Package report builds the messages posted by the scheduled jobs.
//
// Every report follows the same path: list the events of the calendars it
// selects over its window, then render them. Reports only differ in those
// three parameters, see [Report].
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/guilherme-santos/leavebot/internal"
	"github.com/guilherme-santos/leavebot/internal/leave"
	"github.com/guilherme-santos/leavebot/internal/meeting"
)

const upcomingDays = 10

const (
	teamLeaveHeader     = "🌴 Team leave today:"
	noTeamLeave         = "No team members on leave today."
	upcomingLeaveHeader = "🗓️ Upcoming team leave (next 10 days):"
	noUpcomingLeave     = "No upcoming team leave in the next 10 days."
	bullet              = "• "
)

// Selection says which configured calendars a report reads.
type Selection int

const (
	TeamCalendars Selection = iota
	PersonalCalendars
)

// Fetched holds the events listed from one calendar.
type Fetched struct {
	Calendar internal.Calendar
	Events   []*internal.Event
}

type Input struct {
	Window    internal.Window
	Calendars []Fetched
	Meetings  meeting.Formatter
}

type Report struct {
	Name      string
	Calendars Selection
	Window    func(today internal.Date) internal.Window
	Render    func(Input) string
}

var (
	TeamLeave = Report{
		Name:      "team-leave",
		Calendars: TeamCalendars,
		Window:    func(today internal.Date) internal.Window { return internal.Days(today, today) },
		Render: func(in Input) string {
			return RenderTeamLeave(leaveRecords(in))
		},
	}
	UpcomingLeave = Report{
		Name:      "upcoming-leave",
		Calendars: TeamCalendars,
		Window: func(today internal.Date) internal.Window {
			return internal.Days(today, today.AddDate(0, 0, upcomingDays))
		},
		Render: func(in Input) string {
			return RenderUpcomingLeave(leaveRecords(in))
		},
	}
	MorningMeetings = Report{
		Name:      "morning-meetings",
		Calendars: PersonalCalendars,
		Window:    func(today internal.Date) internal.Window { return internal.Days(today, today) },
		Render:    renderMeetings("Today"),
	}
	EveningMeetings = Report{
		Name:      "evening-meetings",
		Calendars: PersonalCalendars,
		Window: func(today internal.Date) internal.Window {
			tomorrow := today.AddDate(0, 0, 1)
			return internal.Days(tomorrow, tomorrow)
		},
		Render: renderMeetings("Tomorrow"),
	}
)

var All = []Report{TeamLeave, UpcomingLeave, MorningMeetings, EveningMeetings}

func ByName(name string) (Report, bool) {
	for _, r := range All {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}

type Builder struct {
	source    internal.EventSource
	team      []internal.Calendar
	primary   internal.Calendar
	secondary *internal.Calendar
	meetings  meeting.Formatter
	logger    zerolog.Logger
}

// NewBuilder creates a builder reading team calendars for leave and
// primary plus the optional secondary calendar for meetings.
func NewBuilder(logger zerolog.Logger, source internal.EventSource, team []internal.Calendar, primary internal.Calendar, secondary *internal.Calendar) *Builder {
	b := &Builder{
		source:    source,
		team:      team,
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
	if secondary != nil {
		b.meetings.SecondaryCalendarID = secondary.ID
	}
	return b
}

func (b Builder) calendars(sel Selection) []internal.Calendar {
	if sel == TeamCalendars {
		return b.team
	}
	cals := []internal.Calendar{b.primary}
	if b.secondary != nil {
		cals = append(cals, *b.secondary)
	}
	return cals
}

// Build renders r for the day today. It fails as a whole when any
// calendar can't be listed.
func (b Builder) Build(ctx context.Context, r Report, today internal.Date) (string, error) {
	w := r.Window(today)
	logger := b.logger.With().Str("report", r.Name).Stringer("window", w).Logger()

	in := Input{
		Window:   w,
		Meetings: b.meetings,
	}
	for _, cal := range b.calendars(r.Calendars) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		events, err := b.source.ListEvents(ctx, cal, w.Start, w.End)
		if err != nil {
			return "", fmt.Errorf("report %s: %w", r.Name, err)
		}
		calLogger := internal.CalendarLogger(logger, cal)
		calLogger.Debug().Int("events", len(events)).Msg("events listed")
		in.Calendars = append(in.Calendars, Fetched{Calendar: cal, Events: events})
	}
	return r.Render(in), nil
}

func leaveRecords(in Input) []internal.LeaveRecord {
	var recs []internal.LeaveRecord
	for _, f := range in.Calendars {
		recs = append(recs, leave.Records(f.Calendar, in.Window, f.Events)...)
	}
	return recs
}

func renderMeetings(label string) func(Input) string {
	return func(in Input) string {
		var primary, secondary []*internal.Event
		for i, f := range in.Calendars {
			events := internal.During(f.Events, in.Window)
			if i == 0 {
				primary = events
			} else {
				secondary = append(secondary, events...)
			}
		}
		return in.Meetings.FormatDay(primary, secondary, label)
	}
}

func RenderTeamLeave(recs []internal.LeaveRecord) string {
	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("%s%s (%s)", bullet, r.PersonName, r.Type))
	}
	return render(teamLeaveHeader, lines, noTeamLeave)
}

// RenderUpcomingLeave lists recs by date; leave on the same day keeps the
// order it was given in.
func RenderUpcomingLeave(recs []internal.LeaveRecord) string {
	sorted := make([]internal.LeaveRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, fmt.Sprintf("%s%d %s: %s (%s)", bullet, r.Date.Day(), r.Date.Month(), r.PersonName, r.Type))
	}
	return render(upcomingLeaveHeader, lines, noUpcomingLeave)
}

func render(header string, lines []string, empty string) string {
	if len(lines) == 0 {
		return header + "\n" + empty
	}
	return header + "\n" + strings.Join(lines, "\n")
}
