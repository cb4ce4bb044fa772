package meeting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/guilherme-santos/leavebot/internal"
)

const (
	TagPersonal = "Personal"
	TagWork     = "Work"

	noMeetings = "No meetings scheduled"
	noTitle    = "No title"
	timeFormat = "15:04"
)

type Line struct {
	Time  string
	Tag   string
	Title string
}

func (l Line) String() string {
	return fmt.Sprintf("%s [%s] - %s", l.Time, l.Tag, l.Title)
}

// Formatter renders a day of meetings from the work calendar merged with
// the optional personal one. Events organized by SecondaryCalendarID are
// tagged as personal.
type Formatter struct {
	SecondaryCalendarID string
	// Location used to print start times, UTC when nil.
	Location *time.Location
}

func (f Formatter) Lines(primary, secondary []*internal.Event) []Line {
	events := make([]*internal.Event, 0, len(primary)+len(secondary))
	events = append(events, primary...)
	events = append(events, secondary...)
	sort.SliceStable(events, func(i, j int) bool {
		return startOf(events[i]).Before(startOf(events[j]))
	})

	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	lines := make([]Line, 0, len(events))
	for _, e := range events {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = noTitle
		}
		start := startOf(e)
		if !e.AllDay {
			start = start.In(loc)
		}
		lines = append(lines, Line{
			Time:  start.Format(timeFormat),
			Tag:   f.tag(e),
			Title: title,
		})
	}
	return lines
}

// FormatDay renders the merged listing under a header naming label, e.g.
// "Today" or "Tomorrow".
func (f Formatter) FormatDay(primary, secondary []*internal.Event, label string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %s's meetings:\n", label)

	lines := f.Lines(primary, secondary)
	if len(lines) == 0 {
		sb.WriteString(noMeetings)
		return sb.String()
	}
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.String())
	}
	return sb.String()
}

func (f Formatter) tag(e *internal.Event) string {
	if f.SecondaryCalendarID != "" && e.Organizer == f.SecondaryCalendarID {
		return TagPersonal
	}
	return TagWork
}

// startOf puts all-day events at midnight of their date.
func startOf(e *internal.Event) time.Time {
	if e.AllDay {
		return e.Day().Time
	}
	return e.StartsAt
}
