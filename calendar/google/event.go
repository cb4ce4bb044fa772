package google

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/guilherme-santos/leavebot/internal"
)

func newEvent(event *calendar.Event) (*internal.Event, error) {
	startsAt, allDay, err := parseEventTime(event.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	var endsAt time.Time
	if event.End != nil {
		endsAt, _, err = parseEventTime(event.End)
		if err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
	}

	var organizer string
	if event.Organizer != nil {
		organizer = event.Organizer.Email
	}
	eventType := internal.EventType(event.EventType)
	if eventType == "" {
		eventType = internal.EventTypeDefault
	}
	return &internal.Event{
		ID:        event.Id,
		Type:      eventType,
		Title:     event.Summary,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		AllDay:    allDay,
		Organizer: organizer,
	}, nil
}

// parseEventTime reads either the timestamp or, for all-day events, the
// date of t. Dates are placed at midnight UTC.
func parseEventTime(t *calendar.EventDateTime) (time.Time, bool, error) {
	switch {
	case t == nil:
		return time.Time{}, false, errors.New("missing date")
	case t.DateTime != "":
		v, err := time.Parse(time.RFC3339, t.DateTime)
		return v, false, err
	case t.Date != "":
		d, err := internal.Parse(internal.DateFormat, t.Date)
		return d.Time, true, err
	default:
		return time.Time{}, false, errors.New("missing date")
	}
}
