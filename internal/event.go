package internal

import "time"

type Event struct {
	ID        string
	Type      EventType
	Title     string
	StartsAt  time.Time
	EndsAt    time.Time
	AllDay    bool
	Organizer string
}

// Day returns the date the event starts on, in UTC.
func (e Event) Day() Date {
	return NewDateFromTime(e.StartsAt.UTC())
}

// Overlaps reports whether e is still going on at some point of w. The end
// is exclusive, so all-day events end at midnight of the following day.
func (e Event) Overlaps(w Window) bool {
	if e.StartsAt.After(w.End) {
		return false
	}
	return e.EndsAt.IsZero() || e.EndsAt.After(w.Start)
}

// During returns the events overlapping w, keeping their order.
func During(events []*Event, w Window) []*Event {
	var out []*Event
	for _, e := range events {
		if e.Overlaps(w) {
			out = append(out, e)
		}
	}
	return out
}

type EventType string

func (s EventType) String() string {
	return string(s)
}

var (
	EventTypeDefault     EventType = "default"
	EventTypeOutOfOffice EventType = "outOfOffice"
	EventTypeFocusTime   EventType = "focusTime"
)

type LeaveRecord struct {
	PersonName string
	Type       string
	Date       Date
}
