package internal

import (
	"context"
	"time"
)

// EventSource lists single (recurrence expanded) events of a calendar,
// ordered by start time, between from and to inclusive.
type EventSource interface {
	ListEvents(_ context.Context, _ Calendar, from, to time.Time) ([]*Event, error)
}

type Notifier interface {
	Post(_ context.Context, message string) error
}
