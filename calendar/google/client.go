package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/guilherme-santos/leavebot/internal"
)

type Client struct {
	svc    *calendar.Service
	logger zerolog.Logger
}

// NewClient creates a read-only calendar client from authorized user (or
// service account) credentials in JSON.
func NewClient(ctx context.Context, logger zerolog.Logger, credJSON []byte) (*Client, error) {
	if len(credJSON) == 0 {
		return nil, errors.New("google: missing credentials")
	}
	creds, err := google.CredentialsFromJSON(ctx, credJSON, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("google: parsing credentials: %w", err)
	}
	svc, err := calendar.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("google: creating calendar service: %w", err)
	}
	return NewClientFromService(logger, svc), nil
}

func NewClientFromService(logger zerolog.Logger, svc *calendar.Service) *Client {
	return &Client{
		svc:    svc,
		logger: logger.With().Str("provider", "google").Logger(),
	}
}

// ListEvents returns the events of cal starting between from and to, with
// recurring events expanded into single instances ordered by start time.
func (c Client) ListEvents(ctx context.Context, cal internal.Calendar, from, to time.Time) ([]*internal.Event, error) {
	logger := internal.CalendarLogger(c.logger, cal)
	logger.Debug().Time("from", from).Time("to", to).Msg("listing events")

	call := c.svc.Events.
		List(cal.ID).
		Context(ctx).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339))

	var (
		events        []*internal.Event
		nextPageToken string
	)
	for {
		res, err := call.PageToken(nextPageToken).Do()
		if err != nil {
			logger.Error().Str("error", internal.Truncate(err.Error())).Msg("unable to list events ❌")
			if isNotFound(err) {
				return nil, fmt.Errorf("google: calendar %s not found or not shared: %w", cal, err)
			}
			return nil, fmt.Errorf("google: listing events of %s: %w", cal, err)
		}
		for _, item := range res.Items {
			if item.Status == "cancelled" {
				continue
			}
			e, err := newEvent(item)
			if err != nil {
				return nil, fmt.Errorf("google: event %s of %s: %w", item.Id, cal, err)
			}
			events = append(events, e)
		}
		nextPageToken = res.NextPageToken
		if nextPageToken == "" {
			break
		}
	}
	logger.Debug().Int("events", len(events)).Msg("events listed ✅")
	return events, nil
}

func isNotFound(err error) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	if gErr.Code == http.StatusNotFound {
		return true
	}
	for _, e := range gErr.Errors {
		if e.Reason == "notFound" {
			return true
		}
	}
	return false
}
