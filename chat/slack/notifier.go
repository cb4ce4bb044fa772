package slack

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	slackapi "github.com/slack-go/slack"
)

// Notifier posts plain text messages to a single Slack channel.
type Notifier struct {
	client    *slackapi.Client
	channelID string
	logger    zerolog.Logger
}

func NewNotifier(logger zerolog.Logger, token, channelID string, opts ...slackapi.Option) (*Notifier, error) {
	if token == "" {
		return nil, errors.New("slack: missing token")
	}
	if channelID == "" {
		return nil, errors.New("slack: missing channel id")
	}
	return &Notifier{
		client:    slackapi.New(token, opts...),
		channelID: channelID,
		logger:    logger.With().Str("channel", channelID).Logger(),
	}, nil
}

func (n Notifier) Post(ctx context.Context, message string) error {
	_, ts, err := n.client.PostMessageContext(ctx, n.channelID, slackapi.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("slack: posting message to %s: %w", n.channelID, err)
	}
	n.logger.Debug().Str("ts", ts).Msg("message posted")
	return nil
}
