package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
)

// chatPoster is the slice of the Slack API this notifier uses
type chatPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack delivers notifications as Slack messages to a fixed channel
type Slack struct {
	api       chatPoster
	channelID string
}

var _ interfaces.Notifier = &Slack{}

// SlackOption is a functional option for the Slack notifier
type SlackOption func(*Slack)

// WithSlackAPI replaces the Slack API client, mainly for tests
func WithSlackAPI(api chatPoster) SlackOption {
	return func(x *Slack) {
		x.api = api
	}
}

// NewSlack creates a Slack notifier posting to the given channel
func NewSlack(botToken, channelID string, opts ...SlackOption) (*Slack, error) {
	if botToken == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	x := &Slack{
		api:       slack.New(botToken),
		channelID: channelID,
	}

	for _, opt := range opts {
		opt(x)
	}

	return x, nil
}

// Notify posts the notification as one message, title bolded above the body
func (x *Slack) Notify(ctx context.Context, n *model.Notification) error {
	text := fmt.Sprintf("*%s*\n%s", n.Title, n.Message)

	_, _, err := x.api.PostMessageContext(ctx, x.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post notification to Slack",
			goerr.V("channel_id", x.channelID),
			goerr.V("title", n.Title),
		)
	}

	return nil
}
