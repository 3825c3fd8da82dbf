package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
	"github.com/studyhall-lab/studyhall/pkg/service/notify"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
)

// Notify holds CLI flags for reminder delivery
type Notify struct {
	slackBotToken  string
	slackChannelID string
}

// Flags returns CLI flags for notification configuration
func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for reminder delivery",
			Category:    "Notify",
			Sources:     cli.EnvVars("STUDYHALL_SLACK_BOT_TOKEN"),
			Destination: &x.slackBotToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID that receives due-soon reminders",
			Category:    "Notify",
			Sources:     cli.EnvVars("STUDYHALL_SLACK_CHANNEL_ID"),
			Destination: &x.slackChannelID,
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.slackBotToken)),
		slog.String("channel_id", x.slackChannelID),
	)
}

// Configure returns the notifier for due-soon reminders: Slack when fully
// configured, the structured log otherwise.
func (x *Notify) Configure() (interfaces.Notifier, error) {
	if x.slackBotToken == "" && x.slackChannelID == "" {
		logging.Default().Info("Slack not configured, reminders go to the log")
		return notify.NewLog(), nil
	}

	if x.slackBotToken == "" || x.slackChannelID == "" {
		return nil, goerr.New("Slack reminders need both --slack-bot-token and --slack-channel-id")
	}

	n, err := notify.NewSlack(x.slackBotToken, x.slackChannelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize Slack notifier")
	}

	logging.Default().Info("Slack reminders enabled", "channel_id", x.slackChannelID)
	return n, nil
}
