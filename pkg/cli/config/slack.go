package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/service/slack"
	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken  string
	channelID string
	apiURL    string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for classification notifications)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("AIREGISTER_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID that receives PROHIBITED and HIGH_RISK classifications",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("AIREGISTER_SLACK_CHANNEL_ID"),
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Override Slack API base URL",
			Category:    "Slack",
			Hidden:      true,
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("AIREGISTER_SLACK_API_URL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
	)
}

// IsConfigured reports whether both a token and a channel are set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure returns the use case option that enables classification
// notifications, or nil when Slack is not configured.
func (x *Slack) Configure(baseURL string) (usecase.Option, error) {
	if x.botToken == "" && x.channelID == "" {
		logging.Default().Info("Slack not configured, classification notifications disabled")
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.New("both --slack-bot-token and --slack-channel-id are required for notifications")
	}

	var opts []slack.Option
	if x.apiURL != "" {
		opts = append(opts, slack.WithAPIURL(x.apiURL))
	}
	svc, err := slack.New(x.botToken, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}

	logging.Default().Info("Slack classification notifications enabled", "channel_id", x.channelID)
	return usecase.WithSlackNotification(svc, x.channelID, baseURL), nil
}
