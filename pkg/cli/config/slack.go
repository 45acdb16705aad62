package config

import (
	"log/slog"

	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/report"
	slacksvc "github.com/shiftward/sweep/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds the optional run summary notification configuration
type Slack struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack Bot User OAuth token",
			Category:    "Slack",
			Sources:     cli.EnvVars("SWEEP_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Channel for run summaries",
			Category:    "Slack",
			Sources:     cli.EnvVars("SWEEP_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// IsConfigured checks if Slack notification is enabled
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.Channel != ""
}

// Configure creates the Slack report sink, or nil when not configured.
// Slack is optional; runs work the same without it.
func (s *Slack) Configure() interfaces.ReportSink {
	if !s.IsConfigured() {
		return nil
	}
	return report.NewSlack(slacksvc.New(s.OAuthToken), s.Channel)
}

// LogValue returns structured log value (token masked)
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
	)
}
