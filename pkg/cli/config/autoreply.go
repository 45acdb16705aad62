package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/action"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// AutoReply holds the mailbox auto-reply action configuration
type AutoReply struct {
	Status      string
	Audience    string
	MessageFile string
	Internal    string
	External    string
	Start       string
	End         string
	TimeZone    string
}

// messageFile is the YAML layout for canned auto-reply bodies
type messageFile struct {
	Internal string `yaml:"internal"`
	External string `yaml:"external"`
}

// Flags returns CLI flags for AutoReply configuration
func (a *AutoReply) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "status",
			Usage:       "Auto-reply status (disabled, alwaysEnabled, scheduled)",
			Category:    "Action",
			Required:    true,
			Destination: &a.Status,
		},
		&cli.StringFlag{
			Name:        "audience",
			Usage:       "External audience (none, contactsOnly, all)",
			Category:    "Action",
			Destination: &a.Audience,
		},
		&cli.StringFlag{
			Name:        "message-file",
			Usage:       "YAML file with internal/external reply bodies",
			Category:    "Action",
			Sources:     cli.EnvVars("SWEEP_AUTOREPLY_MESSAGES"),
			Destination: &a.MessageFile,
		},
		&cli.StringFlag{
			Name:        "internal-message",
			Usage:       "Reply body for senders inside the organization",
			Category:    "Action",
			Destination: &a.Internal,
		},
		&cli.StringFlag{
			Name:        "external-message",
			Usage:       "Reply body for external senders",
			Category:    "Action",
			Destination: &a.External,
		},
		&cli.StringFlag{
			Name:        "start",
			Usage:       "Scheduled start (2006-01-02T15:04:05)",
			Category:    "Action",
			Destination: &a.Start,
		},
		&cli.StringFlag{
			Name:        "end",
			Usage:       "Scheduled end (2006-01-02T15:04:05)",
			Category:    "Action",
			Destination: &a.End,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "Time zone for start and end (default UTC)",
			Category:    "Action",
			Destination: &a.TimeZone,
		},
	}
}

// Params builds the action parameters, reading the message file when one
// is given. Explicit message flags win over file contents.
func (a *AutoReply) Params() (action.AutoReplyParams, error) {
	params := action.AutoReplyParams{
		Status:           a.Status,
		ExternalAudience: a.Audience,
		InternalMessage:  a.Internal,
		ExternalMessage:  a.External,
		Start:            a.Start,
		End:              a.End,
		TimeZone:         a.TimeZone,
	}

	if a.MessageFile == "" {
		return params, nil
	}

	raw, err := os.ReadFile(a.MessageFile)
	if err != nil {
		return params, goerr.Wrap(err, "failed to read message file", goerr.V("path", a.MessageFile))
	}

	var msg messageFile
	if err := yaml.Unmarshal(raw, &msg); err != nil {
		return params, goerr.Wrap(err, "failed to parse message file", goerr.V("path", a.MessageFile))
	}

	if params.InternalMessage == "" {
		params.InternalMessage = msg.Internal
	}
	if params.ExternalMessage == "" {
		params.ExternalMessage = msg.External
	}

	return params, nil
}

// LogValue returns structured log value
func (a AutoReply) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("status", a.Status),
		slog.String("audience", a.Audience),
		slog.String("message_file", a.MessageFile),
		slog.String("start", a.Start),
		slog.String("end", a.End),
		slog.String("timezone", a.TimeZone),
	)
}
