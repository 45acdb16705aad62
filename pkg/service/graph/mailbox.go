package graph

import (
	"context"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
)

// Auto-reply states as Graph spells them
const (
	AutoReplyDisabled      = "disabled"
	AutoReplyAlwaysEnabled = "alwaysEnabled"
	AutoReplyScheduled     = "scheduled"
)

// External audiences for auto-replies
const (
	AudienceNone         = "none"
	AudienceContactsOnly = "contactsOnly"
	AudienceAll          = "all"
)

// DateTimeTimeZone is Graph's split timestamp representation
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// AutoReplySettings mirrors the automaticRepliesSetting resource on a
// mailbox: the state, both message bodies, who outside the org sees the
// external one, and an optional schedule window.
type AutoReplySettings struct {
	Status               string            `json:"status"`
	ExternalAudience     string            `json:"externalAudience,omitempty"`
	InternalReplyMessage string            `json:"internalReplyMessage,omitempty"`
	ExternalReplyMessage string            `json:"externalReplyMessage,omitempty"`
	ScheduledStart       *DateTimeTimeZone `json:"scheduledStartDateTime,omitempty"`
	ScheduledEnd         *DateTimeTimeZone `json:"scheduledEndDateTime,omitempty"`
}

// GetAutoReply reads the current auto-reply configuration of a mailbox
func (c *Client) GetAutoReply(ctx context.Context, upn string) (*AutoReplySettings, error) {
	var settings AutoReplySettings
	path := "/users/" + url.PathEscape(upn) + "/mailboxSettings/automaticRepliesSetting"
	if err := c.get(ctx, path, &settings); err != nil {
		return nil, goerr.Wrap(err, "failed to get auto-reply settings", goerr.V("upn", upn))
	}
	return &settings, nil
}

// SetAutoReply replaces the auto-reply configuration of a mailbox
func (c *Client) SetAutoReply(ctx context.Context, upn string, settings *AutoReplySettings) error {
	body := map[string]*AutoReplySettings{"automaticRepliesSetting": settings}
	path := "/users/" + url.PathEscape(upn) + "/mailboxSettings"
	if err := c.patch(ctx, path, body); err != nil {
		return goerr.Wrap(err, "failed to set auto-reply settings", goerr.V("upn", upn))
	}
	return nil
}
