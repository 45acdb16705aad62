package action

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/graph"
)

// MailboxClient is the slice of Graph that auto-reply needs
type MailboxClient interface {
	GetAutoReply(ctx context.Context, upn string) (*graph.AutoReplySettings, error)
	SetAutoReply(ctx context.Context, upn string, settings *graph.AutoReplySettings) error
}

// AutoReplyParams configures the auto-reply state to converge every
// mailbox in the batch to
type AutoReplyParams struct {
	Status           string `json:"status"`
	ExternalAudience string `json:"externalAudience,omitempty"`
	InternalMessage  string `json:"internalMessage,omitempty"`
	ExternalMessage  string `json:"externalMessage,omitempty"`
	Start            string `json:"start,omitempty"`
	End              string `json:"end,omitempty"`
	TimeZone         string `json:"timeZone,omitempty"`
}

// AutoReply sets mailbox auto-reply configuration. Identities are UPNs.
type AutoReply struct {
	mailbox MailboxClient
	params  AutoReplyParams
	desired *graph.AutoReplySettings
}

// NewAutoReply validates params and builds the action
func NewAutoReply(mailbox MailboxClient, params AutoReplyParams) (*AutoReply, error) {
	switch params.Status {
	case graph.AutoReplyDisabled, graph.AutoReplyAlwaysEnabled, graph.AutoReplyScheduled:
	default:
		return nil, goerr.New("invalid auto-reply status", goerr.V("status", params.Status))
	}
	if params.Status == graph.AutoReplyScheduled && (params.Start == "" || params.End == "") {
		return nil, goerr.New("scheduled auto-reply needs start and end")
	}

	desired := &graph.AutoReplySettings{
		Status:               params.Status,
		ExternalAudience:     params.ExternalAudience,
		InternalReplyMessage: params.InternalMessage,
		ExternalReplyMessage: params.ExternalMessage,
	}
	if params.Status != graph.AutoReplyDisabled && desired.ExternalAudience == "" {
		desired.ExternalAudience = graph.AudienceAll
	}
	if params.Start != "" {
		desired.ScheduledStart = &graph.DateTimeTimeZone{DateTime: params.Start, TimeZone: timezone(params)}
	}
	if params.End != "" {
		desired.ScheduledEnd = &graph.DateTimeTimeZone{DateTime: params.End, TimeZone: timezone(params)}
	}

	return &AutoReply{mailbox: mailbox, params: params, desired: desired}, nil
}

func timezone(params AutoReplyParams) string {
	if params.TimeZone != "" {
		return params.TimeZone
	}
	return "UTC"
}

func (a *AutoReply) Name() types.ActionName { return NameAutoReply }

func (a *AutoReply) Params() any { return a.params }

func (a *AutoReply) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	upn := id.String()
	current, err := a.mailbox.GetAutoReply(ctx, upn)
	if err != nil {
		return model.ApplyReport{}, err
	}

	if !a.wouldChange(current) {
		return model.ApplyReport{NoChange: true, Detail: "auto-reply already " + a.desired.Status}, nil
	}
	if err := a.mailbox.SetAutoReply(ctx, upn, a.desired); err != nil {
		return model.ApplyReport{}, err
	}
	return model.ApplyReport{Detail: "auto-reply set to " + a.desired.Status}, nil
}

// wouldChange decides whether a PATCH is worth sending. Graph hands
// message bodies back HTML-wrapped, so they cannot be compared against
// the plain text we send; whenever a message body is part of the desired
// settings the action always applies.
func (a *AutoReply) wouldChange(current *graph.AutoReplySettings) bool {
	if a.desired.InternalReplyMessage != "" || a.desired.ExternalReplyMessage != "" {
		return true
	}
	if current.Status != a.desired.Status {
		return true
	}
	if a.desired.Status != graph.AutoReplyDisabled && current.ExternalAudience != a.desired.ExternalAudience {
		return true
	}
	return false
}
