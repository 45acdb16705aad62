package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/shiftward/sweep/pkg/domain/model"
)

// maxSlackFailures caps the failure list in a Slack message so a bad run
// against a large batch does not flood the channel
const maxSlackFailures = 10

// Poster is the slice of the Slack service this sink needs
type Poster interface {
	PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack posts the run summary to a channel. Per-identity results are not
// streamed; one message per run is enough for a channel.
type Slack struct {
	poster  Poster
	channel string
}

// NewSlack creates a Slack sink posting to the given channel
func NewSlack(poster Poster, channel string) *Slack {
	return &Slack{poster: poster, channel: channel}
}

// Result is a no-op; only the summary is posted
func (s *Slack) Result(ctx context.Context, result *model.ActionResult) {}

// Summary posts one message describing the finished run
func (s *Slack) Summary(ctx context.Context, summary *model.RunSummary) error {
	blocks := BuildSummaryBlocks(summary)

	if _, _, err := s.poster.PostMessage(ctx, s.channel, slack.MsgOptionBlocks(blocks...)); err != nil {
		return goerr.Wrap(err, "failed to post run summary", goerr.V("channel", s.channel))
	}
	ctxlog.From(ctx).Debug("posted run summary to Slack", "channel", s.channel)
	return nil
}

// BuildSummaryBlocks renders a run summary as Slack Block Kit blocks
func BuildSummaryBlocks(summary *model.RunSummary) []slack.Block {
	emoji := "✅"
	if summary.HasFailures() {
		emoji = "⚠️"
	}
	if summary.Aborted {
		emoji = "🛑"
	}

	headline := fmt.Sprintf("%s *sweep %s* finished: %d applied, %d skipped, %d failed",
		emoji, summary.Action, summary.Applied, summary.Skipped, summary.Failed)
	if summary.Aborted {
		headline += " (aborted)"
	}

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, headline, false, false),
			nil, nil,
		),
	}

	if failures := summary.Failures(); len(failures) > 0 {
		var lines []string
		for i, failure := range failures {
			if i == maxSlackFailures {
				lines = append(lines, fmt.Sprintf("_and %d more_", len(failures)-maxSlackFailures))
				break
			}
			lines = append(lines, fmt.Sprintf("• `%s` %s", failure.Identity, failure.Error))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, strings.Join(lines, "\n"), false, false),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("run `%s` took %s", summary.RunID, summary.Elapsed().Round(timeRounding)),
			false, false),
	))
	return blocks
}
