package slack

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/slack-go/slack"
)

// maxSectionTextBytes keeps section text under the Block Kit limit of 3000 characters
const maxSectionTextBytes = 2900

// ClassificationMessage builds the Block Kit message announcing a new EU classification.
// The second return value is the plain-text fallback.
func ClassificationMessage(system *model.AISystem, assessment *model.EUAssessment, baseURL string) ([]slack.Block, string) {
	tier := assessment.Verdict.Tier
	text := fmt.Sprintf("%s %s classified as %s", tierEmoji(tier), system.Name, tier)

	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, truncateToMaxBytes(text, 150), false, false))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Risk tier*\n"+string(tier), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Assessor*\n"+assessment.Assessor, false, false),
	}
	if system.Owner != "" {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, "*Owner*\n"+system.Owner, false, false))
	}
	if system.Department != "" {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, "*Department*\n"+system.Department, false, false))
	}

	blocks := []slack.Block{
		header,
		slack.NewSectionBlock(nil, fields, nil),
	}

	var detail string
	switch tier {
	case types.RiskTierProhibited:
		detail = "*Prohibited practice*\n" + assessment.Verdict.ProhibitedTrigger
	case types.RiskTierHighRisk:
		detail = "*Requirements*\n• " + strings.Join(assessment.Verdict.ComplianceRequirements, "\n• ")
	}
	if detail != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, truncateToMaxBytes(detail, maxSectionTextBytes), false, false),
			nil, nil,
		))
	}

	if baseURL != "" {
		link := strings.TrimRight(baseURL, "/") + "/api/systems/" + system.ID.String()
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("<%s|Open system record>", link), false, false),
		))
	}

	return blocks, text
}

func tierEmoji(tier types.RiskTier) string {
	switch tier {
	case types.RiskTierProhibited:
		return ":no_entry:"
	case types.RiskTierHighRisk:
		return ":warning:"
	default:
		return ":information_source:"
	}
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8 sequence
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
