package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/service/slack"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
)

// ClassificationNotifier announces high-impact EU classifications to a Slack channel
type ClassificationNotifier struct {
	slack     slack.Service
	channelID string
	baseURL   string
}

func NewClassificationNotifier(svc slack.Service, channelID, baseURL string) *ClassificationNotifier {
	if svc == nil || channelID == "" {
		return nil
	}
	return &ClassificationNotifier{
		slack:     svc,
		channelID: channelID,
		baseURL:   baseURL,
	}
}

func (n *ClassificationNotifier) Notify(ctx context.Context, system *model.AISystem, assessment *model.EUAssessment) error {
	blocks, text := slack.ClassificationMessage(system, assessment, n.baseURL)

	ts, err := n.slack.PostMessage(ctx, n.channelID, blocks, text)
	if err != nil {
		return goerr.Wrap(err, "failed to notify classification",
			goerr.V(SystemIDKey, system.ID),
			goerr.V(AssessmentIDKey, assessment.ID))
	}

	logging.From(ctx).Info("classification notified",
		"system_id", system.ID,
		"channel_id", n.channelID,
		"ts", ts)
	return nil
}
