package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/secmon-lab/airegister/pkg/utils/async"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
)

type EUUseCase struct {
	repo     interfaces.Repository
	notifier *ClassificationNotifier
	now      func() time.Time
}

func NewEUUseCase(repo interfaces.Repository, notifier *ClassificationNotifier, now func() time.Time) *EUUseCase {
	return &EUUseCase{
		repo:     repo,
		notifier: notifier,
		now:      now,
	}
}

// AssessmentInput is the common part of a save request for every framework
type AssessmentInput struct {
	Assessor string `json:"assessor"`
	Notes    string `json:"notes"`
}

func (x AssessmentInput) validate() error {
	if strings.TrimSpace(x.Assessor) == "" {
		return goerr.Wrap(ErrAssessorRequired, "invalid assessment")
	}
	return nil
}

// validateEUAnswers rejects identifiers outside the catalog
func validateEUAnswers(answers eu.Answers) error {
	for id := range answers.Prohibited {
		if !eu.IsProhibitedQuestion(id) {
			return goerr.Wrap(ErrUnknownQuestion, "unknown prohibited practice question", goerr.V(QuestionIDKey, id))
		}
	}
	for id := range answers.HighRisk {
		if !eu.IsHighRiskCategory(id) {
			return goerr.Wrap(ErrUnknownQuestion, "unknown high-risk category", goerr.V(QuestionIDKey, id))
		}
	}
	for id := range answers.Limited {
		if !eu.IsLimitedRiskQuestion(id) {
			return goerr.Wrap(ErrUnknownQuestion, "unknown limited risk question", goerr.V(QuestionIDKey, id))
		}
	}
	return nil
}

func normalizeEUAnswers(answers eu.Answers) eu.Answers {
	out := answers.Clone()
	if out.Prohibited == nil {
		out.Prohibited = map[eu.QuestionID]bool{}
	}
	if out.HighRisk == nil {
		out.HighRisk = map[eu.CategoryID]bool{}
	}
	if out.Limited == nil {
		out.Limited = map[eu.QuestionID]bool{}
	}
	return out
}

// Classify computes a verdict without saving it
func (uc *EUUseCase) Classify(answers eu.Answers) (*eu.Verdict, error) {
	if err := validateEUAnswers(answers); err != nil {
		return nil, err
	}
	verdict := eu.Classify(answers)
	return &verdict, nil
}

// WizardState is the questionnaire position after a transition
type WizardState struct {
	Step       eu.Step     `json:"step"`
	Answers    eu.Answers  `json:"answers"`
	CanAdvance bool        `json:"can_advance"`
	Done       bool        `json:"done"`
	Verdict    *eu.Verdict `json:"verdict,omitempty"`
}

// Wizard applies one action to a client-held questionnaire state. The server keeps no session.
func (uc *EUUseCase) Wizard(step eu.Step, answers eu.Answers, action eu.Action) (*WizardState, error) {
	if step == "" {
		step = eu.StepProhibited
	}
	if err := validateEUAnswers(answers); err != nil {
		return nil, err
	}
	answers = normalizeEUAnswers(answers)

	next, err := eu.Transition(step, answers, action)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidWizard, err.Error(),
			goerr.V("step", step),
			goerr.V("action", action))
	}

	state := &WizardState{
		Step:       next,
		Answers:    answers,
		CanAdvance: next != eu.StepResult && eu.IsStepComplete(next, answers),
		Done:       next == eu.StepResult,
	}
	if state.Done {
		verdict := eu.Classify(answers)
		state.Verdict = &verdict
	}
	return state, nil
}

// Save classifies the answers, stores the assessment and updates the system's
// risk classification in one atomic repository call.
func (uc *EUUseCase) Save(ctx context.Context, systemID model.AISystemID, answers eu.Answers, input AssessmentInput) (*model.EUAssessment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := validateEUAnswers(answers); err != nil {
		return nil, err
	}

	system, err := requireSystem(ctx, uc.repo, systemID)
	if err != nil {
		return nil, err
	}

	answers = normalizeEUAnswers(answers)
	created, err := uc.repo.EUAssessment().Create(ctx, &model.EUAssessment{
		ID:             model.NewAssessmentID(),
		SystemID:       systemID,
		CatalogVersion: eu.CatalogVersion,
		Answers:        answers,
		Verdict:        eu.Classify(answers),
		Assessor:       strings.TrimSpace(input.Assessor),
		Notes:          input.Notes,
		AssessedAt:     uc.now().UTC(),
	})
	if err != nil {
		return nil, mapRepositoryError(err, "failed to save EU assessment", goerr.V(SystemIDKey, systemID))
	}

	logging.From(ctx).Info("EU assessment saved",
		"system_id", systemID,
		"assessment_id", created.ID,
		"tier", created.Verdict.Tier)

	if uc.notifier != nil && notifiable(created.Verdict.Tier) {
		system.RiskClassification = created.Verdict.Tier
		async.Dispatch(ctx, "notify_classification", func(ctx context.Context) error {
			return uc.notifier.Notify(ctx, system, created)
		})
	}

	return created, nil
}

func notifiable(tier types.RiskTier) bool {
	return tier == types.RiskTierProhibited || tier == types.RiskTierHighRisk
}

func (uc *EUUseCase) Get(ctx context.Context, id model.AssessmentID) (*model.EUAssessment, error) {
	a, err := uc.repo.EUAssessment().Get(ctx, id)
	if err != nil {
		return nil, mapAssessmentError(err, id)
	}
	return a, nil
}

// History returns every EU assessment of the system, newest first
func (uc *EUUseCase) History(ctx context.Context, systemID model.AISystemID) ([]*model.EUAssessment, error) {
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}
	list, err := uc.repo.EUAssessment().ListBySystem(ctx, systemID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list EU assessments", goerr.V(SystemIDKey, systemID))
	}
	return list, nil
}

// Latest returns the most recent EU assessment, or ErrAssessmentNotFound when there is none
func (uc *EUUseCase) Latest(ctx context.Context, systemID model.AISystemID) (*model.EUAssessment, error) {
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}
	a, err := uc.repo.EUAssessment().GetLatestBySystem(ctx, systemID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest EU assessment", goerr.V(SystemIDKey, systemID))
	}
	if a == nil {
		return nil, goerr.Wrap(ErrAssessmentNotFound, "no EU assessment", goerr.V(SystemIDKey, systemID))
	}
	return a, nil
}

func mapAssessmentError(err error, id model.AssessmentID) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrAssessmentNotFound, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}
	return goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
}
