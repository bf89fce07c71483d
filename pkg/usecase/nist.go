package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
)

type NISTUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewNISTUseCase(repo interfaces.Repository, now func() time.Time) *NISTUseCase {
	return &NISTUseCase{repo: repo, now: now}
}

func validateNISTAnswers(answers nist.Answers) error {
	for id, value := range answers {
		if !nist.IsQuestion(id) {
			return goerr.Wrap(ErrUnknownQuestion, "unknown NIST function question", goerr.V(QuestionIDKey, id))
		}
		if !nist.IsValidValue(value) {
			return goerr.Wrap(ErrInvalidAnswer, "value must be within [0, 5] in steps of 0.5",
				goerr.V(QuestionIDKey, id),
				goerr.V("value", value))
		}
	}
	return nil
}

// Score computes a maturity result without saving it
func (uc *NISTUseCase) Score(answers nist.Answers) (*nist.Result, error) {
	if err := validateNISTAnswers(answers); err != nil {
		return nil, err
	}
	result := nist.Score(answers)
	return &result, nil
}

func (uc *NISTUseCase) Save(ctx context.Context, systemID model.AISystemID, answers nist.Answers, input AssessmentInput) (*model.NISTAssessment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := validateNISTAnswers(answers); err != nil {
		return nil, err
	}
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}

	snapshot := make(nist.Answers, len(answers))
	for k, v := range answers {
		snapshot[k] = v
	}

	created, err := uc.repo.NISTAssessment().Create(ctx, &model.NISTAssessment{
		ID:             model.NewAssessmentID(),
		SystemID:       systemID,
		CatalogVersion: nist.CatalogVersion,
		Answers:        snapshot,
		Result:         nist.Score(snapshot),
		Assessor:       strings.TrimSpace(input.Assessor),
		Notes:          input.Notes,
		AssessedAt:     uc.now().UTC(),
	})
	if err != nil {
		return nil, mapRepositoryError(err, "failed to save NIST assessment", goerr.V(SystemIDKey, systemID))
	}
	return created, nil
}

func (uc *NISTUseCase) Get(ctx context.Context, id model.AssessmentID) (*model.NISTAssessment, error) {
	a, err := uc.repo.NISTAssessment().Get(ctx, id)
	if err != nil {
		return nil, mapAssessmentError(err, id)
	}
	return a, nil
}

func (uc *NISTUseCase) History(ctx context.Context, systemID model.AISystemID) ([]*model.NISTAssessment, error) {
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}
	list, err := uc.repo.NISTAssessment().ListBySystem(ctx, systemID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list NIST assessments", goerr.V(SystemIDKey, systemID))
	}
	return list, nil
}

func (uc *NISTUseCase) Latest(ctx context.Context, systemID model.AISystemID) (*model.NISTAssessment, error) {
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}
	a, err := uc.repo.NISTAssessment().GetLatestBySystem(ctx, systemID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest NIST assessment", goerr.V(SystemIDKey, systemID))
	}
	if a == nil {
		return nil, goerr.Wrap(ErrAssessmentNotFound, "no NIST assessment", goerr.V(SystemIDKey, systemID))
	}
	return a, nil
}
