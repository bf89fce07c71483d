package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/uk"
)

type UKUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewUKUseCase(repo interfaces.Repository, now func() time.Time) *UKUseCase {
	return &UKUseCase{repo: repo, now: now}
}

func validateUKAnswers(answers uk.Answers) error {
	for id, level := range answers {
		if !uk.IsQuestion(id) {
			return goerr.Wrap(ErrUnknownQuestion, "unknown UK principle question", goerr.V(QuestionIDKey, id))
		}
		if !level.IsValid() {
			return goerr.Wrap(ErrInvalidAnswer, "invalid implementation level",
				goerr.V(QuestionIDKey, id),
				goerr.V("level", level))
		}
	}
	return nil
}

// Score computes a result without saving it
func (uc *UKUseCase) Score(answers uk.Answers) (*uk.Result, error) {
	if err := validateUKAnswers(answers); err != nil {
		return nil, err
	}
	result := uk.Score(answers)
	return &result, nil
}

func (uc *UKUseCase) Save(ctx context.Context, systemID model.AISystemID, answers uk.Answers, input AssessmentInput) (*model.UKAssessment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := validateUKAnswers(answers); err != nil {
		return nil, err
	}
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}

	snapshot := make(uk.Answers, len(answers))
	for k, v := range answers {
		snapshot[k] = v
	}

	created, err := uc.repo.UKAssessment().Create(ctx, &model.UKAssessment{
		ID:             model.NewAssessmentID(),
		SystemID:       systemID,
		CatalogVersion: uk.CatalogVersion,
		Answers:        snapshot,
		Result:         uk.Score(snapshot),
		Assessor:       strings.TrimSpace(input.Assessor),
		Notes:          input.Notes,
		AssessedAt:     uc.now().UTC(),
	})
	if err != nil {
		return nil, mapRepositoryError(err, "failed to save UK assessment", goerr.V(SystemIDKey, systemID))
	}
	return created, nil
}

func (uc *UKUseCase) Get(ctx context.Context, id model.AssessmentID) (*model.UKAssessment, error) {
	a, err := uc.repo.UKAssessment().Get(ctx, id)
	if err != nil {
		return nil, mapAssessmentError(err, id)
	}
	return a, nil
}

func (uc *UKUseCase) History(ctx context.Context, systemID model.AISystemID) ([]*model.UKAssessment, error) {
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}
	list, err := uc.repo.UKAssessment().ListBySystem(ctx, systemID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list UK assessments", goerr.V(SystemIDKey, systemID))
	}
	return list, nil
}

func (uc *UKUseCase) Latest(ctx context.Context, systemID model.AISystemID) (*model.UKAssessment, error) {
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}
	a, err := uc.repo.UKAssessment().GetLatestBySystem(ctx, systemID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest UK assessment", goerr.V(SystemIDKey, systemID))
	}
	if a == nil {
		return nil, goerr.Wrap(ErrAssessmentNotFound, "no UK assessment", goerr.V(SystemIDKey, systemID))
	}
	return a, nil
}
