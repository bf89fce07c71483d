package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/types"
)

type SystemUseCase struct {
	repo interfaces.Repository
}

func NewSystemUseCase(repo interfaces.Repository) *SystemUseCase {
	return &SystemUseCase{repo: repo}
}

// SystemInput holds the user-editable fields of an AI system
type SystemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Department  string `json:"department"`
	Vendor      string `json:"vendor"`
}

func (x SystemInput) validate() error {
	if strings.TrimSpace(x.Name) == "" {
		return goerr.Wrap(ErrNameRequired, "invalid system")
	}
	return nil
}

// Create registers a new system. Its classification starts as NOT_YET_ASSESSED.
func (uc *SystemUseCase) Create(ctx context.Context, input SystemInput) (*model.AISystem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.AISystem().Create(ctx, &model.AISystem{
		Name:               input.Name,
		Description:        input.Description,
		Owner:              input.Owner,
		Department:         input.Department,
		Vendor:             input.Vendor,
		RiskClassification: types.RiskTierNotYetAssessed,
	})
	if err != nil {
		return nil, mapRepositoryError(err, "failed to create system")
	}
	return created, nil
}

func (uc *SystemUseCase) Get(ctx context.Context, id model.AISystemID) (*model.AISystem, error) {
	s, err := uc.repo.AISystem().Get(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, "failed to get system", goerr.V(SystemIDKey, id))
	}
	return s, nil
}

func (uc *SystemUseCase) List(ctx context.Context) ([]*model.AISystem, error) {
	systems, err := uc.repo.AISystem().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list systems")
	}
	return systems, nil
}

// Update changes descriptive fields only; the classification is owned by EU assessments
func (uc *SystemUseCase) Update(ctx context.Context, id model.AISystemID, input SystemInput) (*model.AISystem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.AISystem().Update(ctx, &model.AISystem{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Owner:       input.Owner,
		Department:  input.Department,
		Vendor:      input.Vendor,
	})
	if err != nil {
		return nil, mapRepositoryError(err, "failed to update system", goerr.V(SystemIDKey, id))
	}
	return updated, nil
}

// Delete removes the system record. Its assessments stay as an audit trail.
func (uc *SystemUseCase) Delete(ctx context.Context, id model.AISystemID) error {
	if err := uc.repo.AISystem().Delete(ctx, id); err != nil {
		return mapRepositoryError(err, "failed to delete system", goerr.V(SystemIDKey, id))
	}
	return nil
}

// Summary counts systems per risk classification. Every tier is present in the result.
func (uc *SystemUseCase) Summary(ctx context.Context) (map[types.RiskTier]int, error) {
	systems, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[types.RiskTier]int, len(types.AllRiskTiers()))
	for _, tier := range types.AllRiskTiers() {
		counts[tier] = 0
	}
	for _, s := range systems {
		counts[s.RiskClassification.Normalize()]++
	}
	return counts, nil
}

// mapRepositoryError translates store sentinels into use case sentinels
func mapRepositoryError(err error, msg string, opts ...goerr.Option) error {
	switch {
	case errors.Is(err, interfaces.ErrDuplicateName):
		return goerr.Wrap(ErrDuplicateName, msg, append(opts, goerr.V("cause", err.Error()))...)
	case errors.Is(err, interfaces.ErrNotFound):
		return goerr.Wrap(ErrSystemNotFound, msg, append(opts, goerr.V("cause", err.Error()))...)
	default:
		return goerr.Wrap(err, msg, opts...)
	}
}

func requireSystem(ctx context.Context, repo interfaces.Repository, id model.AISystemID) (*model.AISystem, error) {
	s, err := repo.AISystem().Get(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, "failed to get system", goerr.V(SystemIDKey, id))
	}
	return s, nil
}
