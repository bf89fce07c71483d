package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
)

// ReconcileUseCase checks that every system's risk classification matches its latest EU assessment
type ReconcileUseCase struct {
	repo interfaces.Repository
}

func NewReconcileUseCase(repo interfaces.Repository) *ReconcileUseCase {
	return &ReconcileUseCase{repo: repo}
}

// Drift is a system whose stored classification differs from the expected one
type Drift struct {
	SystemID model.AISystemID `json:"system_id"`
	Name     string           `json:"name"`
	Stored   types.RiskTier   `json:"stored"`
	Expected types.RiskTier   `json:"expected"`
}

// Run finds every drifting system. When fix is true the expected classification is written back.
func (uc *ReconcileUseCase) Run(ctx context.Context, fix bool) ([]Drift, error) {
	systems, err := uc.repo.AISystem().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list systems")
	}

	logger := logging.From(ctx)
	drifts := make([]Drift, 0)
	for _, s := range systems {
		latest, err := uc.repo.EUAssessment().GetLatestBySystem(ctx, s.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get latest EU assessment", goerr.V(SystemIDKey, s.ID))
		}

		expected := types.RiskTierNotYetAssessed
		if latest != nil {
			expected = latest.Verdict.Tier
		}
		stored := s.RiskClassification.Normalize()
		if stored == expected {
			continue
		}

		drift := Drift{SystemID: s.ID, Name: s.Name, Stored: stored, Expected: expected}
		drifts = append(drifts, drift)
		logger.Warn("classification drift",
			"system_id", s.ID,
			"stored", stored,
			"expected", expected)

		if fix {
			if err := uc.repo.AISystem().UpdateClassification(ctx, s.ID, expected); err != nil {
				return nil, mapRepositoryError(err, "failed to repair classification", goerr.V(SystemIDKey, s.ID))
			}
		}
	}

	return drifts, nil
}
