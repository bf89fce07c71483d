package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

type CoverageUseCase struct {
	repo interfaces.Repository
}

func NewCoverageUseCase(repo interfaces.Repository) *CoverageUseCase {
	return &CoverageUseCase{repo: repo}
}

// Get fetches the latest assessment of every framework concurrently
func (uc *CoverageUseCase) Get(ctx context.Context, systemID model.AISystemID) (*model.Coverage, error) {
	if _, err := requireSystem(ctx, uc.repo, systemID); err != nil {
		return nil, err
	}
	return latestCoverage(ctx, uc.repo, systemID)
}

func latestCoverage(ctx context.Context, repo interfaces.Repository, systemID model.AISystemID) (*model.Coverage, error) {
	coverage := &model.Coverage{SystemID: systemID}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a, err := repo.EUAssessment().GetLatestBySystem(ctx, systemID)
		if err != nil {
			return goerr.Wrap(err, "failed to get latest EU assessment", goerr.V(SystemIDKey, systemID))
		}
		coverage.EU = a
		return nil
	})
	eg.Go(func() error {
		a, err := repo.UKAssessment().GetLatestBySystem(ctx, systemID)
		if err != nil {
			return goerr.Wrap(err, "failed to get latest UK assessment", goerr.V(SystemIDKey, systemID))
		}
		coverage.UK = a
		return nil
	})
	eg.Go(func() error {
		a, err := repo.NISTAssessment().GetLatestBySystem(ctx, systemID)
		if err != nil {
			return goerr.Wrap(err, "failed to get latest NIST assessment", goerr.V(SystemIDKey, systemID))
		}
		coverage.NIST = a
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return coverage, nil
}
