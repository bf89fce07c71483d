package usecase

import (
	"time"

	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/service/slack"
)

type UseCases struct {
	repo     interfaces.Repository
	notifier *ClassificationNotifier
	now      func() time.Time

	System    *SystemUseCase
	EU        *EUUseCase
	UK        *UKUseCase
	NIST      *NISTUseCase
	Coverage  *CoverageUseCase
	Export    *ExportUseCase
	Reconcile *ReconcileUseCase
}

type Option func(*UseCases)

// WithSlackNotification posts a message to channelID whenever an EU assessment
// classifies a system as prohibited or high risk. baseURL is used for links and may be empty.
func WithSlackNotification(svc slack.Service, channelID, baseURL string) Option {
	return func(uc *UseCases) {
		uc.notifier = NewClassificationNotifier(svc, channelID, baseURL)
	}
}

// WithClock replaces time.Now for assessment timestamps
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.System = NewSystemUseCase(repo)
	uc.EU = NewEUUseCase(repo, uc.notifier, uc.now)
	uc.UK = NewUKUseCase(repo, uc.now)
	uc.NIST = NewNISTUseCase(repo, uc.now)
	uc.Coverage = NewCoverageUseCase(repo)
	uc.Export = NewExportUseCase(repo)
	uc.Reconcile = NewReconcileUseCase(repo)

	return uc
}
