package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/model"
)

// assessmentStore keeps immutable assessment records of one framework
type assessmentStore[T any] struct {
	mu      sync.RWMutex
	records map[model.AssessmentID]*T
	key     func(*T) (model.AssessmentID, model.AISystemID, time.Time)
	copy    func(*T) *T
}

func newAssessmentStore[T any](key func(*T) (model.AssessmentID, model.AISystemID, time.Time), copyFn func(*T) *T) *assessmentStore[T] {
	return &assessmentStore[T]{
		records: make(map[model.AssessmentID]*T),
		key:     key,
		copy:    copyFn,
	}
}

// put must be called with the lock held
func (s *assessmentStore[T]) put(record *T) {
	id, _, _ := s.key(record)
	s.records[id] = record
}

func (s *assessmentStore[T]) get(id model.AssessmentID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}
	return s.copy(record), nil
}

// listBySystem returns records newest first; ties on AssessedAt fall back to the time-ordered ID
func (s *assessmentStore[T]) listBySystem(systemID model.AISystemID) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*T, 0)
	for _, record := range s.records {
		if _, sid, _ := s.key(record); sid == systemID {
			out = append(out, s.copy(record))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		idI, _, atI := s.key(out[i])
		idJ, _, atJ := s.key(out[j])
		if !atI.Equal(atJ) {
			return atI.After(atJ)
		}
		return idI > idJ
	})
	return out
}

func (s *assessmentStore[T]) latestBySystem(systemID model.AISystemID) *T {
	records := s.listBySystem(systemID)
	if len(records) == 0 {
		return nil
	}
	return records[0]
}

func prepareAssessment(id *model.AssessmentID, assessedAt *time.Time) {
	if *id == "" {
		*id = model.NewAssessmentID()
	}
	if assessedAt.IsZero() {
		*assessedAt = time.Now().UTC()
	}
}

type euAssessmentRepository struct {
	store      *assessmentStore[model.EUAssessment]
	systemRepo *aiSystemRepository
}

func newEUAssessmentRepository(systemRepo *aiSystemRepository) *euAssessmentRepository {
	return &euAssessmentRepository{
		store: newAssessmentStore(func(a *model.EUAssessment) (model.AssessmentID, model.AISystemID, time.Time) {
			return a.ID, a.SystemID, a.AssessedAt
		}, (*model.EUAssessment).Copy),
		systemRepo: systemRepo,
	}
}

func (r *euAssessmentRepository) Create(ctx context.Context, assessment *model.EUAssessment) (*model.EUAssessment, error) {
	// Lock order: system, then assessment. Both writes happen under both locks.
	r.systemRepo.mu.Lock()
	defer r.systemRepo.mu.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.systemRepo.systems[assessment.SystemID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "system not found", goerr.V("system_id", assessment.SystemID))
	}

	created := assessment.Copy()
	prepareAssessment(&created.ID, &created.AssessedAt)

	if err := r.systemRepo.setClassification(created.SystemID, created.Verdict.Tier); err != nil {
		return nil, err
	}
	r.store.put(created)

	return created.Copy(), nil
}

func (r *euAssessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.EUAssessment, error) {
	return r.store.get(id)
}

func (r *euAssessmentRepository) ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.EUAssessment, error) {
	return r.store.listBySystem(systemID), nil
}

func (r *euAssessmentRepository) GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.EUAssessment, error) {
	return r.store.latestBySystem(systemID), nil
}

type ukAssessmentRepository struct {
	store      *assessmentStore[model.UKAssessment]
	systemRepo *aiSystemRepository
}

func newUKAssessmentRepository(systemRepo *aiSystemRepository) *ukAssessmentRepository {
	return &ukAssessmentRepository{
		store: newAssessmentStore(func(a *model.UKAssessment) (model.AssessmentID, model.AISystemID, time.Time) {
			return a.ID, a.SystemID, a.AssessedAt
		}, (*model.UKAssessment).Copy),
		systemRepo: systemRepo,
	}
}

func (r *ukAssessmentRepository) Create(ctx context.Context, assessment *model.UKAssessment) (*model.UKAssessment, error) {
	if _, err := r.systemRepo.Get(ctx, assessment.SystemID); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := assessment.Copy()
	prepareAssessment(&created.ID, &created.AssessedAt)
	r.store.put(created)

	return created.Copy(), nil
}

func (r *ukAssessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.UKAssessment, error) {
	return r.store.get(id)
}

func (r *ukAssessmentRepository) ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.UKAssessment, error) {
	return r.store.listBySystem(systemID), nil
}

func (r *ukAssessmentRepository) GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.UKAssessment, error) {
	return r.store.latestBySystem(systemID), nil
}

type nistAssessmentRepository struct {
	store      *assessmentStore[model.NISTAssessment]
	systemRepo *aiSystemRepository
}

func newNISTAssessmentRepository(systemRepo *aiSystemRepository) *nistAssessmentRepository {
	return &nistAssessmentRepository{
		store: newAssessmentStore(func(a *model.NISTAssessment) (model.AssessmentID, model.AISystemID, time.Time) {
			return a.ID, a.SystemID, a.AssessedAt
		}, (*model.NISTAssessment).Copy),
		systemRepo: systemRepo,
	}
}

func (r *nistAssessmentRepository) Create(ctx context.Context, assessment *model.NISTAssessment) (*model.NISTAssessment, error) {
	if _, err := r.systemRepo.Get(ctx, assessment.SystemID); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := assessment.Copy()
	prepareAssessment(&created.ID, &created.AssessedAt)
	r.store.put(created)

	return created.Copy(), nil
}

func (r *nistAssessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.NISTAssessment, error) {
	return r.store.get(id)
}

func (r *nistAssessmentRepository) ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.NISTAssessment, error) {
	return r.store.listBySystem(systemID), nil
}

func (r *nistAssessmentRepository) GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.NISTAssessment, error) {
	return r.store.latestBySystem(systemID), nil
}
