package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/types"
)

type aiSystemRepository struct {
	mu      sync.RWMutex
	systems map[model.AISystemID]*model.AISystem
}

func newAISystemRepository() *aiSystemRepository {
	return &aiSystemRepository{
		systems: make(map[model.AISystemID]*model.AISystem),
	}
}

// nameTaken must be called with the lock held
func (r *aiSystemRepository) nameTaken(name string, except model.AISystemID) bool {
	for id, s := range r.systems {
		if id != except && s.Name == name {
			return true
		}
	}
	return false
}

func (r *aiSystemRepository) Create(ctx context.Context, system *model.AISystem) (*model.AISystem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := system.Copy()
	created.Name = model.NormalizeName(created.Name)
	if r.nameTaken(created.Name, "") {
		return nil, goerr.Wrap(ErrDuplicateName, "system name already exists", goerr.V("name", created.Name))
	}

	now := time.Now().UTC()
	if created.ID == "" {
		created.ID = model.NewAISystemID()
	}
	created.RiskClassification = created.RiskClassification.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.systems[created.ID] = created
	return created.Copy(), nil
}

func (r *aiSystemRepository) Get(ctx context.Context, id model.AISystemID) (*model.AISystem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.systems[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "system not found", goerr.V("id", id))
	}
	return s.Copy(), nil
}

func (r *aiSystemRepository) List(ctx context.Context) ([]*model.AISystem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	systems := make([]*model.AISystem, 0, len(r.systems))
	for _, s := range r.systems {
		systems = append(systems, s.Copy())
	}
	sort.Slice(systems, func(i, j int) bool {
		return systems[i].Name < systems[j].Name
	})
	return systems, nil
}

func (r *aiSystemRepository) Update(ctx context.Context, system *model.AISystem) (*model.AISystem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.systems[system.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "system not found", goerr.V("id", system.ID))
	}

	name := model.NormalizeName(system.Name)
	if r.nameTaken(name, system.ID) {
		return nil, goerr.Wrap(ErrDuplicateName, "system name already exists", goerr.V("name", name))
	}

	updated := existing.Copy()
	updated.Name = name
	updated.Description = system.Description
	updated.Owner = system.Owner
	updated.Department = system.Department
	updated.Vendor = system.Vendor
	updated.UpdatedAt = time.Now().UTC()

	r.systems[updated.ID] = updated
	return updated.Copy(), nil
}

func (r *aiSystemRepository) Delete(ctx context.Context, id model.AISystemID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.systems[id]; !exists {
		return goerr.Wrap(ErrNotFound, "system not found", goerr.V("id", id))
	}
	delete(r.systems, id)
	return nil
}

func (r *aiSystemRepository) UpdateClassification(ctx context.Context, id model.AISystemID, tier types.RiskTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.setClassification(id, tier)
}

// setClassification must be called with the lock held
func (r *aiSystemRepository) setClassification(id model.AISystemID, tier types.RiskTier) error {
	s, exists := r.systems[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "system not found", goerr.V("id", id))
	}
	s.RiskClassification = tier
	s.UpdatedAt = time.Now().UTC()
	return nil
}
