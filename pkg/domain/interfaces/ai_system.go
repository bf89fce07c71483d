package interfaces

import (
	"context"

	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/types"
)

// AISystemRepository defines the interface for AI system register data access
type AISystemRepository interface {
	// Create stores a new system with a generated ID. Returns ErrDuplicateName
	// if another system already uses the same name.
	Create(ctx context.Context, system *model.AISystem) (*model.AISystem, error)

	// Get retrieves a system by ID
	Get(ctx context.Context, id model.AISystemID) (*model.AISystem, error)

	// List retrieves all systems ordered by name
	List(ctx context.Context) ([]*model.AISystem, error)

	// Update replaces the descriptive fields of an existing system.
	// RiskClassification is left untouched.
	Update(ctx context.Context, system *model.AISystem) (*model.AISystem, error)

	// Delete deletes a system by ID. Assessments are kept.
	Delete(ctx context.Context, id model.AISystemID) error

	// UpdateClassification overwrites the risk classification of a system
	UpdateClassification(ctx context.Context, id model.AISystemID, tier types.RiskTier) error
}
