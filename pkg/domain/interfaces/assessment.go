package interfaces

import (
	"context"

	"github.com/secmon-lab/airegister/pkg/domain/model"
)

// EUAssessmentRepository stores EU AI Act classifications
type EUAssessmentRepository interface {
	// Create stores the assessment and sets the owning system's risk
	// classification to the verdict tier in one atomic step. Returns
	// ErrNotFound if the system does not exist.
	Create(ctx context.Context, assessment *model.EUAssessment) (*model.EUAssessment, error)

	Get(ctx context.Context, id model.AssessmentID) (*model.EUAssessment, error)

	// ListBySystem returns assessments newest first
	ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.EUAssessment, error)

	// GetLatestBySystem returns nil, nil when the system has no assessment
	GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.EUAssessment, error)
}

// UKAssessmentRepository stores UK AI principles scores
type UKAssessmentRepository interface {
	Create(ctx context.Context, assessment *model.UKAssessment) (*model.UKAssessment, error)
	Get(ctx context.Context, id model.AssessmentID) (*model.UKAssessment, error)
	ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.UKAssessment, error)
	GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.UKAssessment, error)
}

// NISTAssessmentRepository stores NIST AI RMF maturity scores
type NISTAssessmentRepository interface {
	Create(ctx context.Context, assessment *model.NISTAssessment) (*model.NISTAssessment, error)
	Get(ctx context.Context, id model.AssessmentID) (*model.NISTAssessment, error)
	ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.NISTAssessment, error)
	GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.NISTAssessment, error)
}
