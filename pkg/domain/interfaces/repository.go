package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	AISystem() AISystemRepository
	EUAssessment() EUAssessmentRepository
	UKAssessment() UKAssessmentRepository
	NISTAssessment() NISTAssessmentRepository
}
