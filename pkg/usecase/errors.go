package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrSystemNotFound     = errors.New("system not found")
	ErrAssessmentNotFound = errors.New("assessment not found")

	// Conflict errors
	ErrDuplicateName = errors.New("system name already exists")

	// Validation errors
	ErrNameRequired     = errors.New("system name is required")
	ErrAssessorRequired = errors.New("assessor is required")
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrInvalidAnswer    = errors.New("invalid answer value")
	ErrInvalidWizard    = errors.New("invalid wizard request")
	ErrInvalidFramework = errors.New("invalid framework")
)

// Context keys for error values
const (
	SystemIDKey     = "system_id"
	AssessmentIDKey = "assessment_id"
	QuestionIDKey   = "question_id"
)

// IsValidationError reports whether err is caused by invalid client input
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrNameRequired,
		ErrAssessorRequired,
		ErrUnknownQuestion,
		ErrInvalidAnswer,
		ErrInvalidWizard,
		ErrInvalidFramework,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
