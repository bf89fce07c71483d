package memory

import (
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	aiSystem       *aiSystemRepository
	euAssessment   *euAssessmentRepository
	ukAssessment   *ukAssessmentRepository
	nistAssessment *nistAssessmentRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	systemRepo := newAISystemRepository()

	return &Memory{
		aiSystem:       systemRepo,
		euAssessment:   newEUAssessmentRepository(systemRepo),
		ukAssessment:   newUKAssessmentRepository(systemRepo),
		nistAssessment: newNISTAssessmentRepository(systemRepo),
	}
}

func (m *Memory) AISystem() interfaces.AISystemRepository {
	return m.aiSystem
}

func (m *Memory) EUAssessment() interfaces.EUAssessmentRepository {
	return m.euAssessment
}

func (m *Memory) UKAssessment() interfaces.UKAssessmentRepository {
	return m.ukAssessment
}

func (m *Memory) NISTAssessment() interfaces.NISTAssessmentRepository {
	return m.nistAssessment
}
