package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/uk"
)

// AssessmentID is a UUID v7 identifier so that IDs sort by creation time
type AssessmentID string

// NewAssessmentID generates a new UUID v7 AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.Must(uuid.NewV7()).String())
}

func (x AssessmentID) String() string {
	return string(x)
}

// EUAssessment is an immutable EU AI Act classification record
type EUAssessment struct {
	ID             AssessmentID `json:"id"`
	SystemID       AISystemID   `json:"system_id"`
	CatalogVersion string       `json:"catalog_version"`
	Answers        eu.Answers   `json:"answers"`
	Verdict        eu.Verdict   `json:"verdict"`
	Assessor       string       `json:"assessor"`
	Notes          string       `json:"notes"`
	AssessedAt     time.Time    `json:"assessed_at"`
}

func (a *EUAssessment) Copy() *EUAssessment {
	if a == nil {
		return nil
	}
	c := *a
	c.Answers = a.Answers.Clone()
	c.Verdict.ComplianceRequirements = append([]string{}, a.Verdict.ComplianceRequirements...)
	c.Verdict.TransparencyObligations = append([]string{}, a.Verdict.TransparencyObligations...)
	return &c
}

// UKAssessment is an immutable UK AI principles scoring record
type UKAssessment struct {
	ID             AssessmentID `json:"id"`
	SystemID       AISystemID   `json:"system_id"`
	CatalogVersion string       `json:"catalog_version"`
	Answers        uk.Answers   `json:"answers"`
	Result         uk.Result    `json:"result"`
	Assessor       string       `json:"assessor"`
	Notes          string       `json:"notes"`
	AssessedAt     time.Time    `json:"assessed_at"`
}

func (a *UKAssessment) Copy() *UKAssessment {
	if a == nil {
		return nil
	}
	c := *a
	c.Answers = make(uk.Answers, len(a.Answers))
	for k, v := range a.Answers {
		c.Answers[k] = v
	}
	c.Result.Principles = append([]uk.PrincipleScore{}, a.Result.Principles...)
	c.Result.Gaps = append([]string{}, a.Result.Gaps...)
	return &c
}

// NISTAssessment is an immutable NIST AI RMF maturity record
type NISTAssessment struct {
	ID             AssessmentID `json:"id"`
	SystemID       AISystemID   `json:"system_id"`
	CatalogVersion string       `json:"catalog_version"`
	Answers        nist.Answers `json:"answers"`
	Result         nist.Result  `json:"result"`
	Assessor       string       `json:"assessor"`
	Notes          string       `json:"notes"`
	AssessedAt     time.Time    `json:"assessed_at"`
}

func (a *NISTAssessment) Copy() *NISTAssessment {
	if a == nil {
		return nil
	}
	c := *a
	c.Answers = make(nist.Answers, len(a.Answers))
	for k, v := range a.Answers {
		c.Answers[k] = v
	}
	c.Result.Functions = append([]nist.FunctionScore{}, a.Result.Functions...)
	c.Result.Recommendations = append([]string{}, a.Result.Recommendations...)
	return &c
}
