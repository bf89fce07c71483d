package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/uk"
	"github.com/secmon-lab/airegister/pkg/domain/types"
)

func TestCoverage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	euA := &model.EUAssessment{Verdict: eu.Verdict{Tier: types.RiskTierHighRisk}, AssessedAt: now}
	ukA := &model.UKAssessment{Result: uk.Result{OverallScore: 62.4}, AssessedAt: now}
	nistA := &model.NISTAssessment{Result: nist.Result{Maturity: types.MaturityDefined}, AssessedAt: now}

	t.Run("nothing assessed", func(t *testing.T) {
		c := &model.Coverage{SystemID: "sys"}
		gt.V(t, c.Summary()).Equal("")
		gt.N(t, c.PresentCount()).Equal(0)
		gt.B(t, c.CrossFramework()).False()

		frameworks := c.Frameworks()
		gt.A(t, frameworks).Length(3)
		for _, f := range frameworks {
			gt.B(t, f.Present).False()
			gt.V(t, f.AssessedAt == nil).Equal(true)
		}
	})

	t.Run("single framework", func(t *testing.T) {
		c := &model.Coverage{SystemID: "sys", EU: euA}
		gt.V(t, c.Summary()).Equal("EU AI Act: HIGH_RISK")
		gt.B(t, c.CrossFramework()).False()
	})

	t.Run("two frameworks", func(t *testing.T) {
		c := &model.Coverage{SystemID: "sys", EU: euA, NIST: nistA}
		gt.V(t, c.Summary()).Equal("EU AI Act: HIGH_RISK; NIST AI RMF: DEFINED")
		gt.B(t, c.CrossFramework()).True()
	})

	t.Run("all frameworks", func(t *testing.T) {
		c := &model.Coverage{SystemID: "sys", EU: euA, UK: ukA, NIST: nistA}
		gt.V(t, c.Summary()).Equal("EU AI Act: HIGH_RISK; UK AI Principles: 62%; NIST AI RMF: DEFINED")
		gt.N(t, c.PresentCount()).Equal(3)

		frameworks := c.Frameworks()
		gt.V(t, frameworks[1].Framework).Equal(types.FrameworkUKAI)
		gt.V(t, frameworks[1].Headline).Equal("62%")
		gt.V(t, *frameworks[2].AssessedAt).Equal(now)
	})
}

func TestEUAssessmentCopy(t *testing.T) {
	answers := eu.NewAnswers()
	answers.HighRisk[eu.Employment] = true
	a := &model.EUAssessment{
		ID:      model.NewAssessmentID(),
		Answers: answers,
		Verdict: eu.Classify(answers),
	}

	c := a.Copy()
	c.Answers.HighRisk[eu.EducationAndTraining] = true
	c.Verdict.ComplianceRequirements[0] = "changed"

	gt.B(t, a.Answers.HighRisk[eu.EducationAndTraining]).False()
	gt.V(t, a.Verdict.ComplianceRequirements[0] == "changed").Equal(false)
}

func TestNewAssessmentID(t *testing.T) {
	a := model.NewAssessmentID()
	b := model.NewAssessmentID()
	gt.V(t, a == b).Equal(false)
	gt.B(t, a.String() < b.String()).True()
}
