package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/secmon-lab/airegister/pkg/usecase"
)

func TestCoverageUseCase(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	s := mustCreateSystem(t, uc, "Recruiter")

	c, err := uc.Coverage.Get(ctx, s.ID)
	gt.NoError(t, err).Required()
	gt.Number(t, c.PresentCount()).Equal(0)
	gt.Value(t, c.Summary()).Equal("")

	answers := eu.NewAnswers()
	answers.HighRisk[eu.Employment] = true
	_, err = uc.EU.Save(ctx, s.ID, answers, usecase.AssessmentInput{Assessor: "ivy"})
	gt.NoError(t, err).Required()

	c, err = uc.Coverage.Get(ctx, s.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, c.CrossFramework()).False()
	gt.Value(t, c.Summary()).Equal("EU AI Act: HIGH_RISK")

	all5 := nist.Answers{}
	for _, f := range nist.Functions() {
		for _, q := range f.Questions {
			all5[q.ID] = 5
		}
	}
	_, err = uc.NIST.Save(ctx, s.ID, all5, usecase.AssessmentInput{Assessor: "ivy"})
	gt.NoError(t, err).Required()

	c, err = uc.Coverage.Get(ctx, s.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, c.CrossFramework()).True()
	gt.Value(t, c.NIST.Result.Maturity).Equal(types.MaturityOptimising)
	gt.Value(t, c.Summary()).Equal("EU AI Act: HIGH_RISK; NIST AI RMF: OPTIMISING")

	_, err = uc.Coverage.Get(ctx, model.NewAISystemID())
	gt.Error(t, err).Is(usecase.ErrSystemNotFound)
}
