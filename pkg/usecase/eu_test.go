package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/secmon-lab/airegister/pkg/usecase"
)

func completeAnswers() eu.Answers {
	answers := eu.NewAnswers()
	for _, q := range eu.ProhibitedQuestions() {
		answers.Prohibited[q.ID] = false
	}
	for _, q := range eu.LimitedRiskQuestions() {
		answers.Limited[q.ID] = false
	}
	return answers
}

func TestEUUseCase_Save(t *testing.T) {
	t.Run("saving sets the system classification", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := context.Background()
		s := mustCreateSystem(t, uc, "Face Gate")

		answers := completeAnswers()
		answers.HighRisk[eu.BiometricIdentification] = true

		a, err := uc.EU.Save(ctx, s.ID, answers, usecase.AssessmentInput{Assessor: " carol ", Notes: "first pass"})
		gt.NoError(t, err).Required()
		gt.Value(t, a.Verdict.Tier).Equal(types.RiskTierHighRisk)
		gt.Value(t, a.Assessor).Equal("carol")
		gt.Value(t, a.CatalogVersion).Equal(eu.CatalogVersion)
		gt.Value(t, a.AssessedAt).Equal(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))

		got, err := uc.System.Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.RiskClassification).Equal(types.RiskTierHighRisk)
	})

	t.Run("reassessment replaces the classification", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := context.Background()
		s := mustCreateSystem(t, uc, "Chatbot")

		limited := completeAnswers()
		limited.Limited[eu.HumanInteraction] = true
		_, err := uc.EU.Save(ctx, s.ID, limited, usecase.AssessmentInput{Assessor: "dave"})
		gt.NoError(t, err).Required()

		second, err := uc.EU.Save(ctx, s.ID, completeAnswers(), usecase.AssessmentInput{Assessor: "dave"})
		gt.NoError(t, err).Required()
		gt.Value(t, second.Verdict.Tier).Equal(types.RiskTierMinimalRisk)

		got, err := uc.System.Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.RiskClassification).Equal(types.RiskTierMinimalRisk)

		latest, err := uc.EU.Latest(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest.ID).Equal(second.ID)

		history, err := uc.EU.History(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(2)
		gt.Value(t, history[0].ID).Equal(second.ID)
	})

	t.Run("blank assessor leaves classification unchanged", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := context.Background()
		s := mustCreateSystem(t, uc, "Tutor")

		answers := completeAnswers()
		answers.HighRisk[eu.EducationAndTraining] = true
		_, err := uc.EU.Save(ctx, s.ID, answers, usecase.AssessmentInput{Assessor: "  "})
		gt.Error(t, err).Is(usecase.ErrAssessorRequired)

		got, err := uc.System.Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.RiskClassification).Equal(types.RiskTierNotYetAssessed)

		_, err = uc.EU.Latest(ctx, s.ID)
		gt.Error(t, err).Is(usecase.ErrAssessmentNotFound)
	})

	t.Run("unknown question", func(t *testing.T) {
		uc, _ := setup(t)
		s := mustCreateSystem(t, uc, "X")

		answers := eu.NewAnswers()
		answers.Prohibited["mind_reading"] = true
		_, err := uc.EU.Save(context.Background(), s.ID, answers, usecase.AssessmentInput{Assessor: "eve"})
		gt.Error(t, err).Is(usecase.ErrUnknownQuestion)
	})

	t.Run("unknown system", func(t *testing.T) {
		uc, _ := setup(t)
		_, err := uc.EU.Save(context.Background(), model.NewAISystemID(), completeAnswers(), usecase.AssessmentInput{Assessor: "eve"})
		gt.Error(t, err).Is(usecase.ErrSystemNotFound)
	})

	t.Run("missing answers are not an error", func(t *testing.T) {
		uc, _ := setup(t)
		s := mustCreateSystem(t, uc, "Partial")

		a, err := uc.EU.Save(context.Background(), s.ID, eu.Answers{}, usecase.AssessmentInput{Assessor: "eve"})
		gt.NoError(t, err).Required()
		gt.Value(t, a.Verdict.Tier).Equal(types.RiskTierMinimalRisk)
	})
}

func TestEUUseCase_Notification(t *testing.T) {
	waitPost := func(t *testing.T, f *fakeSlack) {
		t.Helper()
		select {
		case <-f.ch:
		case <-time.After(5 * time.Second):
			t.Fatal("no Slack message posted")
		}
	}

	t.Run("prohibited verdict is posted", func(t *testing.T) {
		slackSvc := newFakeSlack()
		uc, _ := setup(t, usecase.WithSlackNotification(slackSvc, "C-ALERTS", ""))
		s := mustCreateSystem(t, uc, "Score Engine")

		answers := completeAnswers()
		answers.Prohibited[eu.SocialScoring] = true
		_, err := uc.EU.Save(context.Background(), s.ID, answers, usecase.AssessmentInput{Assessor: "frank"})
		gt.NoError(t, err).Required()

		waitPost(t, slackSvc)
		msgs := slackSvc.messages()
		gt.Array(t, msgs).Length(1)
		gt.Value(t, msgs[0].channelID).Equal("C-ALERTS")
		gt.String(t, msgs[0].text).Contains("Score Engine classified as PROHIBITED")
	})

	t.Run("minimal verdict is not posted", func(t *testing.T) {
		slackSvc := newFakeSlack()
		uc, _ := setup(t, usecase.WithSlackNotification(slackSvc, "C-ALERTS", ""))
		s := mustCreateSystem(t, uc, "Spam Filter")

		_, err := uc.EU.Save(context.Background(), s.ID, completeAnswers(), usecase.AssessmentInput{Assessor: "frank"})
		gt.NoError(t, err).Required()

		select {
		case <-slackSvc.ch:
			t.Fatal("unexpected Slack message")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("no channel disables notification", func(t *testing.T) {
		slackSvc := newFakeSlack()
		uc, _ := setup(t, usecase.WithSlackNotification(slackSvc, "", ""))
		s := mustCreateSystem(t, uc, "Face Gate")

		answers := completeAnswers()
		answers.Prohibited[eu.SocialScoring] = true
		_, err := uc.EU.Save(context.Background(), s.ID, answers, usecase.AssessmentInput{Assessor: "frank"})
		gt.NoError(t, err).Required()

		select {
		case <-slackSvc.ch:
			t.Fatal("unexpected Slack message")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestEUUseCase_Classify(t *testing.T) {
	uc, _ := setup(t)

	answers := eu.NewAnswers()
	answers.Limited[eu.SyntheticContent] = true
	v, err := uc.EU.Classify(answers)
	gt.NoError(t, err).Required()
	gt.Value(t, v.Tier).Equal(types.RiskTierLimitedRisk)

	bad := eu.NewAnswers()
	bad.HighRisk["SPACE_TRAVEL"] = true
	_, err = uc.EU.Classify(bad)
	gt.Error(t, err).Is(usecase.ErrUnknownQuestion)
}

func TestEUUseCase_Wizard(t *testing.T) {
	uc, _ := setup(t)

	t.Run("empty step starts at prohibited", func(t *testing.T) {
		state, err := uc.EU.Wizard("", eu.Answers{}, eu.ActionUpdate)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Step).Equal(eu.StepProhibited)
		gt.Bool(t, state.CanAdvance).False()
		gt.Bool(t, state.Done).False()
		gt.Bool(t, state.Verdict == nil).True()
	})

	t.Run("advance through all steps", func(t *testing.T) {
		answers := completeAnswers()

		state, err := uc.EU.Wizard(eu.StepProhibited, answers, eu.ActionAdvance)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Step).Equal(eu.StepHighRisk)
		gt.Bool(t, state.CanAdvance).True()

		state, err = uc.EU.Wizard(state.Step, state.Answers, eu.ActionAdvance)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Step).Equal(eu.StepLimitedRisk)

		state, err = uc.EU.Wizard(state.Step, state.Answers, eu.ActionAdvance)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Step).Equal(eu.StepResult)
		gt.Bool(t, state.Done).True()
		gt.Value(t, state.Verdict.Tier).Equal(types.RiskTierMinimalRisk)
	})

	t.Run("prohibited answer jumps to result", func(t *testing.T) {
		answers := eu.NewAnswers()
		answers.Prohibited[eu.PredictivePolicing] = true

		state, err := uc.EU.Wizard(eu.StepProhibited, answers, eu.ActionUpdate)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Step).Equal(eu.StepResult)
		gt.Value(t, state.Verdict.Tier).Equal(types.RiskTierProhibited)
	})

	t.Run("incomplete step cannot advance", func(t *testing.T) {
		_, err := uc.EU.Wizard(eu.StepProhibited, eu.Answers{}, eu.ActionAdvance)
		gt.Error(t, err).Is(usecase.ErrInvalidWizard)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := uc.EU.Wizard(eu.StepHighRisk, eu.Answers{}, "jump")
		gt.Error(t, err).Is(usecase.ErrInvalidWizard)
	})
}
