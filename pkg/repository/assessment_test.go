package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/uk"
	"github.com/secmon-lab/airegister/pkg/domain/types"
)

func createSystem(t *testing.T, repo interfaces.Repository, name string) *model.AISystem {
	t.Helper()
	s, err := repo.AISystem().Create(context.Background(), &model.AISystem{Name: name})
	gt.NoError(t, err).Required()
	return s
}

func newEUAssessment(systemID model.AISystemID, at time.Time, category eu.CategoryID) *model.EUAssessment {
	answers := eu.NewAnswers()
	if category != "" {
		answers.HighRisk[category] = true
	}
	return &model.EUAssessment{
		SystemID:       systemID,
		CatalogVersion: eu.CatalogVersion,
		Answers:        answers,
		Verdict:        eu.Classify(answers),
		Assessor:       "alice",
		AssessedAt:     at,
	}
}

func TestEUAssessmentRepository(t *testing.T) {
	runRepositoryTest(t, "EUAssessment", testEUAssessmentRepository)
}

func testEUAssessmentRepository(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("Create updates the system classification", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		sys := createSystem(t, repo, "Face Gate")

		created, err := repo.EUAssessment().Create(ctx, newEUAssessment(sys.ID, time.Time{}, eu.BiometricIdentification))
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(model.AssessmentID(""))
		gt.Bool(t, created.AssessedAt.IsZero()).False()
		gt.Value(t, created.Verdict.Tier).Equal(types.RiskTierHighRisk)

		got, err := repo.AISystem().Get(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.RiskClassification).Equal(types.RiskTierHighRisk)

		loaded, err := repo.EUAssessment().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, loaded.SystemID).Equal(sys.ID)
		gt.Value(t, loaded.CatalogVersion).Equal(eu.CatalogVersion)
		gt.Bool(t, loaded.Answers.HighRisk[eu.BiometricIdentification]).True()
		gt.Array(t, loaded.Verdict.ComplianceRequirements).Length(len(created.Verdict.ComplianceRequirements))
		gt.Bool(t, loaded.Verdict.CEMarkingRequired).True()
	})

	t.Run("Create for unknown system writes nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		missing := model.NewAISystemID()

		_, err := repo.EUAssessment().Create(ctx, newEUAssessment(missing, time.Time{}, eu.Employment))
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		list, err := repo.EUAssessment().ListBySystem(ctx, missing)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)
	})

	t.Run("latest assessment wins", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		sys := createSystem(t, repo, "Tutor")
		base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

		first, err := repo.EUAssessment().Create(ctx, newEUAssessment(sys.ID, base, eu.EducationAndTraining))
		gt.NoError(t, err).Required()
		second, err := repo.EUAssessment().Create(ctx, newEUAssessment(sys.ID, base.Add(time.Hour), ""))
		gt.NoError(t, err).Required()

		latest, err := repo.EUAssessment().GetLatestBySystem(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest.ID).Equal(second.ID)
		gt.Value(t, latest.Verdict.Tier).Equal(types.RiskTierMinimalRisk)

		list, err := repo.EUAssessment().ListBySystem(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		gt.Value(t, list[0].ID).Equal(second.ID)
		gt.Value(t, list[1].ID).Equal(first.ID)

		got, err := repo.AISystem().Get(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.RiskClassification).Equal(types.RiskTierMinimalRisk)
	})

	t.Run("equal timestamps are ordered by ID descending", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		sys := createSystem(t, repo, "Same Second")
		at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

		low := newEUAssessment(sys.ID, at, eu.Employment)
		low.ID = "0190f0a0-0000-7000-8000-000000000001"
		high := newEUAssessment(sys.ID, at, "")
		high.ID = "0190f0a0-0000-7000-8000-000000000002"

		_, err := repo.EUAssessment().Create(ctx, high)
		gt.NoError(t, err).Required()
		_, err = repo.EUAssessment().Create(ctx, low)
		gt.NoError(t, err).Required()

		latest, err := repo.EUAssessment().GetLatestBySystem(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest.ID).Equal(high.ID)

		list, err := repo.EUAssessment().ListBySystem(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		gt.Value(t, list[0].ID).Equal(high.ID)
		gt.Value(t, list[1].ID).Equal(low.ID)
	})

	t.Run("GetLatestBySystem returns nil when none", func(t *testing.T) {
		repo := newRepo(t)
		sys := createSystem(t, repo, "Unassessed")

		latest, err := repo.EUAssessment().GetLatestBySystem(context.Background(), sys.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, latest == nil).True()
	})

	t.Run("Get returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.EUAssessment().Get(context.Background(), model.NewAssessmentID())
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})
}

func TestUKAssessmentRepository(t *testing.T) {
	runRepositoryTest(t, "UKAssessment", testUKAssessmentRepository)
}

func testUKAssessmentRepository(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("Create, Get and latest", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		sys := createSystem(t, repo, "Credit Scorer")
		base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		answers := uk.Answers{"fairness_metrics": types.FullyAddressed}
		first, err := repo.UKAssessment().Create(ctx, &model.UKAssessment{
			SystemID:       sys.ID,
			CatalogVersion: uk.CatalogVersion,
			Answers:        answers,
			Result:         uk.Score(answers),
			Assessor:       "carol",
			AssessedAt:     base,
		})
		gt.NoError(t, err).Required()

		loaded, err := repo.UKAssessment().Get(ctx, first.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, loaded.Answers["fairness_metrics"]).Equal(types.FullyAddressed)
		gt.Array(t, loaded.Result.Principles).Length(5)
		gt.Value(t, loaded.Result.OverallScore).Equal(first.Result.OverallScore)
		gt.Array(t, loaded.Result.Gaps).Length(len(first.Result.Gaps))

		full := uk.Answers{}
		for _, p := range uk.Principles() {
			for _, q := range p.Questions {
				full[q.ID] = types.FullyAddressed
			}
		}
		second, err := repo.UKAssessment().Create(ctx, &model.UKAssessment{
			SystemID:   sys.ID,
			Answers:    full,
			Result:     uk.Score(full),
			Assessor:   "carol",
			AssessedAt: base.Add(time.Minute),
		})
		gt.NoError(t, err).Required()

		latest, err := repo.UKAssessment().GetLatestBySystem(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest.ID).Equal(second.ID)
		gt.Value(t, latest.Result.OverallScore).Equal(100.0)

		// UK assessments never touch the classification
		got, err := repo.AISystem().Get(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.RiskClassification).Equal(types.RiskTierNotYetAssessed)
	})

	t.Run("Create for unknown system", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.UKAssessment().Create(context.Background(), &model.UKAssessment{SystemID: model.NewAISystemID()})
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("GetLatestBySystem returns nil when none", func(t *testing.T) {
		repo := newRepo(t)
		sys := createSystem(t, repo, "Nothing yet")
		latest, err := repo.UKAssessment().GetLatestBySystem(context.Background(), sys.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, latest == nil).True()
	})
}

func TestNISTAssessmentRepository(t *testing.T) {
	runRepositoryTest(t, "NISTAssessment", testNISTAssessmentRepository)
}

func testNISTAssessmentRepository(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("Create, Get and history", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		sys := createSystem(t, repo, "Fraud Model")
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		var ids []model.AssessmentID
		for i, v := range []float64{1, 3, 4.5} {
			answers := nist.Answers{"govern_policies": v, "map_context": v}
			created, err := repo.NISTAssessment().Create(ctx, &model.NISTAssessment{
				SystemID:       sys.ID,
				CatalogVersion: nist.CatalogVersion,
				Answers:        answers,
				Result:         nist.Score(answers),
				Assessor:       "dave",
				AssessedAt:     base.Add(time.Duration(i) * time.Hour),
			})
			gt.NoError(t, err).Required()
			ids = append(ids, created.ID)
		}

		loaded, err := repo.NISTAssessment().Get(ctx, ids[1])
		gt.NoError(t, err).Required()
		gt.Value(t, loaded.Answers["govern_policies"]).Equal(3.0)
		gt.Array(t, loaded.Result.Functions).Length(4)
		gt.Value(t, loaded.Result.Maturity).Equal(types.MaturityInitial)

		list, err := repo.NISTAssessment().ListBySystem(ctx, sys.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3)
		gt.Value(t, list[0].ID).Equal(ids[2])
		gt.Value(t, list[2].ID).Equal(ids[0])
	})

	t.Run("Create for unknown system", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.NISTAssessment().Create(context.Background(), &model.NISTAssessment{SystemID: model.NewAISystemID()})
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})
}
