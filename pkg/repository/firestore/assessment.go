package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/uk"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// getAssessment loads a single assessment document by ID
func getAssessment[D any, M any](ctx context.Context, col *firestore.CollectionRef, id model.AssessmentID, toModel func(*D) *M) (*M, error) {
	snap, err := col.Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var doc D
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}
	return toModel(&doc), nil
}

// listAssessments returns the assessments of a system newest first, ties broken by
// ID descending. Requires the (system_id ASC, assessed_at DESC, id DESC) composite
// index created by the migrate command.
func listAssessments[D any, M any](ctx context.Context, col *firestore.CollectionRef, systemID model.AISystemID, limit int, toModel func(*D) *M) ([]*M, error) {
	q := col.Where("system_id", "==", string(systemID)).
		OrderBy("assessed_at", firestore.Desc).
		OrderBy("id", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	records := make([]*M, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments", goerr.V("system_id", systemID))
		}

		var doc D
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", snap.Ref.ID))
		}
		records = append(records, toModel(&doc))
	}
	return records, nil
}

func latestAssessment[D any, M any](ctx context.Context, col *firestore.CollectionRef, systemID model.AISystemID, toModel func(*D) *M) (*M, error) {
	records, err := listAssessments(ctx, col, systemID, 1, toModel)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func prepareAssessment(id *model.AssessmentID, assessedAt *time.Time) {
	if *id == "" {
		*id = model.NewAssessmentID()
	}
	if assessedAt.IsZero() {
		*assessedAt = time.Now().UTC()
	}
}

// createAssessment stores doc under a transaction that first checks that the owning system exists
func createAssessment(ctx context.Context, client *firestore.Client, systems, col *firestore.CollectionRef, systemID model.AISystemID, id model.AssessmentID, doc any) error {
	systemRef := systems.Doc(string(systemID))
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(systemRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "system not found", goerr.V("system_id", systemID))
			}
			return goerr.Wrap(err, "failed to get system", goerr.V("system_id", systemID))
		}
		return tx.Create(col.Doc(string(id)), doc)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return goerr.Wrap(err, "failed to create assessment", goerr.V("id", id), goerr.V("system_id", systemID))
	}
	return nil
}

func boolMap[K ~string](src map[K]bool) map[string]bool {
	out := make(map[string]bool, len(src))
	for k, v := range src {
		out[string(k)] = v
	}
	return out
}

func keyedBoolMap[K ~string](src map[string]bool) map[K]bool {
	out := make(map[K]bool, len(src))
	for k, v := range src {
		out[K(k)] = v
	}
	return out
}

// EU

type euAssessmentDocument struct {
	ID                         string          `firestore:"id"`
	SystemID                   string          `firestore:"system_id"`
	CatalogVersion             string          `firestore:"catalog_version"`
	Prohibited                 map[string]bool `firestore:"prohibited"`
	HighRisk                   map[string]bool `firestore:"high_risk"`
	Limited                    map[string]bool `firestore:"limited"`
	Tier                       string          `firestore:"tier"`
	ProhibitedTrigger          string          `firestore:"prohibited_trigger"`
	ComplianceRequirements     []string        `firestore:"compliance_requirements"`
	TransparencyObligations    []string        `firestore:"transparency_obligations"`
	ConformityAssessmentNeeded bool            `firestore:"conformity_assessment_needed"`
	CEMarkingRequired          bool            `firestore:"ce_marking_required"`
	HumanOversightRequired     bool            `firestore:"human_oversight_required"`
	Assessor                   string          `firestore:"assessor"`
	Notes                      string          `firestore:"notes"`
	AssessedAt                 time.Time       `firestore:"assessed_at"`
}

func euAssessmentToDocument(a *model.EUAssessment) *euAssessmentDocument {
	return &euAssessmentDocument{
		ID:                         string(a.ID),
		SystemID:                   string(a.SystemID),
		CatalogVersion:             a.CatalogVersion,
		Prohibited:                 boolMap(a.Answers.Prohibited),
		HighRisk:                   boolMap(a.Answers.HighRisk),
		Limited:                    boolMap(a.Answers.Limited),
		Tier:                       string(a.Verdict.Tier),
		ProhibitedTrigger:          a.Verdict.ProhibitedTrigger,
		ComplianceRequirements:     append([]string{}, a.Verdict.ComplianceRequirements...),
		TransparencyObligations:    append([]string{}, a.Verdict.TransparencyObligations...),
		ConformityAssessmentNeeded: a.Verdict.ConformityAssessmentNeeded,
		CEMarkingRequired:          a.Verdict.CEMarkingRequired,
		HumanOversightRequired:     a.Verdict.HumanOversightRequired,
		Assessor:                   a.Assessor,
		Notes:                      a.Notes,
		AssessedAt:                 a.AssessedAt,
	}
}

func euAssessmentToModel(doc *euAssessmentDocument) *model.EUAssessment {
	return &model.EUAssessment{
		ID:             model.AssessmentID(doc.ID),
		SystemID:       model.AISystemID(doc.SystemID),
		CatalogVersion: doc.CatalogVersion,
		Answers: eu.Answers{
			Prohibited: keyedBoolMap[eu.QuestionID](doc.Prohibited),
			HighRisk:   keyedBoolMap[eu.CategoryID](doc.HighRisk),
			Limited:    keyedBoolMap[eu.QuestionID](doc.Limited),
		},
		Verdict: eu.Verdict{
			Tier:                       types.RiskTier(doc.Tier),
			ProhibitedTrigger:          doc.ProhibitedTrigger,
			ComplianceRequirements:     append([]string{}, doc.ComplianceRequirements...),
			TransparencyObligations:    append([]string{}, doc.TransparencyObligations...),
			ConformityAssessmentNeeded: doc.ConformityAssessmentNeeded,
			CEMarkingRequired:          doc.CEMarkingRequired,
			HumanOversightRequired:     doc.HumanOversightRequired,
		},
		Assessor:   doc.Assessor,
		Notes:      doc.Notes,
		AssessedAt: doc.AssessedAt,
	}
}

type euAssessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEUAssessmentRepository(client *firestore.Client) *euAssessmentRepository {
	return &euAssessmentRepository{client: client}
}

func (r *euAssessmentRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, EUAssessmentsCollection))
}

func (r *euAssessmentRepository) systems() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, AISystemsCollection))
}

// Create writes the assessment and the system's risk_classification in one transaction
func (r *euAssessmentRepository) Create(ctx context.Context, assessment *model.EUAssessment) (*model.EUAssessment, error) {
	created := assessment.Copy()
	prepareAssessment(&created.ID, &created.AssessedAt)
	doc := euAssessmentToDocument(created)

	systemRef := r.systems().Doc(doc.SystemID)
	assessmentRef := r.collection().Doc(doc.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(systemRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "system not found", goerr.V("system_id", doc.SystemID))
			}
			return goerr.Wrap(err, "failed to get system", goerr.V("system_id", doc.SystemID))
		}

		if err := tx.Create(assessmentRef, doc); err != nil {
			return goerr.Wrap(err, "failed to create assessment")
		}
		return tx.Update(systemRef, classificationUpdates(created.Verdict.Tier))
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to save EU assessment",
			goerr.V("id", doc.ID),
			goerr.V("system_id", doc.SystemID))
	}

	return euAssessmentToModel(doc), nil
}

func (r *euAssessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.EUAssessment, error) {
	return getAssessment(ctx, r.collection(), id, euAssessmentToModel)
}

func (r *euAssessmentRepository) ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.EUAssessment, error) {
	return listAssessments(ctx, r.collection(), systemID, 0, euAssessmentToModel)
}

func (r *euAssessmentRepository) GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.EUAssessment, error) {
	return latestAssessment(ctx, r.collection(), systemID, euAssessmentToModel)
}

// UK

type ukPrincipleDocument struct {
	PrincipleID string  `firestore:"principle_id"`
	Name        string  `firestore:"name"`
	Score       float64 `firestore:"score"`
	Level       string  `firestore:"level"`
}

type ukAssessmentDocument struct {
	ID             string                `firestore:"id"`
	SystemID       string                `firestore:"system_id"`
	CatalogVersion string                `firestore:"catalog_version"`
	Answers        map[string]string     `firestore:"answers"`
	Principles     []ukPrincipleDocument `firestore:"principles"`
	OverallScore   float64               `firestore:"overall_score"`
	Gaps           []string              `firestore:"gaps"`
	Assessor       string                `firestore:"assessor"`
	Notes          string                `firestore:"notes"`
	AssessedAt     time.Time             `firestore:"assessed_at"`
}

func ukAssessmentToDocument(a *model.UKAssessment) *ukAssessmentDocument {
	doc := &ukAssessmentDocument{
		ID:             string(a.ID),
		SystemID:       string(a.SystemID),
		CatalogVersion: a.CatalogVersion,
		Answers:        make(map[string]string, len(a.Answers)),
		Principles:     make([]ukPrincipleDocument, 0, len(a.Result.Principles)),
		OverallScore:   a.Result.OverallScore,
		Gaps:           append([]string{}, a.Result.Gaps...),
		Assessor:       a.Assessor,
		Notes:          a.Notes,
		AssessedAt:     a.AssessedAt,
	}
	for k, v := range a.Answers {
		doc.Answers[string(k)] = string(v)
	}
	for _, p := range a.Result.Principles {
		doc.Principles = append(doc.Principles, ukPrincipleDocument{
			PrincipleID: string(p.PrincipleID),
			Name:        p.Name,
			Score:       p.Score,
			Level:       string(p.Level),
		})
	}
	return doc
}

func ukAssessmentToModel(doc *ukAssessmentDocument) *model.UKAssessment {
	a := &model.UKAssessment{
		ID:             model.AssessmentID(doc.ID),
		SystemID:       model.AISystemID(doc.SystemID),
		CatalogVersion: doc.CatalogVersion,
		Answers:        make(uk.Answers, len(doc.Answers)),
		Result: uk.Result{
			Principles:   make([]uk.PrincipleScore, 0, len(doc.Principles)),
			OverallScore: doc.OverallScore,
			Gaps:         append([]string{}, doc.Gaps...),
		},
		Assessor:   doc.Assessor,
		Notes:      doc.Notes,
		AssessedAt: doc.AssessedAt,
	}
	for k, v := range doc.Answers {
		a.Answers[uk.QuestionID(k)] = types.ImplementationLevel(v)
	}
	for _, p := range doc.Principles {
		a.Result.Principles = append(a.Result.Principles, uk.PrincipleScore{
			PrincipleID: uk.PrincipleID(p.PrincipleID),
			Name:        p.Name,
			Score:       p.Score,
			Level:       types.ImplementationLevel(p.Level),
		})
	}
	return a
}

type ukAssessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUKAssessmentRepository(client *firestore.Client) *ukAssessmentRepository {
	return &ukAssessmentRepository{client: client}
}

func (r *ukAssessmentRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, UKAssessmentsCollection))
}

func (r *ukAssessmentRepository) Create(ctx context.Context, assessment *model.UKAssessment) (*model.UKAssessment, error) {
	created := assessment.Copy()
	prepareAssessment(&created.ID, &created.AssessedAt)
	doc := ukAssessmentToDocument(created)

	systems := r.client.Collection(CollectionName(r.collectionPrefix, AISystemsCollection))
	if err := createAssessment(ctx, r.client, systems, r.collection(), created.SystemID, created.ID, doc); err != nil {
		return nil, err
	}
	return ukAssessmentToModel(doc), nil
}

func (r *ukAssessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.UKAssessment, error) {
	return getAssessment(ctx, r.collection(), id, ukAssessmentToModel)
}

func (r *ukAssessmentRepository) ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.UKAssessment, error) {
	return listAssessments(ctx, r.collection(), systemID, 0, ukAssessmentToModel)
}

func (r *ukAssessmentRepository) GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.UKAssessment, error) {
	return latestAssessment(ctx, r.collection(), systemID, ukAssessmentToModel)
}

// NIST

type nistFunctionDocument struct {
	FunctionID string  `firestore:"function_id"`
	Name       string  `firestore:"name"`
	Score      float64 `firestore:"score"`
}

type nistAssessmentDocument struct {
	ID              string                 `firestore:"id"`
	SystemID        string                 `firestore:"system_id"`
	CatalogVersion  string                 `firestore:"catalog_version"`
	Answers         map[string]float64     `firestore:"answers"`
	Functions       []nistFunctionDocument `firestore:"functions"`
	OverallScore    float64                `firestore:"overall_score"`
	Maturity        string                 `firestore:"maturity"`
	Recommendations []string               `firestore:"recommendations"`
	Assessor        string                 `firestore:"assessor"`
	Notes           string                 `firestore:"notes"`
	AssessedAt      time.Time              `firestore:"assessed_at"`
}

func nistAssessmentToDocument(a *model.NISTAssessment) *nistAssessmentDocument {
	doc := &nistAssessmentDocument{
		ID:              string(a.ID),
		SystemID:        string(a.SystemID),
		CatalogVersion:  a.CatalogVersion,
		Answers:         make(map[string]float64, len(a.Answers)),
		Functions:       make([]nistFunctionDocument, 0, len(a.Result.Functions)),
		OverallScore:    a.Result.OverallScore,
		Maturity:        string(a.Result.Maturity),
		Recommendations: append([]string{}, a.Result.Recommendations...),
		Assessor:        a.Assessor,
		Notes:           a.Notes,
		AssessedAt:      a.AssessedAt,
	}
	for k, v := range a.Answers {
		doc.Answers[string(k)] = v
	}
	for _, f := range a.Result.Functions {
		doc.Functions = append(doc.Functions, nistFunctionDocument{
			FunctionID: string(f.FunctionID),
			Name:       f.Name,
			Score:      f.Score,
		})
	}
	return doc
}

func nistAssessmentToModel(doc *nistAssessmentDocument) *model.NISTAssessment {
	a := &model.NISTAssessment{
		ID:             model.AssessmentID(doc.ID),
		SystemID:       model.AISystemID(doc.SystemID),
		CatalogVersion: doc.CatalogVersion,
		Answers:        make(nist.Answers, len(doc.Answers)),
		Result: nist.Result{
			Functions:       make([]nist.FunctionScore, 0, len(doc.Functions)),
			OverallScore:    doc.OverallScore,
			Maturity:        types.MaturityLevel(doc.Maturity),
			Recommendations: append([]string{}, doc.Recommendations...),
		},
		Assessor:   doc.Assessor,
		Notes:      doc.Notes,
		AssessedAt: doc.AssessedAt,
	}
	for k, v := range doc.Answers {
		a.Answers[nist.QuestionID(k)] = v
	}
	for _, f := range doc.Functions {
		a.Result.Functions = append(a.Result.Functions, nist.FunctionScore{
			FunctionID: nist.FunctionID(f.FunctionID),
			Name:       f.Name,
			Score:      f.Score,
		})
	}
	return a
}

type nistAssessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newNISTAssessmentRepository(client *firestore.Client) *nistAssessmentRepository {
	return &nistAssessmentRepository{client: client}
}

func (r *nistAssessmentRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, NISTAssessmentsCollection))
}

func (r *nistAssessmentRepository) Create(ctx context.Context, assessment *model.NISTAssessment) (*model.NISTAssessment, error) {
	created := assessment.Copy()
	prepareAssessment(&created.ID, &created.AssessedAt)
	doc := nistAssessmentToDocument(created)

	systems := r.client.Collection(CollectionName(r.collectionPrefix, AISystemsCollection))
	if err := createAssessment(ctx, r.client, systems, r.collection(), created.SystemID, created.ID, doc); err != nil {
		return nil, err
	}
	return nistAssessmentToModel(doc), nil
}

func (r *nistAssessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.NISTAssessment, error) {
	return getAssessment(ctx, r.collection(), id, nistAssessmentToModel)
}

func (r *nistAssessmentRepository) ListBySystem(ctx context.Context, systemID model.AISystemID) ([]*model.NISTAssessment, error) {
	return listAssessments(ctx, r.collection(), systemID, 0, nistAssessmentToModel)
}

func (r *nistAssessmentRepository) GetLatestBySystem(ctx context.Context, systemID model.AISystemID) (*model.NISTAssessment, error) {
	return latestAssessment(ctx, r.collection(), systemID, nistAssessmentToModel)
}
