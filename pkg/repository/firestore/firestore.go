package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
)

type Firestore struct {
	client         *firestore.Client
	aiSystem       *aiSystemRepository
	euAssessment   *euAssessmentRepository
	ukAssessment   *ukAssessmentRepository
	nistAssessment *nistAssessmentRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, e.g. "test" gives "test_ai_systems"
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.aiSystem.collectionPrefix = prefix
		f.euAssessment.collectionPrefix = prefix
		f.ukAssessment.collectionPrefix = prefix
		f.nistAssessment.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:         client,
		aiSystem:       newAISystemRepository(client),
		euAssessment:   newEUAssessmentRepository(client),
		ukAssessment:   newUKAssessmentRepository(client),
		nistAssessment: newNISTAssessmentRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) AISystem() interfaces.AISystemRepository {
	return f.aiSystem
}

func (f *Firestore) EUAssessment() interfaces.EUAssessmentRepository {
	return f.euAssessment
}

func (f *Firestore) UKAssessment() interfaces.UKAssessmentRepository {
	return f.ukAssessment
}

func (f *Firestore) NISTAssessment() interfaces.NISTAssessmentRepository {
	return f.nistAssessment
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// CollectionName applies the optional collection prefix
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

// Collection names, exported for the index migration
const (
	AISystemsCollection       = "ai_systems"
	EUAssessmentsCollection   = "eu_assessments"
	UKAssessmentsCollection   = "uk_assessments"
	NISTAssessmentsCollection = "nist_assessments"
)
