package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type aiSystemDocument struct {
	ID                 string    `firestore:"id"`
	Name               string    `firestore:"name"`
	Description        string    `firestore:"description"`
	Owner              string    `firestore:"owner"`
	Department         string    `firestore:"department"`
	Vendor             string    `firestore:"vendor"`
	RiskClassification string    `firestore:"risk_classification"`
	CreatedAt          time.Time `firestore:"created_at"`
	UpdatedAt          time.Time `firestore:"updated_at"`
}

type aiSystemRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAISystemRepository(client *firestore.Client) *aiSystemRepository {
	return &aiSystemRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *aiSystemRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, AISystemsCollection))
}

func aiSystemToDocument(s *model.AISystem) *aiSystemDocument {
	return &aiSystemDocument{
		ID:                 string(s.ID),
		Name:               s.Name,
		Description:        s.Description,
		Owner:              s.Owner,
		Department:         s.Department,
		Vendor:             s.Vendor,
		RiskClassification: string(s.RiskClassification),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func aiSystemToModel(doc *aiSystemDocument) *model.AISystem {
	return &model.AISystem{
		ID:                 model.AISystemID(doc.ID),
		Name:               doc.Name,
		Description:        doc.Description,
		Owner:              doc.Owner,
		Department:         doc.Department,
		Vendor:             doc.Vendor,
		RiskClassification: types.RiskTier(doc.RiskClassification).Normalize(),
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}

// nameTaken runs inside a transaction so that the check and the write are serialized
func (r *aiSystemRepository) nameTaken(tx *firestore.Transaction, name string, except model.AISystemID) (bool, error) {
	docs, err := tx.Documents(r.collection().Where("name", "==", name).Limit(2)).GetAll()
	if err != nil {
		return false, goerr.Wrap(err, "failed to query system by name", goerr.V("name", name))
	}
	for _, doc := range docs {
		if doc.Ref.ID != string(except) {
			return true, nil
		}
	}
	return false, nil
}

func (r *aiSystemRepository) Create(ctx context.Context, system *model.AISystem) (*model.AISystem, error) {
	created := system.Copy()
	created.Name = model.NormalizeName(created.Name)
	if created.ID == "" {
		created.ID = model.NewAISystemID()
	}
	now := time.Now().UTC()
	created.RiskClassification = created.RiskClassification.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := aiSystemToDocument(created)
	docRef := r.collection().Doc(doc.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		taken, err := r.nameTaken(tx, created.Name, "")
		if err != nil {
			return err
		}
		if taken {
			return goerr.Wrap(ErrDuplicateName, "system name already exists", goerr.V("name", created.Name))
		}
		return tx.Create(docRef, doc)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to create system", goerr.V("id", doc.ID))
	}

	return aiSystemToModel(doc), nil
}

func (r *aiSystemRepository) Get(ctx context.Context, id model.AISystemID) (*model.AISystem, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "system not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get system", goerr.V("id", id))
	}

	var doc aiSystemDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal system", goerr.V("id", id))
	}
	return aiSystemToModel(&doc), nil
}

func (r *aiSystemRepository) List(ctx context.Context) ([]*model.AISystem, error) {
	iter := r.collection().OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	systems := make([]*model.AISystem, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate systems")
		}

		var doc aiSystemDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal system", goerr.V("id", snap.Ref.ID))
		}
		systems = append(systems, aiSystemToModel(&doc))
	}

	return systems, nil
}

func (r *aiSystemRepository) Update(ctx context.Context, system *model.AISystem) (*model.AISystem, error) {
	docRef := r.collection().Doc(string(system.ID))
	name := model.NormalizeName(system.Name)

	var updated *model.AISystem
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "system not found", goerr.V("id", system.ID))
			}
			return goerr.Wrap(err, "failed to get system", goerr.V("id", system.ID))
		}

		var doc aiSystemDocument
		if err := snap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to unmarshal system", goerr.V("id", system.ID))
		}

		taken, err := r.nameTaken(tx, name, system.ID)
		if err != nil {
			return err
		}
		if taken {
			return goerr.Wrap(ErrDuplicateName, "system name already exists", goerr.V("name", name))
		}

		doc.Name = name
		doc.Description = system.Description
		doc.Owner = system.Owner
		doc.Department = system.Department
		doc.Vendor = system.Vendor
		doc.UpdatedAt = time.Now().UTC()

		updated = aiSystemToModel(&doc)
		return tx.Set(docRef, &doc)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateName) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to update system", goerr.V("id", system.ID))
	}

	return updated, nil
}

func (r *aiSystemRepository) Delete(ctx context.Context, id model.AISystemID) error {
	docRef := r.collection().Doc(string(id))
	if _, err := docRef.Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "system not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to delete system", goerr.V("id", id))
	}
	return nil
}

func (r *aiSystemRepository) UpdateClassification(ctx context.Context, id model.AISystemID, tier types.RiskTier) error {
	_, err := r.collection().Doc(string(id)).Update(ctx, classificationUpdates(tier))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "system not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update classification", goerr.V("id", id), goerr.V("tier", tier))
	}
	return nil
}

func classificationUpdates(tier types.RiskTier) []firestore.Update {
	return []firestore.Update{
		{Path: "risk_classification", Value: string(tier)},
		{Path: "updated_at", Value: time.Now().UTC()},
	}
}
