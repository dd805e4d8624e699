package mongodb

import (
	"context"
	"errors"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/infra/persistence/model"
	"LandKingdom/internal/kingdom/state"
	"LandKingdom/modules/kit/errx"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ledgerCollectionName = "kingdom_ledger"
	landCollectionName   = "kingdom_land"
)

const (
	OpLoadKingdom = "repo.kingdom.mongo.Load"
	OpSaveKingdom = "repo.kingdom.mongo.Save"
)

type KingdomRepository struct {
	ledger *mongo.Collection
	lands  *mongo.Collection
}

func NewKingdomRepository(db *mongo.Database) *KingdomRepository {
	return &KingdomRepository{
		ledger: db.Collection(ledgerCollectionName),
		lands:  db.Collection(landCollectionName),
	}
}

func (r *KingdomRepository) Load(ctx context.Context) (*state.PersistSnapshot, error) {
	if r == nil || r.ledger == nil || r.lands == nil {
		return nil, errors.New("mongodb kingdom collection is nil")
	}

	var doc model.LedgerDoc
	err := r.ledger.FindOne(ctx, bson.M{"_id": model.LedgerDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpLoadKingdom)
	}

	cur, err := r.lands.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpLoadKingdom)
	}
	var landDocs []model.LandDoc
	if err := cur.All(ctx, &landDocs); err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpLoadKingdom)
	}
	lands := make([]domain.Land, 0, len(landDocs))
	for _, d := range landDocs {
		l, err := model.LandDocToDomain(d)
		if err != nil {
			return nil, errx.ErrInternal.WithCause(err).WithData("landId", d.ID)
		}
		lands = append(lands, l)
	}
	return model.LedgerDocToSnapshot(doc, lands)
}

// Save 先写变化的地块，再整体覆盖账本文档。
func (r *KingdomRepository) Save(ctx context.Context, s *state.PersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.ledger == nil || r.lands == nil {
		return errors.New("mongodb kingdom collection is nil")
	}

	if len(s.Lands) > 0 {
		writes := make([]mongo.WriteModel, 0, len(s.Lands))
		for _, l := range s.Lands {
			doc := model.LandToDoc(l)
			writes = append(writes, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": doc.ID}).
				SetReplacement(doc).
				SetUpsert(true))
		}
		if _, err := r.lands.BulkWrite(ctx, writes); err != nil {
			return errx.ErrUnavailable.WithCause(err).WithData("op", OpSaveKingdom).WithData("version", s.Version)
		}
	}

	if !s.KingdomChanged {
		return nil
	}
	doc := model.SnapshotToLedgerDoc(s)
	_, err := r.ledger.ReplaceOne(
		ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", OpSaveKingdom).WithData("version", s.Version)
	}
	return nil
}
