package repository

import (
	"context"
	"time"

	"go-store-inventory/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const itemsCollection = "items"

// Projection applied to every read: drops the document id and the owning store.
var publicProjection = bson.D{{Key: "_id", Value: 0}, {Key: "storeId", Value: 0}}

type itemMongoRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewItemMongoRepo stores items as documents in the shared "items" collection,
// partitioned by the storeId field.
func NewItemMongoRepo(db *mongo.Database) ItemRepository {
	return &itemMongoRepo{coll: db.Collection(itemsCollection), now: time.Now}
}

func (r *itemMongoRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "storeId", Value: 1}, {Key: "sku", Value: 1}},
			Options: options.Index().SetName("store_sku_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "storeId", Value: 1}, {Key: "lastUpdated", Value: -1}},
			Options: options.Index().SetName("store_last_updated"),
		},
	})
	return err
}

func (r *itemMongoRepo) List(ctx context.Context, storeID string) ([]model.Item, error) {
	opts := options.Find().
		SetProjection(publicProjection).
		SetSort(bson.D{{Key: "lastUpdated", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.D{{Key: "storeId", Value: storeID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []model.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemMongoRepo) ExistsBySKU(ctx context.Context, storeID, sku string) (bool, error) {
	filter := bson.D{{Key: "sku", Value: sku}, {Key: "storeId", Value: storeID}}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *itemMongoRepo) Insert(ctx context.Context, storeID string, item *model.Item) (*model.Item, error) {
	record := item.Public()
	record.StoreID = storeID
	// BSON dates carry millisecond precision; truncate so the returned value matches what is stored.
	record.LastUpdated = r.now().UTC().Truncate(time.Millisecond)

	result, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}

	var created model.Item
	err = r.coll.FindOne(ctx,
		bson.D{{Key: "_id", Value: result.InsertedID}},
		options.FindOne().SetProjection(publicProjection),
	).Decode(&created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
