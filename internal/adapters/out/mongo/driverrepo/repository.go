// Package driverrepo reads the driver registry from the document store.
package driverrepo

import (
	"context"
	"fmt"

	mongostore "fulfillment/internal/adapters/out/mongo"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.DriverRegistry = (*Repository)(nil)

// Repository implements ports.DriverRegistry. Results come back in insertion order
// (ascending _id), which is the order first-match selection relies on.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) (*Repository, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}

	return &Repository{collection: db.Collection(mongostore.DriversCollection)}, nil
}

func (r *Repository) FindCovering(ctx context.Context, pc kernel.PostCode) ([]*driver.Driver, error) {
	filter := bson.M{
		"suburbStart": bson.M{"$lte": pc.Int()},
		"suburbEnd":   bson.M{"$gte": pc.Int()},
	}
	return r.find(ctx, filter)
}

func (r *Repository) GetAll(ctx context.Context) ([]*driver.Driver, error) {
	return r.find(ctx, bson.M{})
}

// Add registers a driver. The registry is maintained outside this service; this is
// used for seeding.
func (r *Repository) Add(ctx context.Context, d *driver.Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}

	_, err := r.collection.InsertOne(ctx, fromDomain(d))
	return mongostore.Classify(d.ID(), err)
}

func (r *Repository) find(ctx context.Context, filter bson.M) ([]*driver.Driver, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, mongostore.Classify(nil, err)
	}
	defer cursor.Close(ctx)

	var docs []DriverDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, mongostore.Classify(nil, err)
	}

	result := make([]*driver.Driver, 0, len(docs))
	for _, doc := range docs {
		d, err := toDomain(doc)
		if err != nil {
			return nil, fmt.Errorf("driver %s: %w", doc.ObjectID.Hex(), err)
		}
		result = append(result, d)
	}

	return result, nil
}
