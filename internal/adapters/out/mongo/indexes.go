package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names inside the store database. Docketed orders live in Docket, where
// the store's existing tooling reads them.
const (
	DocketsCollection = "Docket"
	DriversCollection = "Driver"
)

// EnsureIndexes creates the indexes the repositories rely on. Creating an index that
// already exists with the same definition is a no-op, so this runs on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	orders := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderDate", Value: 1}, {Key: "orderId", Value: 1}},
			Options: options.Index().SetName("order_date_order_id").SetUnique(true),
		},
	}
	if _, err := db.Collection(DocketsCollection).Indexes().CreateMany(ctx, orders); err != nil {
		return fmt.Errorf("create %s indexes: %w", DocketsCollection, Classify(nil, err))
	}

	drivers := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "suburbStart", Value: 1}, {Key: "suburbEnd", Value: 1}},
			Options: options.Index().SetName("suburb_range"),
		},
	}
	if _, err := db.Collection(DriversCollection).Indexes().CreateMany(ctx, drivers); err != nil {
		return fmt.Errorf("create %s indexes: %w", DriversCollection, Classify(nil, err))
	}

	return nil
}
