// Package orderrepo stores docketed orders in the document store.
package orderrepo

import (
	"context"
	"errors"
	"fmt"

	mongostore "fulfillment/internal/adapters/out/mongo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.OrderRepository = (*Repository)(nil)

// Repository implements ports.OrderRepository on a single orders collection with a
// unique (orderDate, orderId) index.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) (*Repository, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}

	return &Repository{collection: db.Collection(mongostore.DocketsCollection)}, nil
}

func (r *Repository) Add(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	_, err := r.collection.InsertOne(ctx, fromDomain(o))
	return mongostore.Classify(orderKey(o), err)
}

// AddMany inserts unordered so one rejected duplicate does not stop the rest of the
// batch.
func (r *Repository) AddMany(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	docs := make([]any, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		docs = append(docs, fromDomain(o))
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return mongostore.Classify(orders[0].Date().String(), err)
}

func (r *Repository) FindByDate(ctx context.Context, date kernel.BusinessDate) ([]*order.Order, error) {
	if err := date.Validate(); err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx,
		bson.M{"orderDate": date.String()},
		options.Find().SetSort(bson.D{{Key: "orderId", Value: 1}}),
	)
	if err != nil {
		return nil, mongostore.Classify(date.String(), err)
	}
	defer cursor.Close(ctx)

	var docs []OrderDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, mongostore.Classify(date.String(), err)
	}

	result := make([]*order.Order, 0, len(docs))
	for _, doc := range docs {
		o, err := toDomain(doc)
		if err != nil {
			return nil, fmt.Errorf("order %d of %s: %w", doc.OrderID, doc.OrderDate, err)
		}
		result = append(result, o)
	}

	return result, nil
}

func (r *Repository) MaxOrderID(ctx context.Context, date kernel.BusinessDate) (int64, error) {
	if err := date.Validate(); err != nil {
		return 0, err
	}

	var doc struct {
		OrderID int64 `bson:"orderId"`
	}
	err := r.collection.FindOne(ctx,
		bson.M{"orderDate": date.String()},
		options.FindOne().
			SetSort(bson.D{{Key: "orderId", Value: -1}}).
			SetProjection(bson.M{"orderId": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, mongostore.Classify(date.String(), err)
	}

	return doc.OrderID, nil
}

type totalsResult struct {
	OrderCount      int64   `bson:"orderCount"`
	TotalSales      float64 `bson:"totalSales"`
	TotalCommission float64 `bson:"totalCommission"`
}

type topProductResult struct {
	ProductName string `bson:"_id"`
	Quantity    int64  `bson:"quantity"`
}

// SummarizeDay runs two pipelines: totals grouped over the whole day, and the product
// with the highest summed quantity. Ties on quantity go to the lowest product name.
func (r *Repository) SummarizeDay(ctx context.Context, date kernel.BusinessDate) (ports.DayAggregate, error) {
	if err := date.Validate(); err != nil {
		return ports.DayAggregate{}, err
	}

	match := bson.D{{Key: "$match", Value: bson.M{"orderDate": date.String()}}}

	totalsPipeline := mongo.Pipeline{
		match,
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "orderCount", Value: bson.M{"$sum": 1}},
			{Key: "totalSales", Value: bson.M{"$sum": "$totalOrderPrice"}},
			{Key: "totalCommission", Value: bson.M{"$sum": "$totalDriverCommision"}},
		}}},
	}

	var totals []totalsResult
	if err := r.aggregate(ctx, totalsPipeline, &totals); err != nil {
		return ports.DayAggregate{}, mongostore.Classify(date.String(), err)
	}

	aggregate := ports.DayAggregate{TotalSales: decimal.Zero, TotalCommission: decimal.Zero}
	if len(totals) == 0 || totals[0].OrderCount == 0 {
		return aggregate, nil
	}

	aggregate.OrderCount = totals[0].OrderCount
	aggregate.TotalSales = kernel.RoundCurrency(decimal.NewFromFloat(totals[0].TotalSales))
	aggregate.TotalCommission = kernel.RoundCurrency(decimal.NewFromFloat(totals[0].TotalCommission))

	topPipeline := mongo.Pipeline{
		match,
		{{Key: "$unwind", Value: "$orderItems"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$orderItems.productName"},
			{Key: "quantity", Value: bson.M{"$sum": "$orderItems.quantity"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 1}},
	}

	var top []topProductResult
	if err := r.aggregate(ctx, topPipeline, &top); err != nil {
		return ports.DayAggregate{}, mongostore.Classify(date.String(), err)
	}
	if len(top) > 0 {
		aggregate.TopProduct = top[0].ProductName
	}

	return aggregate, nil
}

func (r *Repository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

func orderKey(o *order.Order) string {
	return fmt.Sprintf("%s/%d", o.Date().String(), o.ID())
}
