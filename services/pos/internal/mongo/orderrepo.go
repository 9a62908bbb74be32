package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/restobarhq/restobar/pkg/enums/orderstatus"
	"github.com/restobarhq/restobar/services/pos/internal/order"
)

type OrderRepo struct {
	collection *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{
		collection: db.Collection("orders"),
	}
}

func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	if _, err := r.collection.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("cannot create order: %w", err)
	}

	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*order.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepo) ListActive(ctx context.Context) ([]*order.Order, error) {
	return r.list(ctx, bson.M{"status": bson.M{"$nin": terminalStatuses()}})
}

func (r *OrderRepo) ListCreatedAfter(ctx context.Context, after time.Time) ([]*order.Order, error) {
	return r.list(ctx, bson.M{"created_at": bson.M{"$gt": after}})
}

func (r *OrderRepo) list(ctx context.Context, filter bson.M) ([]*order.Order, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*order.Order
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode orders: %w", err)
	}

	return result, nil
}

func (r *OrderRepo) Save(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	filter := bson.M{"_id": o.ID}
	update := bson.M{"$set": o}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update order: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}

// SaveIfActive writes the order only while the stored document is still
// non-terminal. The filter makes the terminal transition a single
// compare-and-swap, so two racing complete/cancel calls cannot both win.
func (r *OrderRepo) SaveIfActive(ctx context.Context, o *order.Order) (bool, error) {
	if o == nil {
		return false, fmt.Errorf("order is nil")
	}

	filter := bson.M{
		"_id":    o.ID,
		"status": bson.M{"$nin": terminalStatuses()},
	}
	update := bson.M{"$set": o}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("cannot update order: %w", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete order: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}

func terminalStatuses() []string {
	return []string{
		orderstatus.Statuses.Completed.Name,
		orderstatus.Statuses.Cancelled.Name,
	}
}
