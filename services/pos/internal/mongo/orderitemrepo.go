package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/restobarhq/restobar/services/pos/internal/order"
)

type OrderItemRepo struct {
	collection *mongo.Collection
}

func NewOrderItemRepo(db *mongo.Database) *OrderItemRepo {
	return &OrderItemRepo{
		collection: db.Collection("order_items"),
	}
}

func (r *OrderItemRepo) Create(ctx context.Context, item *order.OrderItem) error {
	if item == nil {
		return fmt.Errorf("order item is nil")
	}

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("cannot create order item: %w", err)
	}

	return nil
}

func (r *OrderItemRepo) BulkCreate(ctx context.Context, items []*order.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		if item == nil {
			return fmt.Errorf("order item is nil")
		}
		docs = append(docs, item)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("cannot create order items: %w", err)
	}

	return nil
}

func (r *OrderItemRepo) Get(ctx context.Context, id uuid.UUID) (*order.OrderItem, error) {
	var item order.OrderItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get order item: %w", err)
	}
	return &item, nil
}

func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.OrderItem, error) {
	return r.list(ctx, bson.M{"order_id": orderID})
}

func (r *OrderItemRepo) ListByOrders(ctx context.Context, orderIDs []uuid.UUID) ([]*order.OrderItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"order_id": bson.M{"$in": orderIDs}})
}

func (r *OrderItemRepo) list(ctx context.Context, filter bson.M) ([]*order.OrderItem, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list order items: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*order.OrderItem
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode order items: %w", err)
	}

	return result, nil
}

func (r *OrderItemRepo) Save(ctx context.Context, item *order.OrderItem) error {
	if item == nil {
		return fmt.Errorf("order item is nil")
	}

	filter := bson.M{"_id": item.ID}
	update := bson.M{"$set": item}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update order item: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("order item not found")
	}

	return nil
}

func (r *OrderItemRepo) DeleteByOrder(ctx context.Context, orderID uuid.UUID) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("cannot delete order items: %w", err)
	}
	return nil
}
