package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restobarhq/restobar/services/pos/internal/catalog"
)

type ItemRepo struct {
	collection *mongo.Collection
}

func NewItemRepo(db *mongo.Database) *ItemRepo {
	return &ItemRepo{
		collection: db.Collection("items"),
	}
}

func (r *ItemRepo) Create(ctx context.Context, item *catalog.Item) error {
	if item == nil {
		return fmt.Errorf("item is nil")
	}

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("cannot create item: %w", err)
	}

	return nil
}

func (r *ItemRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get item: %w", err)
	}
	return &item, nil
}

func (r *ItemRepo) List(ctx context.Context) ([]*catalog.Item, error) {
	return r.list(ctx, bson.M{})
}

func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Item, error) {
	return r.list(ctx, bson.M{"category_id": categoryID})
}

func (r *ItemRepo) list(ctx context.Context, filter bson.M) ([]*catalog.Item, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list items: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*catalog.Item
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode items: %w", err)
	}

	return result, nil
}

func (r *ItemRepo) Save(ctx context.Context, item *catalog.Item) error {
	if item == nil {
		return fmt.Errorf("item is nil")
	}

	filter := bson.M{"_id": item.ID}
	update := bson.M{"$set": item}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update item: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("item not found")
	}

	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete item: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("item not found")
	}

	return nil
}

// DecrementStock takes qty units from the item in one conditional update.
// The filter requires stock >= qty, so the counter can never go negative
// and two concurrent sales of the last unit cannot both succeed. A filter
// miss on an existing tracked item surfaces as ErrInsufficientStock.
func (r *ItemRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*catalog.Item, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	filter := bson.M{
		"_id":   id,
		"stock": bson.M{"$gte": qty},
	}
	update := bson.M{"$inc": bson.M{"stock": -qty}}

	var item catalog.Item
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, catalog.ErrInsufficientStock
		}
		return nil, fmt.Errorf("cannot decrement stock: %w", err)
	}

	return &item, nil
}

// IncrementStock returns qty units to a tracked item. Untracked items
// (stock null) are left untouched by the filter.
func (r *ItemRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	filter := bson.M{
		"_id":   id,
		"stock": bson.M{"$ne": nil},
	}
	update := bson.M{"$inc": bson.M{"stock": qty}}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("cannot increment stock: %w", err)
	}

	return nil
}
