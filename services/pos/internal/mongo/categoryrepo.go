package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/restobarhq/restobar/services/pos/internal/catalog"
)

type CategoryRepo struct {
	collection *mongo.Collection
}

func NewCategoryRepo(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{
		collection: db.Collection("categories"),
	}
}

func (r *CategoryRepo) Create(ctx context.Context, category *catalog.Category) error {
	if category == nil {
		return fmt.Errorf("category is nil")
	}

	if _, err := r.collection.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("cannot create category: %w", err)
	}

	return nil
}

func (r *CategoryRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get category: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*catalog.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*catalog.Category
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode categories: %w", err)
	}

	return result, nil
}

func (r *CategoryRepo) Save(ctx context.Context, category *catalog.Category) error {
	if category == nil {
		return fmt.Errorf("category is nil")
	}

	filter := bson.M{"_id": category.ID}
	update := bson.M{"$set": category}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update category: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete category: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}
