package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fixed IDs so re-running the seed stays idempotent and the demo orders
// can reference the same catalog documents.
var (
	MainsCategoryID    = uuid.MustParse("6f1c2f64-0001-4000-8000-000000000001")
	DessertsCategoryID = uuid.MustParse("6f1c2f64-0001-4000-8000-000000000002")
	DrinksCategoryID   = uuid.MustParse("6f1c2f64-0001-4000-8000-000000000003")

	BurgerItemID   = uuid.MustParse("6f1c2f64-0002-4000-8000-000000000001")
	PastaItemID    = uuid.MustParse("6f1c2f64-0002-4000-8000-000000000002")
	FishItemID     = uuid.MustParse("6f1c2f64-0002-4000-8000-000000000003")
	TiramisuItemID = uuid.MustParse("6f1c2f64-0002-4000-8000-000000000004")
	ColaItemID     = uuid.MustParse("6f1c2f64-0002-4000-8000-000000000005")
	WineItemID     = uuid.MustParse("6f1c2f64-0002-4000-8000-000000000006")

	CashMethodID       = uuid.MustParse("6f1c2f64-0003-4000-8000-000000000001")
	CardMethodID       = uuid.MustParse("6f1c2f64-0003-4000-8000-000000000002")
	RoomChargeMethodID = uuid.MustParse("6f1c2f64-0003-4000-8000-000000000003")
)

// SeedCatalog creates demo categories, items and payment methods
func SeedCatalog(ctx context.Context, db *mongo.Database) error {
	now := time.Now()

	categories := []bson.M{
		{
			"_id":        MainsCategoryID,
			"name":       "Mains",
			"active":     true,
			"is_kitchen": true,
			"created_at": now,
			"updated_at": now,
			"created_by": "demo-seed",
		},
		{
			"_id":        DessertsCategoryID,
			"name":       "Desserts",
			"active":     true,
			"is_kitchen": true,
			"created_at": now,
			"updated_at": now,
			"created_by": "demo-seed",
		},
		{
			"_id":        DrinksCategoryID,
			"name":       "Drinks",
			"active":     true,
			"is_kitchen": false,
			"created_at": now,
			"updated_at": now,
			"created_by": "demo-seed",
		},
	}

	items := []bson.M{
		{
			"_id":                 BurgerItemID,
			"name":                "House Burger",
			"price":               185.0,
			"category_id":         MainsCategoryID,
			"available":           true,
			"stock":               24,
			"low_stock_threshold": 5,
			"created_at":          now,
			"updated_at":          now,
			"created_by":          "demo-seed",
		},
		{
			"_id":                 PastaItemID,
			"name":                "Tagliatelle al Ragu",
			"price":               210.0,
			"category_id":         MainsCategoryID,
			"available":           true,
			"stock":               18,
			"low_stock_threshold": 4,
			"created_at":          now,
			"updated_at":          now,
			"created_by":          "demo-seed",
		},
		{
			"_id":                 FishItemID,
			"name":                "Grilled Sea Bass",
			"price":               320.0,
			"category_id":         MainsCategoryID,
			"available":           true,
			"stock":               8,
			"low_stock_threshold": 2,
			"created_at":          now,
			"updated_at":          now,
			"created_by":          "demo-seed",
		},
		{
			"_id":                 TiramisuItemID,
			"name":                "Tiramisu",
			"price":               95.0,
			"category_id":         DessertsCategoryID,
			"available":           true,
			"stock":               12,
			"low_stock_threshold": 3,
			"created_at":          now,
			"updated_at":          now,
			"created_by":          "demo-seed",
		},
		{
			// Untracked: sold from the fountain, never runs out
			"_id":                 ColaItemID,
			"name":                "Cola",
			"price":               45.0,
			"category_id":         DrinksCategoryID,
			"available":           true,
			"low_stock_threshold": 0,
			"created_at":          now,
			"updated_at":          now,
			"created_by":          "demo-seed",
		},
		{
			"_id":                 WineItemID,
			"name":                "House Red (Glass)",
			"price":               85.0,
			"category_id":         DrinksCategoryID,
			"available":           true,
			"stock":               40,
			"low_stock_threshold": 6,
			"created_at":          now,
			"updated_at":          now,
			"created_by":          "demo-seed",
		},
	}

	methods := []bson.M{
		{
			"_id":        CashMethodID,
			"name":       "Cash",
			"active":     true,
			"created_at": now,
			"updated_at": now,
			"created_by": "demo-seed",
		},
		{
			"_id":        CardMethodID,
			"name":       "Card",
			"active":     true,
			"created_at": now,
			"updated_at": now,
			"created_by": "demo-seed",
		},
		{
			"_id":        RoomChargeMethodID,
			"name":       "Room Charge",
			"active":     true,
			"created_at": now,
			"updated_at": now,
			"created_by": "demo-seed",
		},
	}

	if err := upsertAll(ctx, db.Collection("categories"), categories); err != nil {
		return fmt.Errorf("cannot seed categories: %w", err)
	}
	if err := upsertAll(ctx, db.Collection("items"), items); err != nil {
		return fmt.Errorf("cannot seed items: %w", err)
	}
	if err := upsertAll(ctx, db.Collection("payment_methods"), methods); err != nil {
		return fmt.Errorf("cannot seed payment methods: %w", err)
	}
	return nil
}

func upsertAll(ctx context.Context, collection *mongo.Collection, docs []bson.M) error {
	for _, doc := range docs {
		_, err := collection.UpdateOne(ctx, bson.M{"_id": doc["_id"]}, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}
