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

// SeedOrders creates demo orders across the lifecycle states
func SeedOrders(ctx context.Context, db *mongo.Database) error {
	ordersCollection := db.Collection("orders")
	itemsCollection := db.Collection("order_items")

	now := time.Now()

	// Scenario 1: walk-up bar sale, already completed. No kitchen items so
	// the order never carried a kitchen status.
	order1ID := uuid.New()
	completedAt := now.Add(-45 * time.Minute)
	order1 := bson.M{
		"_id":               order1ID,
		"number":            "ORD-000001",
		"type":              "dine_in",
		"people_count":      1,
		"cards_presented":   0,
		"payment_method_id": CashMethodID,
		"subtotal":          45.0,
		"card_discount":     0.0,
		"manual_discount":   0.0,
		"service_charge":    0.0,
		"total":             45.0,
		"status":            "completed",
		"has_kitchen_items": false,
		"created_at":        now.Add(-46 * time.Minute),
		"updated_at":        completedAt,
		"completed_at":      completedAt,
		"created_by":        "demo-seed",
	}

	order1Items := []bson.M{
		{
			"_id":         uuid.New(),
			"order_id":    order1ID,
			"item_id":     ColaItemID,
			"category_id": DrinksCategoryID,
			"name":        "Cola",
			"quantity":    1,
			"unit_price":  45.0,
			"line_total":  45.0,
			"is_kitchen":  false,
			"created_at":  now.Add(-46 * time.Minute),
			"updated_at":  now.Add(-46 * time.Minute),
			"created_by":  "demo-seed",
		},
	}

	// Scenario 2: dine-in table with a card discount, kitchen currently
	// preparing. One line already ready, one still on the pass.
	order2ID := uuid.New()
	order2 := bson.M{
		"_id":               order2ID,
		"number":            "ORD-000002",
		"type":              "dine_in",
		"customer":          "Table 7",
		"people_count":      2,
		"cards_presented":   1,
		"payment_method_id": CardMethodID,
		"subtotal":          505.0,
		"card_discount":     50.5,
		"manual_discount":   0.0,
		"service_charge":    0.0,
		"total":             454.5,
		"status":            "pending",
		"kitchen_status":    "preparing",
		"has_kitchen_items": true,
		"created_at":        now.Add(-18 * time.Minute),
		"updated_at":        now.Add(-6 * time.Minute),
		"created_by":        "demo-seed",
	}

	order2Items := []bson.M{
		{
			"_id":            uuid.New(),
			"order_id":       order2ID,
			"item_id":        BurgerItemID,
			"category_id":    MainsCategoryID,
			"name":           "House Burger",
			"quantity":       1,
			"unit_price":     185.0,
			"line_total":     185.0,
			"is_kitchen":     true,
			"kitchen_status": "ready",
			"started_at":     now.Add(-15 * time.Minute),
			"finished_at":    now.Add(-6 * time.Minute),
			"created_at":     now.Add(-18 * time.Minute),
			"updated_at":     now.Add(-6 * time.Minute),
			"created_by":     "demo-seed",
		},
		{
			"_id":            uuid.New(),
			"order_id":       order2ID,
			"item_id":        FishItemID,
			"category_id":    MainsCategoryID,
			"name":           "Grilled Sea Bass",
			"quantity":       1,
			"unit_price":     320.0,
			"line_total":     320.0,
			"notes":          "No lemon",
			"is_kitchen":     true,
			"kitchen_status": "preparing",
			"started_at":     now.Add(-12 * time.Minute),
			"created_at":     now.Add(-18 * time.Minute),
			"updated_at":     now.Add(-12 * time.Minute),
			"created_by":     "demo-seed",
		},
	}

	// Scenario 3: hotel room order with service charge, untouched by the
	// kitchen so its lines show up urgent on the display after a while.
	order3ID := uuid.New()
	order3 := bson.M{
		"_id":               order3ID,
		"number":            "ORD-000003",
		"type":              "hotel",
		"customer":          "Ms. Laurent",
		"room_number":       "204",
		"people_count":      1,
		"cards_presented":   0,
		"payment_method_id": RoomChargeMethodID,
		"subtotal":          305.0,
		"card_discount":     0.0,
		"manual_discount":   0.0,
		"service_charge":    30.5,
		"total":             335.5,
		"status":            "pending",
		"kitchen_status":    "pending",
		"has_kitchen_items": true,
		"created_at":        now.Add(-3 * time.Minute),
		"updated_at":        now.Add(-3 * time.Minute),
		"created_by":        "demo-seed",
	}

	order3Items := []bson.M{
		{
			"_id":            uuid.New(),
			"order_id":       order3ID,
			"item_id":        PastaItemID,
			"category_id":    MainsCategoryID,
			"name":           "Tagliatelle al Ragu",
			"quantity":       1,
			"unit_price":     210.0,
			"line_total":     210.0,
			"is_kitchen":     true,
			"kitchen_status": "pending",
			"created_at":     now.Add(-3 * time.Minute),
			"updated_at":     now.Add(-3 * time.Minute),
			"created_by":     "demo-seed",
		},
		{
			"_id":            uuid.New(),
			"order_id":       order3ID,
			"item_id":        TiramisuItemID,
			"category_id":    DessertsCategoryID,
			"name":           "Tiramisu",
			"quantity":       1,
			"unit_price":     95.0,
			"line_total":     95.0,
			"is_kitchen":     true,
			"kitchen_status": "pending",
			"created_at":     now.Add(-3 * time.Minute),
			"updated_at":     now.Add(-3 * time.Minute),
			"created_by":     "demo-seed",
		},
	}

	for _, doc := range []bson.M{order1, order2, order3} {
		_, err := ordersCollection.UpdateOne(ctx, bson.M{"_id": doc["_id"]}, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("cannot create demo order: %w", err)
		}
	}

	var allItems []bson.M
	allItems = append(allItems, order1Items...)
	allItems = append(allItems, order2Items...)
	allItems = append(allItems, order3Items...)
	for _, item := range allItems {
		_, err := itemsCollection.UpdateOne(ctx, bson.M{"_id": item["_id"]}, bson.M{"$setOnInsert": item}, options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("cannot create demo order item: %w", err)
		}
	}

	// Keep the order number sequence ahead of the seeded numbers
	counters := db.Collection("counters")
	_, err := counters.UpdateOne(ctx, bson.M{"_id": "orders"}, bson.M{"$max": bson.M{"seq": int64(3)}}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("cannot advance order counter: %w", err)
	}

	return nil
}
