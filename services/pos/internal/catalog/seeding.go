package catalog

import (
	"context"
	"errors"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

const catalogDemoSeedApplication = "catalog_demo"

// ApplyDemoSeeds loads a small demo catalog: a kitchen category with
// tracked-stock dishes and a bar category of untracked drinks.
func ApplyDemoSeeds(ctx context.Context, items ItemRepo, categories CategoryRepo, db *mongo.Database, logger apt.Logger) error {
	if db == nil {
		return errors.New("database is required for demo seeding")
	}

	tracker := seed.NewMongoTracker(db)

	seeds := []seed.Seed{
		{
			ID:          "2026-08-01_demo_catalog_v1",
			Description: "Create demo categories and items with stock levels",
			Run: func(ctx context.Context) error {
				return seedDemoCatalog(ctx, items, categories, logger)
			},
		},
	}

	logger.Info("Applying demo catalog seeds")
	if err := seed.Apply(ctx, tracker, seeds, catalogDemoSeedApplication); err != nil {
		return err
	}
	logger.Info("Demo catalog seeds applied successfully")
	return nil
}

func seedDemoCatalog(ctx context.Context, items ItemRepo, categories CategoryRepo, logger apt.Logger) error {
	mains := NewCategory()
	mains.Name = "Mains"
	mains.IsKitchen = true
	mains.BeforeCreate()

	drinks := NewCategory()
	drinks.Name = "Drinks"
	drinks.IsKitchen = false
	drinks.BeforeCreate()

	for _, category := range []*Category{mains, drinks} {
		if err := categories.Create(ctx, category); err != nil {
			return err
		}
	}

	stock := func(n int) *int { return &n }

	demoItems := []*Item{
		{Name: "Burger", Price: 200, CategoryID: mains.ID, Stock: stock(25), LowStockThreshold: 5},
		{Name: "Grilled Fish", Price: 320, CategoryID: mains.ID, Stock: stock(10), LowStockThreshold: 3},
		{Name: "Fries", Price: 90, CategoryID: mains.ID, Stock: stock(60), LowStockThreshold: 10},
		{Name: "Soda", Price: 50, CategoryID: drinks.ID},
		{Name: "Iced Tea", Price: 60, CategoryID: drinks.ID},
		{Name: "Craft Beer", Price: 140, CategoryID: drinks.ID, Stock: stock(48), LowStockThreshold: 12},
	}

	for _, item := range demoItems {
		item.Available = true
		item.BeforeCreate()
		if err := items.Create(ctx, item); err != nil {
			return err
		}
		logger.Debug("seeded demo item", "name", item.Name)
	}

	return nil
}

// DemoSeedingFunc adapts ApplyDemoSeeds to a lifecycle OnStart hook.
func DemoSeedingFunc(ctx context.Context, items ItemRepo, categories CategoryRepo, db *mongo.Database, logger apt.Logger) func(context.Context) error {
	return func(context.Context) error {
		return ApplyDemoSeeds(ctx, items, categories, db, logger)
	}
}
