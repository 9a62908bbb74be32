package order

import (
	"context"
	"errors"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

const posDemoSeedApplication = "pos_demo"

// ApplyDemoSeeds loads the payment methods a fresh install needs before
// the first order can be submitted.
func ApplyDemoSeeds(ctx context.Context, payments PaymentMethodRepo, db *mongo.Database, logger apt.Logger) error {
	if db == nil {
		return errors.New("database is required for demo seeding")
	}

	tracker := seed.NewMongoTracker(db)

	seeds := []seed.Seed{
		{
			ID:          "2026-08-01_demo_payment_methods_v1",
			Description: "Create default payment methods",
			Run: func(ctx context.Context) error {
				return seedPaymentMethods(ctx, payments, logger)
			},
		},
	}

	logger.Info("Applying demo order seeds")
	if err := seed.Apply(ctx, tracker, seeds, posDemoSeedApplication); err != nil {
		return err
	}
	logger.Info("Demo order seeds applied successfully")
	return nil
}

func seedPaymentMethods(ctx context.Context, payments PaymentMethodRepo, logger apt.Logger) error {
	for _, name := range []string{"Cash", "Card", "Room Charge"} {
		method := NewPaymentMethod()
		method.Name = name
		method.BeforeCreate()
		if err := payments.Create(ctx, method); err != nil {
			return err
		}
		logger.Debug("seeded payment method", "name", name)
	}
	return nil
}

// DemoSeedingFunc adapts ApplyDemoSeeds to a lifecycle OnStart hook.
func DemoSeedingFunc(ctx context.Context, payments PaymentMethodRepo, db *mongo.Database, logger apt.Logger) func(context.Context) error {
	return func(context.Context) error {
		return ApplyDemoSeeds(ctx, payments, db, logger)
	}
}
