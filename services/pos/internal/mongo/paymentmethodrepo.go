package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/restobarhq/restobar/services/pos/internal/order"
)

// PaymentMethodRepo reads the payment_methods reference collection. The
// core only validates references; the back office owns the contents.
type PaymentMethodRepo struct {
	collection *mongo.Collection
}

func NewPaymentMethodRepo(db *mongo.Database) *PaymentMethodRepo {
	return &PaymentMethodRepo{
		collection: db.Collection("payment_methods"),
	}
}

func (r *PaymentMethodRepo) Create(ctx context.Context, method *order.PaymentMethod) error {
	if method == nil {
		return fmt.Errorf("payment method is nil")
	}

	if _, err := r.collection.InsertOne(ctx, method); err != nil {
		return fmt.Errorf("cannot create payment method: %w", err)
	}

	return nil
}

func (r *PaymentMethodRepo) List(ctx context.Context) ([]*order.PaymentMethod, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("cannot list payment methods: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*order.PaymentMethod
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode payment methods: %w", err)
	}

	return result, nil
}

func (r *PaymentMethodRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, fmt.Errorf("cannot check payment method: %w", err)
	}
	return true, nil
}
