package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterRepo backs the order number sequence with an atomic upsert.
// Every Next is one findAndModify, so concurrent submissions always get
// distinct, gapless-enough values even across restarts.
type CounterRepo struct {
	collection *mongo.Collection
}

func NewCounterRepo(db *mongo.Database) *CounterRepo {
	return &CounterRepo{
		collection: db.Collection("counters"),
	}
}

type counterDoc struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}

	var doc counterDoc
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("cannot advance counter %s: %w", name, err)
	}

	return doc.Seq, nil
}
