package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// WeightRepo handles MongoDB operations for runtime-editable block
// weights. Blocks without a stored document keep their default weight.
type WeightRepo interface {
	Set(ctx context.Context, block string, weight int) error
	GetAll(ctx context.Context) (map[string]int, error)
	Reset(ctx context.Context) error
}

type weightRepo struct {
	collection *mongo.Collection
}

// NewWeightRepo creates a new weight repository
func NewWeightRepo(db *mongo.Database) WeightRepo {
	return &weightRepo{
		collection: db.Collection("weights"),
	}
}

func (r *weightRepo) Set(ctx context.Context, block string, weight int) error {
	update := bson.M{"$set": bson.M{
		"weight":    weight,
		"updatedAt": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": block}, update, opts)
	return err
}

func (r *weightRepo) GetAll(ctx context.Context) (map[string]int, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var weights []*model.BlockWeight
	if err := cursor.All(ctx, &weights); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(weights))
	for _, w := range weights {
		out[w.Block] = w.Weight
	}
	return out, nil
}

func (r *weightRepo) Reset(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
