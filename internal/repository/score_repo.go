package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// ScoreRepo handles MongoDB operations for suggested and approved block
// scores. One document per (application, block) pair.
type ScoreRepo interface {
	Upsert(ctx context.Context, score *model.SuggestedScore) error
	GetByApplication(ctx context.Context, applicationID string) ([]*model.SuggestedScore, error)
	GetApproved(ctx context.Context, applicationID string) ([]*model.SuggestedScore, error)
	Approve(ctx context.Context, applicationID, block, approvedBy string) error
	DeleteSuggested(ctx context.Context, applicationID string) error
	DeleteByApplication(ctx context.Context, applicationID string) error
}

type scoreRepo struct {
	collection *mongo.Collection
}

// NewScoreRepo creates a new score repository
func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		collection: db.Collection("scores"),
	}
}

func (r *scoreRepo) Upsert(ctx context.Context, score *model.SuggestedScore) error {
	filter := bson.M{
		"applicationId": score.ApplicationID,
		"block":         score.Block,
	}
	update := bson.M{
		"$set": bson.M{
			"score":       score.Score,
			"suggestedBy": score.SuggestedBy,
			"confidence":  score.Confidence,
			"rationale":   score.Rationale,
			"approved":    score.Approved,
			"approvedBy":  score.ApprovedBy,
		},
		"$setOnInsert": bson.M{
			"applicationId": score.ApplicationID,
			"block":         score.Block,
			"createdAt":     time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *scoreRepo) GetByApplication(ctx context.Context, applicationID string) ([]*model.SuggestedScore, error) {
	return r.find(ctx, bson.M{"applicationId": applicationID})
}

func (r *scoreRepo) GetApproved(ctx context.Context, applicationID string) ([]*model.SuggestedScore, error) {
	return r.find(ctx, bson.M{"applicationId": applicationID, "approved": true})
}

func (r *scoreRepo) find(ctx context.Context, filter bson.M) ([]*model.SuggestedScore, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []*model.SuggestedScore
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreRepo) Approve(ctx context.Context, applicationID, block, approvedBy string) error {
	filter := bson.M{"applicationId": applicationID, "block": block}
	update := bson.M{"$set": bson.M{
		"approved":   true,
		"approvedBy": approvedBy,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// DeleteSuggested removes the unapproved score suggestions for an
// application, ahead of a recalculation. Approved scores stay.
func (r *scoreRepo) DeleteSuggested(ctx context.Context, applicationID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"applicationId": applicationID, "approved": false})
	return err
}

func (r *scoreRepo) DeleteByApplication(ctx context.Context, applicationID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"applicationId": applicationID})
	return err
}
