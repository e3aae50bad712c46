package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// AnswerRepo handles MongoDB operations for resolved answers. One
// document per (application, canonical question) pair.
type AnswerRepo interface {
	Upsert(ctx context.Context, answer *model.ResolvedAnswer) error
	GetByApplication(ctx context.Context, applicationID string) ([]*model.ResolvedAnswer, error)
	DeleteByApplication(ctx context.Context, applicationID string) error
}

type answerRepo struct {
	collection *mongo.Collection
}

// NewAnswerRepo creates a new resolved-answer repository
func NewAnswerRepo(db *mongo.Database) AnswerRepo {
	return &answerRepo{
		collection: db.Collection("answers"),
	}
}

func (r *answerRepo) Upsert(ctx context.Context, answer *model.ResolvedAnswer) error {
	answer.UpdatedAt = time.Now()

	filter := bson.M{
		"applicationId": answer.ApplicationID,
		"questionText":  answer.QuestionText,
	}
	update := bson.M{"$set": bson.M{
		"applicationId":  answer.ApplicationID,
		"questionText":   answer.QuestionText,
		"block":          answer.Block,
		"answerText":     answer.AnswerText,
		"numericScore":   answer.NumericScore,
		"confidence":     answer.Confidence,
		"lastSourceRank": answer.LastSourceRank,
		"lastSource":     answer.LastSource,
		"updatedAt":      answer.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *answerRepo) GetByApplication(ctx context.Context, applicationID string) ([]*model.ResolvedAnswer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"applicationId": applicationID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []*model.ResolvedAnswer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) DeleteByApplication(ctx context.Context, applicationID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"applicationId": applicationID})
	return err
}
