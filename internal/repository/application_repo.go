package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

// ApplicationRepo handles MongoDB operations for portfolio applications
type ApplicationRepo interface {
	Create(ctx context.Context, app *model.Application) (string, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	GetByName(ctx context.Context, name string) (*model.Application, error)
	List(ctx context.Context) ([]*model.Application, error)
	Update(ctx context.Context, app *model.Application) error
	Delete(ctx context.Context, id string) error
}

type applicationRepo struct {
	collection *mongo.Collection
}

// NewApplicationRepo creates a new application repository
func NewApplicationRepo(db *mongo.Database) ApplicationRepo {
	return &applicationRepo{
		collection: db.Collection("applications"),
	}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) (string, error) {
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, app)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	app.ID = oid.Hex()
	return app.ID, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var app model.Application
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	app.ID = id
	return &app, nil
}

func (r *applicationRepo) GetByName(ctx context.Context, name string) (*model.Application, error) {
	var app model.Application
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context) ([]*model.Application, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var apps []*model.Application
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *model.Application) error {
	oid, err := primitive.ObjectIDFromHex(app.ID)
	if err != nil {
		return err
	}

	app.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        app.Name,
		"safeName":    app.SafeName,
		"confirmed":   app.Confirmed,
		"subcategory": app.Subcategory,
		"quickWin":    app.QuickWin,
		"updatedAt":   app.UpdatedAt,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
