package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "avangrid_apm"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	appColl := db.Collection("applications")
	answerColl := db.Collection("answers")

	now := time.Now()

	apps := []model.Application{
		{
			ID:        primitive.NewObjectID().Hex(),
			Name:      "Maximo Mobile Work Orders",
			SafeName:  "Maximo Mobile Work Orders",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        primitive.NewObjectID().Hex(),
			Name:      "Legacy Outage Dispatch",
			SafeName:  "Legacy Outage Dispatch",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	// A few answered questions for the first app so an assessment has
	// something to score right after seeding
	answers := []model.ResolvedAnswer{
		{
			QuestionText:   "What is the primary business purpose of the application?",
			Block:          model.BlockStrategicFit,
			AnswerText:     "Mobile execution of maintenance work orders for field crews, integrated with the asset registry.",
			Confidence:     1,
			LastSourceRank: model.RankQuestionnaire,
			LastSource:     model.SourceQuestionnaire,
		},
		{
			QuestionText:   "Is the application expected to be used in the next 3-5 years?",
			Block:          model.BlockStrategicFit,
			AnswerText:     "Yes, it is part of the strategic mobility roadmap.",
			Confidence:     1,
			LastSourceRank: model.RankQuestionnaire,
			LastSource:     model.SourceQuestionnaire,
		},
		{
			QuestionText:   "Is the application deployed on-premises, in the cloud, or in a hybrid model?",
			Block:          model.BlockArchitecture,
			AnswerText:     "Fully cloud-based on a modern platform with automated deployments.",
			Confidence:     1,
			LastSourceRank: model.RankQuestionnaire,
			LastSource:     model.SourceQuestionnaire,
		},
	}

	for _, a := range apps {
		if _, err := appColl.InsertOne(ctx, a); err != nil {
			log.Fatalf("Failed to insert application %q: %v", a.Name, err)
		}
	}

	for _, ans := range answers {
		ans.ID = primitive.NewObjectID().Hex()
		ans.ApplicationID = apps[0].ID
		ans.UpdatedAt = now
		if _, err := answerColl.InsertOne(ctx, ans); err != nil {
			log.Fatalf("Failed to insert answer for %q: %v", ans.QuestionText, err)
		}
	}

	fmt.Printf("Seeded %d applications (%d answers for '%s')\n", len(apps), len(answers), apps[0].Name)
}
