// Command seed loads the built-in learning-path catalog into MongoDB.
// Run it once against a fresh database, or any time to refresh the
// default entries.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnloop/internal/repository"
	"learnloop/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "learnloop"
	}

	pathRepo := repository.NewPathRepo(client.Database(dbName))
	pathSvc := service.NewPathService(pathRepo)

	if err := pathSvc.SeedCatalog(ctx); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("Seed complete")
}
