package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections bundles the handles the controllers work against. They are
// constructed once in main and passed down; no package-level state.
type Collections struct {
	Users      *mongo.Collection
	Properties *mongo.Collection
	Posts      *mongo.Collection
	Bookmarks  *mongo.Collection
}

func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

func NewCollections(client *mongo.Client, dbName string) *Collections {
	db := client.Database(dbName)
	return &Collections{
		Users:      db.Collection("users"),
		Properties: db.Collection("properties"),
		Posts:      db.Collection("posts"),
		Bookmarks:  db.Collection("bookmarks"),
	}
}

func CloseDB(ctx context.Context, client *mongo.Client) {
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error closing MongoDB connection: %v", err)
		return
	}
	log.Println("MongoDB connection closed")
}
