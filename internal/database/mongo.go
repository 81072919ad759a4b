package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoConnection connects to MongoDB and verifies the connection.
// Trips live in Mongo because the Trip aggregate is a single nested
// document mutated with field-level update operators.
func NewMongoConnection(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(dbName)

	// Share tokens are looked up without a trip id, so they need an index.
	_, err = db.Collection("trips").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "publicShare.token", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "members.userId", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create trip indexes: %w", err)
	}

	return db, nil
}
