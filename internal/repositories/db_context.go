package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection    = "users"
	postingsCollection = "postings"
)

type DbContext struct {
	client *mongo.Client
	DB     *mongo.Database
}

func NewDbContext(connectionString string, database string) (*DbContext, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DbContext{client: client, DB: client.Database(database)}, nil
}

// Migrate creates the indexes the stores rely on: unique email on
// users, unique slug on postings, and the text index backing search.
// Uniqueness must live here so concurrent writes surface as duplicate
// key errors instead of silent overwrites.
func (c *DbContext) Migrate(ctx context.Context) error {

	users := c.DB.Collection(usersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	postings := c.DB.Collection(postingsCollection)
	_, err = postings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create slug index: %w", err)
	}

	_, err = postings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create text index: %w", err)
	}

	return nil
}

func (c *DbContext) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
