package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

func indexes() []indexSpec {
	return []indexSpec{
		{"users", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		}},
		{"users", mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		}},
		{"relationships", mongo.IndexModel{
			Keys: bson.D{
				{Key: "subject", Value: 1},
				{Key: "object", Value: 1},
				{Key: "type", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_subject_object_type"),
		}},
		{"relationships", mongo.IndexModel{
			Keys:    bson.D{{Key: "object", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetName("object_type"),
		}},
		{"categories", mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_slug"),
		}},
		{"posts", mongo.IndexModel{
			Keys:    bson.D{{Key: "active", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("active_created"),
		}},
		{"posts", mongo.IndexModel{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created"),
		}},
		{"posts", mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("category_created"),
		}},
		{"comments", mongo.IndexModel{
			Keys:    bson.D{{Key: "post", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("post_created"),
		}},
		{"notifications", mongo.IndexModel{
			Keys:    bson.D{{Key: "user_to", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_to_created"),
		}},
		{"reports", mongo.IndexModel{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("status_created"),
		}},
	}
}

// EnsureIndexes creates the unique constraints the services rely on
// (one edge per relationship, one account per email) and the feed indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ix := range indexes() {
		if _, err := db.Collection(ix.collection).Indexes().CreateOne(ctx, ix.model); err != nil {
			return fmt.Errorf("index on %s: %w", ix.collection, err)
		}
	}
	return nil
}
