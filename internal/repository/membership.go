package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// toggleMember adds or removes member from the array field set and moves
// counter with it in one document update. The membership guard in the
// filter makes a repeated add or remove match nothing.
func toggleMember(ctx context.Context, col *mongo.Collection, filter bson.M, set, counter string, member bson.ObjectID, add bool) *mongo.SingleResult {
	f := bson.M{}
	for k, v := range filter {
		f[k] = v
	}

	var update bson.M
	if add {
		f[set] = bson.M{"$ne": member}
		update = bson.M{
			"$addToSet": bson.M{set: member},
			"$inc":      bson.M{counter: 1},
		}
	} else {
		f[set] = member
		update = bson.M{
			"$pull": bson.M{set: member},
			"$inc":  bson.M{counter: -1},
		}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return col.FindOneAndUpdate(ctx, f, update, opts)
}

// guardMiss tells apart a missing document from a guard that rejected the
// update.
func guardMiss(ctx context.Context, col *mongo.Collection, filter bson.M, err error) error {
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	n, cerr := col.CountDocuments(ctx, filter)
	if cerr != nil {
		return cerr
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrNoChange
}
