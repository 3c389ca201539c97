package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"reviewio/internal/models"
)

// RelationshipRepository stores follow, block and category-subscription
// edges. (subject, object, type) is unique.
type RelationshipRepository struct {
	Col *mongo.Collection
}

func NewRelationshipRepository(db *mongo.Database) *RelationshipRepository {
	return &RelationshipRepository{Col: db.Collection("relationships")}
}

// Insert returns ErrDuplicate when the edge already exists.
func (r *RelationshipRepository) Insert(ctx context.Context, subject, object bson.ObjectID, typ models.RelType) error {
	_, err := r.Col.InsertOne(ctx, models.Relationship{
		ID:        bson.NewObjectID(),
		Subject:   subject,
		Object:    object,
		Type:      typ,
		CreatedAt: time.Now().UTC(),
	})
	return mapErr(err)
}

// Delete returns ErrNotFound when there was no such edge.
func (r *RelationshipRepository) Delete(ctx context.Context, subject, object bson.ObjectID, typ models.RelType) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"subject": subject, "object": object, "type": typ})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// BlockedEitherWay reports whether a blocked b or b blocked a.
func (r *RelationshipRepository) BlockedEitherWay(ctx context.Context, a, b bson.ObjectID) (bool, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{
		"type": models.RelBlock,
		"$or": bson.A{
			bson.M{"subject": a, "object": b},
			bson.M{"subject": b, "object": a},
		},
	})
	return n > 0, err
}

// Outgoing returns every edge whose subject is subject.
func (r *RelationshipRepository) Outgoing(ctx context.Context, subject bson.ObjectID) ([]models.Relationship, error) {
	cur, err := r.Col.Find(ctx, bson.M{"subject": subject})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Relationship
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subjects returns the subjects of edges of typ pointing at object.
func (r *RelationshipRepository) Subjects(ctx context.Context, object bson.ObjectID, typ models.RelType) ([]bson.ObjectID, error) {
	return r.ends(ctx, bson.M{"object": object, "type": typ}, "subject")
}

// Objects returns the objects of edges of typ leaving subject.
func (r *RelationshipRepository) Objects(ctx context.Context, subject bson.ObjectID, typ models.RelType) ([]bson.ObjectID, error) {
	return r.ends(ctx, bson.M{"subject": subject, "type": typ}, "object")
}

// Followers is the fan-out recipient list for author.
func (r *RelationshipRepository) Followers(ctx context.Context, author bson.ObjectID) ([]bson.ObjectID, error) {
	return r.Subjects(ctx, author, models.RelFollow)
}

func (r *RelationshipRepository) ends(ctx context.Context, filter bson.M, field string) ([]bson.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{field: 1})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []bson.ObjectID{}
	for cur.Next(ctx) {
		var row models.Relationship
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if field == "subject" {
			ids = append(ids, row.Subject)
		} else {
			ids = append(ids, row.Object)
		}
	}
	return ids, cur.Err()
}
