package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"reviewio/internal/models"
)

// CommentRepository stores comments in their own collection, keyed by post.
// Comments are hard-deleted.
type CommentRepository struct {
	Col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{Col: db.Collection("comments")}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	now := time.Now().UTC()
	c.ID = bson.NewObjectID()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Likes == nil {
		c.Likes = []bson.ObjectID{}
	}
	_, err := r.Col.InsertOne(ctx, c)
	return mapErr(err)
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

// ListByPost returns a post's comments oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, post bson.ObjectID) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"post": post})
}

// ListByPosts groups the comments of several posts by post ID.
func (r *CommentRepository) ListByPosts(ctx context.Context, posts []bson.ObjectID) (map[bson.ObjectID][]models.Comment, error) {
	out := make(map[bson.ObjectID][]models.Comment, len(posts))
	if len(posts) == 0 {
		return out, nil
	}
	all, err := r.find(ctx, bson.M{"post": bson.M{"$in": posts}})
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		out[c.Post] = append(out[c.Post], c)
	}
	return out, nil
}

func (r *CommentRepository) find(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommentRepository) AddLike(ctx context.Context, id, user bson.ObjectID) (*models.Comment, error) {
	return r.toggle(ctx, id, user, true)
}

func (r *CommentRepository) RemoveLike(ctx context.Context, id, user bson.ObjectID) (*models.Comment, error) {
	return r.toggle(ctx, id, user, false)
}

func (r *CommentRepository) toggle(ctx context.Context, id, user bson.ObjectID, add bool) (*models.Comment, error) {
	var c models.Comment
	err := toggleMember(ctx, r.Col, bson.M{"_id": id}, "likes", "like_count", user, add).Decode(&c)
	if err == nil {
		return &c, nil
	}
	return nil, guardMiss(ctx, r.Col, bson.M{"_id": id}, err)
}
