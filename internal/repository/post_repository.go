package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"reviewio/internal/accessctx"
	"reviewio/internal/models"
)

type PostRepository struct {
	Col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{Col: db.Collection("posts")}
}

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	now := time.Now().UTC()
	p.ID = bson.NewObjectID()
	p.Active = true
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Likes == nil {
		p.Likes = []bson.ObjectID{}
	}
	if p.Saves == nil {
		p.Saves = []bson.ObjectID{}
	}
	_, err := r.Col.InsertOne(ctx, p)
	return mapErr(err)
}

// FindByID returns active posts only.
func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.Col.FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// FindAuthors runs c unpaginated and returns the author of every match.
// Only the author field is fetched.
func (r *PostRepository) FindAuthors(ctx context.Context, c accessctx.Criteria) ([]bson.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"user": 1})
	cur, err := r.Col.Find(ctx, c.Filter(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	authors := []bson.ObjectID{}
	for cur.Next(ctx) {
		var row struct {
			User bson.ObjectID `bson:"user"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		authors = append(authors, row.User)
	}
	return authors, cur.Err()
}

// FindPage runs c newest first. created_at ties fall back to _id, newest
// first, so pages never overlap.
func (r *PostRepository) FindPage(ctx context.Context, c accessctx.Criteria, skip, limit int64) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.Col.Find(ctx, c.Filter(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update sets fields on an active post and returns it.
func (r *PostRepository) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Post, error) {
	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	err := r.Col.FindOneAndUpdate(ctx, bson.M{"_id": id, "active": true}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// SoftDelete marks the post inactive; it stays in the collection.
func (r *PostRepository) SoftDelete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) AddLike(ctx context.Context, id, user bson.ObjectID) (*models.Post, error) {
	return r.toggle(ctx, id, user, "likes", "like_count", true)
}

func (r *PostRepository) RemoveLike(ctx context.Context, id, user bson.ObjectID) (*models.Post, error) {
	return r.toggle(ctx, id, user, "likes", "like_count", false)
}

func (r *PostRepository) AddSave(ctx context.Context, id, user bson.ObjectID) (*models.Post, error) {
	return r.toggle(ctx, id, user, "saves", "save_count", true)
}

func (r *PostRepository) RemoveSave(ctx context.Context, id, user bson.ObjectID) (*models.Post, error) {
	return r.toggle(ctx, id, user, "saves", "save_count", false)
}

func (r *PostRepository) toggle(ctx context.Context, id, user bson.ObjectID, set, counter string, add bool) (*models.Post, error) {
	var p models.Post
	err := toggleMember(ctx, r.Col, bson.M{"_id": id, "active": true}, set, counter, user, add).Decode(&p)
	if err == nil {
		return &p, nil
	}
	return nil, guardMiss(ctx, r.Col, bson.M{"_id": id, "active": true}, err)
}
