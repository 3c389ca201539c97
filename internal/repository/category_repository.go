package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"reviewio/internal/models"
)

type CategoryRepository struct {
	Col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{Col: db.Collection("categories")}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	c.ID = bson.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	if c.Ancestors == nil {
		c.Ancestors = []models.Ancestor{}
	}
	_, err := r.Col.InsertOne(ctx, c)
	return mapErr(err)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Category, error) {
	var c models.Category
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.Col.FindOne(ctx, bson.M{"slug": slug}).Decode(&c); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	cur, err := r.Col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ensure inserts c if no category has its slug and returns the stored one.
func (r *CategoryRepository) Ensure(ctx context.Context, c models.Category) (*models.Category, error) {
	if c.Ancestors == nil {
		c.Ancestors = []models.Ancestor{}
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	update := bson.M{"$setOnInsert": bson.M{
		"name":       c.Name,
		"ancestors":  c.Ancestors,
		"genre":      c.Genre,
		"followers":  0,
		"num_posts":  0,
		"created_at": time.Now().UTC(),
	}}

	var out models.Category
	if err := r.Col.FindOneAndUpdate(ctx, bson.M{"slug": c.Slug}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Inc adds delta to a counter field (followers or num_posts), never below zero.
func (r *CategoryRepository) Inc(ctx context.Context, id bson.ObjectID, field string, delta int64) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter[field] = bson.M{"$gte": -delta}
	}
	_, err := r.Col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{field: delta}})
	return err
}
