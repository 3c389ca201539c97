package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"reviewio/internal/models"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.ID = bson.NewObjectID()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := r.Col.InsertOne(ctx, u)
	return mapErr(err)
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// UsersByIDs returns the users found among ids, keyed by ID.
func (r *UserRepository) UsersByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*models.User, error) {
	out := make(map[bson.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

// ListByIDs returns a page of the given users, newest accounts first.
func (r *UserRepository) ListByIDs(ctx context.Context, ids []bson.ObjectID, skip, limit int64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies set and returns the updated user.
func (r *UserRepository) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.User, error) {
	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u models.User
	err := r.Col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// Ban deactivates the account until until. Closed accounts (inactive with
// no ban) are not matched, so an expired ban can never reopen them.
func (r *UserRepository) Ban(ctx context.Context, id bson.ObjectID, until time.Time) (*models.User, error) {
	filter := bson.M{"_id": id, "$or": bson.A{
		bson.M{"active": true},
		bson.M{"ban_expires": bson.M{"$ne": nil}},
	}}
	update := bson.M{"$set": bson.M{"active": false, "ban_expires": until, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u models.User
	if err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// Close deactivates the account for good and drops any pending ban.
func (r *UserRepository) Close(ctx context.Context, id bson.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"active": false, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"ban_expires": ""},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Reactivate clears an expired ban.
func (r *UserRepository) Reactivate(ctx context.Context, id bson.ObjectID) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"active": true, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"ban_expires": ""},
		},
	)
	return err
}

// IncCounter adds delta to one of the follower counters, never below zero.
func (r *UserRepository) IncCounter(ctx context.Context, id bson.ObjectID, field string, delta int64) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter[field] = bson.M{"$gte": -delta}
	}
	_, err := r.Col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{field: delta}})
	return err
}
