package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"reviewio/internal/models"
)

type NotificationRepository struct {
	Col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{Col: db.Collection("notifications")}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := r.Col.InsertOne(ctx, n)
	return err
}

// InsertMany writes docs in one unordered bulk write so one bad document
// does not stop the rest. It returns the indexes of the documents that were
// not written. A non-nil error means the batch as a whole failed.
func (r *NotificationRepository) InsertMany(ctx context.Context, docs []models.Notification) ([]int, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	writes := make([]mongo.WriteModel, 0, len(docs))
	for i := range docs {
		if docs[i].ID.IsZero() {
			docs[i].ID = bson.NewObjectID()
		}
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(docs[i]))
	}

	_, err := r.Col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err == nil {
		return nil, nil
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && bwe.WriteConcernError == nil && len(bwe.WriteErrors) > 0 {
		failed := make([]int, 0, len(bwe.WriteErrors))
		for _, we := range bwe.WriteErrors {
			failed = append(failed, we.Index)
		}
		return failed, nil
	}
	return nil, err
}

// DeleteMatching removes the notification an action created, for when the
// action is undone.
func (r *NotificationRepository) DeleteMatching(ctx context.Context, from, to bson.ObjectID, typ models.NotiType, primary models.Ref) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{
		"user_from":  from,
		"user_to":    to,
		"type":       typ,
		"primary.id": primary.ID,
	})
	return err
}

// DeleteByRef removes every notification that references ref in either slot.
func (r *NotificationRepository) DeleteByRef(ctx context.Context, ref models.Ref) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"primary.id": ref.ID},
		bson.M{"secondary.id": ref.ID},
	}})
	return err
}

func (r *NotificationRepository) ListForUser(ctx context.Context, user bson.ObjectID, skip, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.Col.Find(ctx, bson.M{"user_to": user}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepository) CountForUser(ctx context.Context, user bson.ObjectID) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"user_to": user})
}

func (r *NotificationRepository) CountUnopened(ctx context.Context, user bson.ObjectID) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"user_to": user, "opened": false})
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, user bson.ObjectID) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Notification
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_to": user},
		bson.M{"$set": bson.M{"read": true, "opened": true}},
		opts,
	).Decode(&n)
	if err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func (r *NotificationRepository) MarkAllOpened(ctx context.Context, user bson.ObjectID) (int64, error) {
	res, err := r.Col.UpdateMany(ctx,
		bson.M{"user_to": user, "opened": false},
		bson.M{"$set": bson.M{"opened": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, user bson.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id, "user_to": user})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
