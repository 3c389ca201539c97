package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"reviewio/internal/models"
)

type ReportRepository struct {
	Col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{Col: db.Collection("reports")}
}

func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) error {
	now := time.Now().UTC()
	rep.ID = bson.NewObjectID()
	rep.CreatedAt, rep.UpdatedAt = now, now
	_, err := r.Col.InsertOne(ctx, rep)
	return mapErr(err)
}

func (r *ReportRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Report, error) {
	var rep models.Report
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&rep); err != nil {
		return nil, mapErr(err)
	}
	return &rep, nil
}

func statusFilter(status models.ReportStatus) bson.M {
	if status == "" {
		return bson.M{}
	}
	return bson.M{"status": status}
}

func (r *ReportRepository) List(ctx context.Context, status models.ReportStatus, skip, limit int64) ([]models.Report, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.Col.Find(ctx, statusFilter(status), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Report{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReportRepository) Count(ctx context.Context, status models.ReportStatus) (int64, error) {
	return r.Col.CountDocuments(ctx, statusFilter(status))
}

func (r *ReportRepository) SetResolution(ctx context.Context, id bson.ObjectID, status models.ReportStatus, action models.ReportAction) (*models.Report, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rep models.Report
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "action": action, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&rep)
	if err != nil {
		return nil, mapErr(err)
	}
	return &rep, nil
}
