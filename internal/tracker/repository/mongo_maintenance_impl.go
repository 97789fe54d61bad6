package repository

import (
	"context"
	"time"

	"assettrack/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) CreateTicket(ctx context.Context, t *model.MaintenanceRecord) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}

	_, err := r.Maintenance.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetTicket(ctx context.Context, id primitive.ObjectID) (*model.MaintenanceRecord, error) {
	var t model.MaintenanceRecord
	err := r.Maintenance.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoRepository) FindTickets(ctx context.Context, scope bson.M, filter model.TicketFilter) ([]*model.MaintenanceRecord, error) {
	extra := bson.M{}
	if !filter.AssetID.IsZero() {
		extra["asset_id"] = filter.AssetID
	}
	if filter.Status != "" {
		extra["status"] = filter.Status
	}
	if filter.Technician != "" {
		extra["technician"] = filter.Technician
	}
	if filter.RequestedBy != "" {
		extra["requested_by"] = filter.RequestedBy
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Maintenance.Find(ctx, mergeFilter(scope, extra), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*model.MaintenanceRecord
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *MongoRepository) UpdateTicket(ctx context.Context, t *model.MaintenanceRecord) error {
	t.UpdatedAt = time.Now()
	res, err := r.Maintenance.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRepository) CountTicketsForDay(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	return r.Maintenance.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": start, "$lt": end},
	})
}
