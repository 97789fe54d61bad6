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

func (r *MongoRepository) CreateTransfer(ctx context.Context, t *model.Transfer) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}

	_, err := r.Transfers.InsertOne(ctx, t)
	return err
}

func (r *MongoRepository) GetTransfer(ctx context.Context, id primitive.ObjectID) (*model.Transfer, error) {
	var t model.Transfer
	err := r.Transfers.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoRepository) FindTransfers(ctx context.Context, scope bson.M, filter model.TransferFilter) ([]*model.Transfer, error) {
	extra := bson.M{}
	if !filter.AssetID.IsZero() {
		extra["asset_id"] = filter.AssetID
	}
	if filter.Status != "" {
		extra["status"] = filter.Status
	}
	if filter.RequestedBy != "" {
		extra["requested_by"] = filter.RequestedBy
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Transfers.Find(ctx, mergeFilter(scope, extra), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transfers []*model.Transfer
	if err := cursor.All(ctx, &transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

// AdvanceTransfer only matches while the document still holds fromStatus, so
// a concurrent transition on the same transfer loses cleanly instead of
// double-applying.
func (r *MongoRepository) AdvanceTransfer(ctx context.Context, id primitive.ObjectID, fromStatus string, set bson.M) (bool, error) {
	set["updated_at"] = time.Now()
	res, err := r.Transfers.UpdateOne(ctx,
		bson.M{"_id": id, "status": fromStatus},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) DeleteTransfer(ctx context.Context, id primitive.ObjectID, fromStatus string) (bool, error) {
	res, err := r.Transfers.DeleteOne(ctx, bson.M{"_id": id, "status": fromStatus})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
