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

func (r *MongoRepository) CreateAsset(ctx context.Context, asset *model.Asset) error {
	now := time.Now()
	asset.CreatedAt = now
	asset.UpdatedAt = now
	if asset.ID.IsZero() {
		asset.ID = primitive.NewObjectID()
	}

	_, err := r.Assets.InsertOne(ctx, asset)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetAsset(ctx context.Context, id primitive.ObjectID) (*model.Asset, error) {
	var asset model.Asset
	err := r.Assets.FindOne(ctx, bson.M{"_id": id}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (r *MongoRepository) FindAssets(ctx context.Context, scope bson.M, filter model.AssetFilter) ([]*model.Asset, error) {
	extra := bson.M{}
	if filter.Status != "" {
		extra["status"] = filter.Status
	}
	if !filter.LocationID.IsZero() {
		extra["location_id"] = filter.LocationID
	}
	if filter.ParentID != nil {
		extra["parent_asset_id"] = *filter.ParentID
	}
	if filter.Serial != "" {
		extra["serial"] = filter.Serial
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Assets.Find(ctx, mergeFilter(scope, extra), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []*model.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *MongoRepository) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	asset.UpdatedAt = time.Now()
	res, err := r.Assets.ReplaceOne(ctx, bson.M{"_id": asset.ID}, asset)
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

func (r *MongoRepository) DeleteAsset(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Assets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
