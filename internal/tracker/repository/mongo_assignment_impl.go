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

func (r *MongoRepository) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}

	_, err := r.Assignments.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetAssignment(ctx context.Context, id primitive.ObjectID) (*model.Assignment, error) {
	var a model.Assignment
	err := r.Assignments.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) FindAssignments(ctx context.Context, scope bson.M, filter model.AssignmentFilter) ([]*model.Assignment, error) {
	extra := bson.M{}
	if !filter.AssetID.IsZero() {
		extra["asset_id"] = filter.AssetID
	}
	if !filter.UserID.IsZero() {
		extra["user_id"] = filter.UserID
	}
	if filter.AssignedTo != "" {
		extra["assigned_to"] = filter.AssignedTo
	}
	if filter.Status != "" {
		extra["status"] = filter.Status
	}
	if filter.ActiveOnly {
		extra["status"] = bson.M{"$in": model.ActiveAssignmentStatuses}
	}
	if !filter.IncludeDeleted {
		extra["is_deleted"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "assigned_date", Value: -1}})
	cursor, err := r.Assignments.Find(ctx, mergeFilter(scope, extra), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*model.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *MongoRepository) FindActiveAssignment(ctx context.Context, assetID primitive.ObjectID) (*model.Assignment, error) {
	filter := bson.M{
		"asset_id":   assetID,
		"status":     bson.M{"$in": model.ActiveAssignmentStatuses},
		"is_deleted": false,
	}
	var a model.Assignment
	err := r.Assignments.FindOne(ctx, filter).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) UpdateAssignment(ctx context.Context, a *model.Assignment) error {
	a.UpdatedAt = time.Now()
	res, err := r.Assignments.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
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

func (r *MongoRepository) SoftDeleteAssignment(ctx context.Context, id primitive.ObjectID, deletedBy string) error {
	update := bson.M{"$set": bson.M{
		"is_deleted": true,
		"updated_at": time.Now(),
		"updated_by": deletedBy,
	}}
	res, err := r.Assignments.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRepository) FindByRecipient(ctx context.Context, assignedTo string) ([]*model.Assignment, error) {
	filter := bson.M{
		"assigned_to": assignedTo,
		"is_deleted":  false,
	}
	cursor, err := r.Assignments.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*model.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}
