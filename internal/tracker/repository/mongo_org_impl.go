package repository

import (
	"context"

	"assettrack/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoRepository) GetLocation(ctx context.Context, id primitive.ObjectID) (*model.Location, error) {
	var loc model.Location
	err := r.Locations.FindOne(ctx, bson.M{"_id": id}).Decode(&loc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *MongoRepository) FindWarehouse(ctx context.Context, departmentID, branchID primitive.ObjectID) (*model.Location, error) {
	filter := bson.M{
		"department_id": departmentID,
		"branch_id":     branchID,
		"is_warehouse":  true,
	}
	var loc model.Location
	err := r.Locations.FindOne(ctx, filter).Decode(&loc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *MongoRepository) FindAnyWarehouse(ctx context.Context, branchID primitive.ObjectID) (*model.Location, error) {
	filter := bson.M{
		"branch_id":    branchID,
		"is_warehouse": true,
	}
	var loc model.Location
	err := r.Locations.FindOne(ctx, filter).Decode(&loc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *MongoRepository) GetBranch(ctx context.Context, id primitive.ObjectID) (*model.Branch, error) {
	var b model.Branch
	err := r.Branches.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoRepository) FindHeadOfficeBranch(ctx context.Context) (*model.Branch, error) {
	var b model.Branch
	err := r.Branches.FindOne(ctx, bson.M{"is_head_office": true}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoRepository) FindAnyBranch(ctx context.Context) (*model.Branch, error) {
	var b model.Branch
	err := r.Branches.FindOne(ctx, bson.M{}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoRepository) GetDepartment(ctx context.Context, id primitive.ObjectID) (*model.Department, error) {
	var d model.Department
	err := r.Departments.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
