package repository

import (
	"context"

	"assettrack/internal/tracker/config"
	"assettrack/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	Assets      *mongo.Collection
	Assignments *mongo.Collection
	Maintenance *mongo.Collection
	Transfers   *mongo.Collection
	Branches    *mongo.Collection
	Departments *mongo.Collection
	Locations   *mongo.Collection
	AuditLogs   *mongo.Collection
	Client      *mongo.Client
}

func NewMongoRepository(db *mongo.Database, cfg *config.Config) *MongoRepository {
	return &MongoRepository{
		Assets:      db.Collection(cfg.AssetsCollection),
		Assignments: db.Collection(cfg.AssignmentsCollection),
		Maintenance: db.Collection(cfg.MaintenanceCollection),
		Transfers:   db.Collection(cfg.TransfersCollection),
		Branches:    db.Collection(cfg.BranchesCollection),
		Departments: db.Collection(cfg.DepartmentsCollection),
		Locations:   db.Collection(cfg.LocationsCollection),
		AuditLogs:   db.Collection(cfg.AuditLogsCollection),
		Client:      db.Client(),
	}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	// 1. Asset serial: globally unique
	idxAssetSerial := mongo.IndexModel{
		Keys:    bson.D{{Key: "serial", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_asset_serial"),
	}
	if _, err := r.Assets.Indexes().CreateOne(ctx, idxAssetSerial); err != nil {
		return err
	}

	// 2. One active assignment per asset: unique on asset_id where the row
	// still counts as in-use. One index per active status because partial
	// filters only accept $in on MongoDB 6.0+. Store-level backstop for the
	// invariant the service also checks.
	activeAssignmentIdx := make([]mongo.IndexModel, 0, len(model.ActiveAssignmentStatuses))
	for _, status := range model.ActiveAssignmentStatuses {
		activeAssignmentIdx = append(activeAssignmentIdx, mongo.IndexModel{
			Keys: bson.D{{Key: "asset_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_"+status+"_assignment_per_asset").
				SetPartialFilterExpression(bson.M{
					"status":     status,
					"is_deleted": false,
				}),
		})
	}
	if _, err := r.Assignments.Indexes().CreateMany(ctx, activeAssignmentIdx); err != nil {
		return err
	}

	// 3. Ticket number: unique. The day-scoped sequence relies on this to
	// detect generation races.
	idxTicketNumber := mongo.IndexModel{
		Keys:    bson.D{{Key: "ticket_number", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_ticket_number"),
	}
	if _, err := r.Maintenance.Indexes().CreateOne(ctx, idxTicketNumber); err != nil {
		return err
	}

	// 4. Branch name and code: unique
	idxBranchName := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_branch_name"),
	}
	idxBranchCode := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_branch_code"),
	}
	if _, err := r.Branches.Indexes().CreateMany(ctx, []mongo.IndexModel{idxBranchName, idxBranchCode}); err != nil {
		return err
	}

	// 5. Scope query support
	idxAssetScope := mongo.IndexModel{
		Keys: bson.D{{Key: "branch_id", Value: 1}, {Key: "department_id", Value: 1}},
		Options: options.Index().SetName("idx_asset_scope"),
	}
	if _, err := r.Assets.Indexes().CreateOne(ctx, idxAssetScope); err != nil {
		return err
	}
	idxTransferScope := mongo.IndexModel{
		Keys: bson.D{{Key: "from_branch_id", Value: 1}, {Key: "to_branch_id", Value: 1}},
		Options: options.Index().SetName("idx_transfer_scope"),
	}
	_, err := r.Transfers.Indexes().CreateOne(ctx, idxTransferScope)
	return err
}

// mergeFilter overlays extra conditions on a scope predicate without
// mutating either input.
func mergeFilter(scope bson.M, extra bson.M) bson.M {
	out := bson.M{}
	for k, v := range scope {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
