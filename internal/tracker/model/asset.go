package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Asset struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Serial       string             `json:"serial" bson:"serial"`
	DepartmentID primitive.ObjectID `json:"department_id,omitempty" bson:"department_id,omitempty"`
	// Department mirrors the department name for legacy accounts that
	// match on the free-text field instead of the id.
	Department    string              `json:"department,omitempty" bson:"department,omitempty"`
	BranchID      primitive.ObjectID  `json:"branch_id,omitempty" bson:"branch_id,omitempty"`
	LocationID    primitive.ObjectID  `json:"location_id,omitempty" bson:"location_id,omitempty"`
	ParentAssetID *primitive.ObjectID `json:"parent_asset_id,omitempty" bson:"parent_asset_id,omitempty"`
	Status        string              `json:"status" bson:"status"`
	ActivityLog   []ActivityLogEntry  `json:"activity_log,omitempty" bson:"activity_log,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

// ActivityLogEntry is one append-only row in an asset's activity log.
type ActivityLogEntry struct {
	ID          string    `json:"id" bson:"id"`
	Action      string    `json:"action" bson:"action"`
	Details     string    `json:"details,omitempty" bson:"details,omitempty"`
	PerformedBy string    `json:"performed_by" bson:"performed_by"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

type AssetFilter struct {
	Status     string
	LocationID primitive.ObjectID
	ParentID   *primitive.ObjectID
	Serial     string
}
