package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Assignment struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AssetID primitive.ObjectID `json:"asset_id" bson:"asset_id"`
	// Exactly one of UserID / AssignedTo is meaningfully present.
	// AssignedTo carries a manual recipient name for people without accounts.
	UserID     *primitive.ObjectID `json:"user_id,omitempty" bson:"user_id,omitempty"`
	AssignedTo string              `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	Status     string              `json:"status" bson:"status"`
	IsDeleted  bool                `json:"is_deleted" bson:"is_deleted"`
	LocationID primitive.ObjectID  `json:"location_id,omitempty" bson:"location_id,omitempty"`

	// Denormalized for scope filtering.
	BranchID     primitive.ObjectID `json:"branch_id,omitempty" bson:"branch_id,omitempty"`
	DepartmentID primitive.ObjectID `json:"department_id,omitempty" bson:"department_id,omitempty"`
	Department   string             `json:"department,omitempty" bson:"department,omitempty"`

	AssignedDate time.Time  `json:"assigned_date" bson:"assigned_date"`
	ReturnedDate *time.Time `json:"returned_date,omitempty" bson:"returned_date,omitempty"`
	Notes        string     `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

type AssignmentFilter struct {
	AssetID    primitive.ObjectID
	UserID     primitive.ObjectID
	AssignedTo string
	Status     string
	// ActiveOnly restricts to status in {assigned, maintenance}, is_deleted=false.
	ActiveOnly     bool
	IncludeDeleted bool
}

// BulkResult reports the outcome of a fire-and-collect bulk operation.
// Rows are written independently; failures are reported, not rolled back.
type BulkResult struct {
	Matched int `json:"matched"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}
