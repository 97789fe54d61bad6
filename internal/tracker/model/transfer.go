package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Transfer struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AssetID primitive.ObjectID `json:"asset_id" bson:"asset_id"`

	FromDepartmentID primitive.ObjectID `json:"from_department_id,omitempty" bson:"from_department_id,omitempty"`
	ToDepartmentID   primitive.ObjectID `json:"to_department_id,omitempty" bson:"to_department_id,omitempty"`
	FromBranchID     primitive.ObjectID `json:"from_branch_id" bson:"from_branch_id"`
	ToBranchID       primitive.ObjectID `json:"to_branch_id" bson:"to_branch_id"`
	// ToDepartmentName keeps the legacy free-text department in sync when
	// the transfer completes.
	ToDepartmentName string `json:"to_department_name,omitempty" bson:"to_department_name,omitempty"`

	RequestedBy       string `json:"requested_by" bson:"requested_by"`
	Status            string `json:"status" bson:"status"`
	ApprovedBy        string `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ManagerApprovedBy string `json:"manager_approved_by,omitempty" bson:"manager_approved_by,omitempty"`
	RejectedBy        string `json:"rejected_by,omitempty" bson:"rejected_by,omitempty"`
	RejectionReason   string `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	Reason            string `json:"reason,omitempty" bson:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type TransferFilter struct {
	AssetID     primitive.ObjectID
	Status      string
	RequestedBy string
}
