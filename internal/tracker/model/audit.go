package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEntry is one append-only row in the audit log. The core only ever
// writes these; it never reads them back.
type AuditEntry struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       string             `json:"user_id" bson:"user_id"`
	Action       string             `json:"action" bson:"action"`
	ResourceType string             `json:"resource_type" bson:"resource_type"`
	ResourceID   string             `json:"resource_id" bson:"resource_id"`
	ResourceName string             `json:"resource_name,omitempty" bson:"resource_name,omitempty"`
	Details      string             `json:"details,omitempty" bson:"details,omitempty"`
	BranchID     primitive.ObjectID `json:"branch_id,omitempty" bson:"branch_id,omitempty"`
	DepartmentID primitive.ObjectID `json:"department_id,omitempty" bson:"department_id,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
