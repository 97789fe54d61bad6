package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MaintenanceRecord struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	// TicketNumber is MT-YYYYMMDD-NNN, unique per calendar day.
	TicketNumber string             `json:"ticket_number" bson:"ticket_number"`
	AssetID      primitive.ObjectID `json:"asset_id" bson:"asset_id"`
	RequestedBy  string             `json:"requested_by" bson:"requested_by"`
	Technician   string             `json:"technician,omitempty" bson:"technician,omitempty"`
	Type         string             `json:"type,omitempty" bson:"type,omitempty"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Status       string             `json:"status" bson:"status"`

	AssignedDepartment primitive.ObjectID `json:"assigned_department,omitempty" bson:"assigned_department,omitempty"`
	BranchID           primitive.ObjectID `json:"branch_id,omitempty" bson:"branch_id,omitempty"`

	History      []TicketHistoryEntry `json:"history" bson:"history"`
	Notes        []TicketNote         `json:"notes,omitempty" bson:"notes,omitempty"`
	SuppliesUsed []SupplyUsage        `json:"supplies_used,omitempty" bson:"supplies_used,omitempty"`
	// AfterPhotos holds object keys of photos taken after the work; the
	// upload itself happens elsewhere.
	AfterPhotos []string `json:"after_photos,omitempty" bson:"after_photos,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// TicketHistoryEntry is the audit trail of record for tickets. Every status
// transition must append one.
type TicketHistoryEntry struct {
	Status    string    `json:"status" bson:"status"`
	Actor     string    `json:"actor" bson:"actor"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
}

type TicketNote struct {
	Author    string    `json:"author" bson:"author"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type SupplyUsage struct {
	Name     string `json:"name" bson:"name"`
	Quantity int    `json:"quantity" bson:"quantity"`
	Unit     string `json:"unit,omitempty" bson:"unit,omitempty"`
}

type TicketFilter struct {
	AssetID     primitive.ObjectID
	Status      string
	Technician  string
	RequestedBy string
}
