package repository

import (
	"context"
	"errors"
	"time"

	"assettrack/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrDuplicate = errors.New("duplicate record")

// Get* methods return (nil, nil) when the document does not exist; callers
// decide whether that is an error.

type AssetRepository interface {
	CreateAsset(ctx context.Context, asset *model.Asset) error
	GetAsset(ctx context.Context, id primitive.ObjectID) (*model.Asset, error)
	// FindAssets composes the caller's scope predicate with the filter.
	FindAssets(ctx context.Context, scope bson.M, filter model.AssetFilter) ([]*model.Asset, error)
	UpdateAsset(ctx context.Context, asset *model.Asset) error
	DeleteAsset(ctx context.Context, id primitive.ObjectID) error
}

type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	GetAssignment(ctx context.Context, id primitive.ObjectID) (*model.Assignment, error)
	FindAssignments(ctx context.Context, scope bson.M, filter model.AssignmentFilter) ([]*model.Assignment, error)
	// FindActiveAssignment returns the row with status in {assigned,
	// maintenance} and is_deleted=false for the asset, or nil.
	FindActiveAssignment(ctx context.Context, assetID primitive.ObjectID) (*model.Assignment, error)
	UpdateAssignment(ctx context.Context, a *model.Assignment) error
	SoftDeleteAssignment(ctx context.Context, id primitive.ObjectID, deletedBy string) error
	// FindByRecipient matches the manual assigned_to name, deleted rows excluded.
	FindByRecipient(ctx context.Context, assignedTo string) ([]*model.Assignment, error)
}

type MaintenanceRepository interface {
	CreateTicket(ctx context.Context, t *model.MaintenanceRecord) error
	GetTicket(ctx context.Context, id primitive.ObjectID) (*model.MaintenanceRecord, error)
	FindTickets(ctx context.Context, scope bson.M, filter model.TicketFilter) ([]*model.MaintenanceRecord, error)
	UpdateTicket(ctx context.Context, t *model.MaintenanceRecord) error
	// CountTicketsForDay counts tickets created on the given calendar day (UTC).
	CountTicketsForDay(ctx context.Context, day time.Time) (int64, error)
}

type TransferRepository interface {
	CreateTransfer(ctx context.Context, t *model.Transfer) error
	GetTransfer(ctx context.Context, id primitive.ObjectID) (*model.Transfer, error)
	FindTransfers(ctx context.Context, scope bson.M, filter model.TransferFilter) ([]*model.Transfer, error)
	// AdvanceTransfer is a compare-and-set write: it applies set only when
	// the transfer is still in fromStatus, and reports whether it matched.
	// This is what keeps the status chain monotonic under concurrency.
	AdvanceTransfer(ctx context.Context, id primitive.ObjectID, fromStatus string, set bson.M) (bool, error)
	// DeleteTransfer removes the transfer only while still in fromStatus.
	DeleteTransfer(ctx context.Context, id primitive.ObjectID, fromStatus string) (bool, error)
}

// LocationDirectory resolves warehouses and branches for auto-relocation and
// transfer origin resolution. A nil result is a valid, non-error outcome.
type LocationDirectory interface {
	GetLocation(ctx context.Context, id primitive.ObjectID) (*model.Location, error)
	FindWarehouse(ctx context.Context, departmentID, branchID primitive.ObjectID) (*model.Location, error)
	FindAnyWarehouse(ctx context.Context, branchID primitive.ObjectID) (*model.Location, error)
	GetBranch(ctx context.Context, id primitive.ObjectID) (*model.Branch, error)
	FindHeadOfficeBranch(ctx context.Context) (*model.Branch, error)
	FindAnyBranch(ctx context.Context) (*model.Branch, error)
	GetDepartment(ctx context.Context, id primitive.ObjectID) (*model.Department, error)
}

// AuditLogSink is append-only; the core writes and never reads.
type AuditLogSink interface {
	Record(ctx context.Context, entry *model.AuditEntry) error
}
