package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/repository"
	"assettrack/internal/tracker/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error taxonomy. Services wrap these with %w plus a message naming the
// violated invariant; handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrSystemConfig = errors.New("system configuration error")
)

// TrackerService is the full operation surface consumed by the transport
// layer; *Service implements it.
type TrackerService interface {
	CreateAsset(ctx context.Context, actor *model.Actor, req *model.CreateAssetReq) (*model.Asset, error)
	GetAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Asset, error)
	ListAssets(ctx context.Context, actor *model.Actor, explicitBranch primitive.ObjectID, filter model.AssetFilter) ([]*model.Asset, error)
	UpdateAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.UpdateAssetReq) (*model.Asset, error)
	DeleteAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID) error
	InstallAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.InstallAssetReq) (*model.Asset, error)
	DismantleAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Asset, error)

	CreateAssignment(ctx context.Context, actor *model.Actor, req *model.CreateAssignmentReq) (*model.Assignment, error)
	ReturnAssignment(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.ReturnAssignmentReq) (*model.Assignment, error)
	ListAssignments(ctx context.Context, actor *model.Actor, explicitBranch primitive.ObjectID, filter model.AssignmentFilter) ([]*model.Assignment, error)
	DeleteAssignment(ctx context.Context, actor *model.Actor, id primitive.ObjectID) error
	BulkUpdateRecipient(ctx context.Context, actor *model.Actor, req *model.BulkUpdateRecipientReq) (*model.BulkResult, error)
	BulkDeleteRecipient(ctx context.Context, actor *model.Actor, req *model.BulkDeleteRecipientReq) (*model.BulkResult, error)

	CreateTicket(ctx context.Context, actor *model.Actor, req *model.CreateTicketReq) (*model.MaintenanceRecord, error)
	GetTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.MaintenanceRecord, error)
	ListTickets(ctx context.Context, actor *model.Actor, explicitBranch primitive.ObjectID, filter model.TicketFilter) ([]*model.MaintenanceRecord, error)
	AcceptTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.AcceptTicketReq) (*model.MaintenanceRecord, error)
	RejectTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.RejectTicketReq) (*model.MaintenanceRecord, error)
	StartTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.MaintenanceRecord, error)
	UpdateWork(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.UpdateWorkReq) (*model.MaintenanceRecord, error)
	AddTicketNote(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.AddNoteReq) (*model.MaintenanceRecord, error)
	CloseTicket(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.MaintenanceRecord, error)

	CreateTransfer(ctx context.Context, actor *model.Actor, req *model.CreateTransferReq) (*model.Transfer, error)
	GetTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Transfer, error)
	ListTransfers(ctx context.Context, actor *model.Actor, explicitBranch primitive.ObjectID, filter model.TransferFilter) ([]*model.Transfer, error)
	SendTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Transfer, error)
	ManagerApproveTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Transfer, error)
	AcceptTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Transfer, error)
	RejectTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.RejectTransferReq) (*model.Transfer, error)
	UpdateTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.UpdateTransferReq) (*model.Transfer, error)
	DeleteTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) error
}

// Store is everything the workflows need from the document store.
// *repository.MongoRepository satisfies it.
type Store interface {
	repository.AssetRepository
	repository.AssignmentRepository
	repository.MaintenanceRepository
	repository.TransferRepository
	repository.LocationDirectory
}

type Service struct {
	Store  Store
	Audit  repository.AuditLogSink
	logger *slog.Logger
}

func NewService(store Store, audit repository.AuditLogSink) *Service {
	return &Service{
		Store:  store,
		Audit:  audit,
		logger: util.GetLogger(),
	}
}

// audit is fire-and-forget: a failed audit write is logged and swallowed,
// never surfaced as the primary operation's error.
func (s *Service) audit(ctx context.Context, actor *model.Actor, action, resourceType string, resourceID primitive.ObjectID, resourceName, details string, branchID, departmentID primitive.ObjectID) {
	entry := &model.AuditEntry{
		UserID:       actor.ID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID.Hex(),
		ResourceName: resourceName,
		Details:      details,
		BranchID:     branchID,
		DepartmentID: departmentID,
	}
	if err := s.Audit.Record(ctx, entry); err != nil {
		s.logger.Warn("audit record failed",
			"action", action,
			"resource_type", resourceType,
			"resource_id", entry.ResourceID,
			"error", err,
		)
	}
}

func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrValidation, hex)
	}
	return id, nil
}

func parseOptionalID(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, nil
	}
	return parseID(hex)
}

func isAdminRole(role string) bool {
	switch role {
	case model.RoleSuperuser, model.RoleSystemAdmin, model.RoleAdmin:
		return true
	}
	return false
}

func isManagerialRole(role string) bool {
	if isAdminRole(role) {
		return true
	}
	switch role {
	case model.RoleManager, model.RoleSupervisor, model.RoleDeptAdmin:
		return true
	}
	return false
}
