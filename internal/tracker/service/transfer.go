package service

import (
	"context"
	"fmt"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/policy"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transfer chain:
//
//	Pending -> WaitingApproval -> InTransit -> Completed
//	Pending/WaitingApproval    -> Rejected
//
// Each stage validates the actor against a specific side: the origin
// department's manager approves, the destination department completes or
// rejects. Transitions are compare-and-set writes, so the chain only ever
// moves forward; a Completed or Rejected transfer is immutable.

// CreateTransfer opens a transfer request. With no target branch given the
// transfer stays inside the origin branch.
func (s *Service) CreateTransfer(ctx context.Context, actor *model.Actor, req *model.CreateTransferReq) (*model.Transfer, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	assetID, err := parseID(req.AssetID)
	if err != nil {
		return nil, err
	}
	asset, err := s.Store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %s", ErrNotFound, assetID.Hex())
	}

	fromBranch, err := s.resolveOriginBranch(ctx, actor, asset)
	if err != nil {
		return nil, err
	}

	if !model.PrivilegedAssignRoles[actor.Role] {
		if !actor.OwnsDepartment(asset.DepartmentID, asset.Department) {
			return nil, fmt.Errorf("%w: asset belongs to another department", ErrForbidden)
		}
		if !actor.BranchID.IsZero() && actor.BranchID != fromBranch {
			return nil, fmt.Errorf("%w: asset belongs to another branch", ErrForbidden)
		}
	}

	toBranch, err := parseOptionalID(req.ToBranchID)
	if err != nil {
		return nil, err
	}
	if toBranch.IsZero() {
		toBranch = fromBranch
	}
	toDept, err := parseOptionalID(req.ToDepartmentID)
	if err != nil {
		return nil, err
	}

	transfer := &model.Transfer{
		AssetID:          assetID,
		FromDepartmentID: asset.DepartmentID,
		ToDepartmentID:   toDept,
		FromBranchID:     fromBranch,
		ToBranchID:       toBranch,
		RequestedBy:      actor.ID,
		Status:           model.TransferStatusPending,
		Reason:           req.Reason,
	}
	if !toDept.IsZero() {
		if dept, err := s.Store.GetDepartment(ctx, toDept); err == nil && dept != nil {
			transfer.ToDepartmentName = dept.Name
		}
	}

	if err := s.Store.CreateTransfer(ctx, transfer); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionCreate, model.ResourceTransfer, transfer.ID, asset.Name, req.Reason, fromBranch, asset.DepartmentID)
	return transfer, nil
}

// resolveOriginBranch walks the fallback chain: asset branch, actor branch,
// head office, any branch at all. A deployment with no branches is broken
// beyond what a request can fix.
func (s *Service) resolveOriginBranch(ctx context.Context, actor *model.Actor, asset *model.Asset) (primitive.ObjectID, error) {
	if !asset.BranchID.IsZero() {
		return asset.BranchID, nil
	}
	if !actor.BranchID.IsZero() {
		return actor.BranchID, nil
	}
	branch, err := s.Store.FindHeadOfficeBranch(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if branch == nil {
		branch, err = s.Store.FindAnyBranch(ctx)
		if err != nil {
			return primitive.NilObjectID, err
		}
	}
	if branch == nil {
		return primitive.NilObjectID, fmt.Errorf("%w: no branch is configured", ErrSystemConfig)
	}
	return branch.ID, nil
}

func (s *Service) GetTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Transfer, error) {
	transfer, err := s.Store.GetTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, fmt.Errorf("%w: transfer %s", ErrNotFound, id.Hex())
	}
	scope := policy.ResolveScope(actor, model.ResourceTransfer, primitive.NilObjectID)
	if !scope.Allows(transfer.FromBranchID, transfer.FromDepartmentID, "") &&
		!scope.Allows(transfer.ToBranchID, transfer.ToDepartmentID, "") {
		return nil, fmt.Errorf("%w: transfer is outside your branch or department", ErrForbidden)
	}
	return transfer, nil
}

func (s *Service) ListTransfers(ctx context.Context, actor *model.Actor, explicitBranch primitive.ObjectID, filter model.TransferFilter) ([]*model.Transfer, error) {
	scope := policy.ResolveScope(actor, model.ResourceTransfer, explicitBranch)
	if scope.Empty {
		return []*model.Transfer{}, nil
	}
	return s.Store.FindTransfers(ctx, scope.Filter(), filter)
}

// SendTransfer submits a Pending transfer for approval. Requester or admin.
func (s *Service) SendTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Transfer, error) {
	transfer, err := s.GetTransfer(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if transfer.RequestedBy != actor.ID && !isAdminRole(actor.Role) {
		return nil, fmt.Errorf("%w: only the requester or an admin may send a transfer", ErrForbidden)
	}

	matched, err := s.Store.AdvanceTransfer(ctx, id, model.TransferStatusPending, bson.M{
		"status": model.TransferStatusWaitingApproval,
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("%w: transfer is not pending", ErrConflict)
	}
	transfer.Status = model.TransferStatusWaitingApproval

	s.audit(ctx, actor, model.ActionTransferSend, model.ResourceTransfer, transfer.ID, "", "", transfer.FromBranchID, transfer.FromDepartmentID)
	return transfer, nil
}

// ManagerApproveTransfer is the origin-side gate: a manager of the origin
// department and branch moves WaitingApproval to InTransit.
func (s *Service) ManagerApproveTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Transfer, error) {
	transfer, err := s.GetTransfer(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !s.onOriginSide(actor, transfer) {
		return nil, fmt.Errorf("%w: manager approval must come from the origin department", ErrForbidden)
	}

	matched, err := s.Store.AdvanceTransfer(ctx, id, model.TransferStatusWaitingApproval, bson.M{
		"status":              model.TransferStatusInTransit,
		"manager_approved_by": actor.ID,
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("%w: transfer is not waiting for approval", ErrConflict)
	}
	transfer.Status = model.TransferStatusInTransit
	transfer.ManagerApprovedBy = actor.ID

	s.audit(ctx, actor, model.ActionTransferApprove, model.ResourceTransfer, transfer.ID, "", "", transfer.FromBranchID, transfer.FromDepartmentID)
	return transfer, nil
}

// AcceptTransfer is the destination-side gate: a member of the destination
// department and branch completes the transfer, which is the moment the
// asset actually moves.
func (s *Service) AcceptTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Transfer, error) {
	transfer, err := s.GetTransfer(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !s.onDestinationSide(actor, transfer) {
		return nil, fmt.Errorf("%w: completion must come from the destination department", ErrForbidden)
	}

	matched, err := s.Store.AdvanceTransfer(ctx, id, model.TransferStatusInTransit, bson.M{
		"status":      model.TransferStatusCompleted,
		"approved_by": actor.ID,
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("%w: transfer is not in transit", ErrConflict)
	}
	transfer.Status = model.TransferStatusCompleted
	transfer.ApprovedBy = actor.ID

	// The approval is already durable; the asset move below is a separate
	// write. A crash in between leaves a completed transfer whose asset
	// has not moved yet.
	asset, err := s.Store.GetAsset(ctx, transfer.AssetID)
	if err != nil {
		return nil, err
	}
	if asset != nil {
		asset.BranchID = transfer.ToBranchID
		asset.DepartmentID = transfer.ToDepartmentID
		asset.Department = transfer.ToDepartmentName
		if asset.Department == "" && !transfer.ToDepartmentID.IsZero() {
			if dept, err := s.Store.GetDepartment(ctx, transfer.ToDepartmentID); err == nil && dept != nil {
				asset.Department = dept.Name
			}
		}
		asset.UpdatedBy = actor.ID
		appendActivity(asset, model.ActionTransferAccept, "transferred to "+asset.Department, actor.ID)
		if err := s.Store.UpdateAsset(ctx, asset); err != nil {
			return nil, err
		}
	}

	s.audit(ctx, actor, model.ActionTransferAccept, model.ResourceTransfer, transfer.ID, "", "", transfer.ToBranchID, transfer.ToDepartmentID)
	return transfer, nil
}

// RejectTransfer refuses a transfer from the destination side, while it is
// still Pending or WaitingApproval.
func (s *Service) RejectTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.RejectTransferReq) (*model.Transfer, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	transfer, err := s.GetTransfer(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !s.onDestinationSide(actor, transfer) {
		return nil, fmt.Errorf("%w: rejection must come from the destination department", ErrForbidden)
	}

	set := bson.M{
		"status":           model.TransferStatusRejected,
		"rejected_by":      actor.ID,
		"rejection_reason": req.Reason,
	}
	matched, err := s.Store.AdvanceTransfer(ctx, id, model.TransferStatusPending, set)
	if err != nil {
		return nil, err
	}
	if !matched {
		matched, err = s.Store.AdvanceTransfer(ctx, id, model.TransferStatusWaitingApproval, set)
		if err != nil {
			return nil, err
		}
	}
	if !matched {
		return nil, fmt.Errorf("%w: transfer can no longer be rejected", ErrConflict)
	}
	transfer.Status = model.TransferStatusRejected
	transfer.RejectedBy = actor.ID
	transfer.RejectionReason = req.Reason

	s.audit(ctx, actor, model.ActionTransferReject, model.ResourceTransfer, transfer.ID, "", req.Reason, transfer.ToBranchID, transfer.ToDepartmentID)
	return transfer, nil
}

// UpdateTransfer edits a transfer while it is still Pending. Requester or
// admin only; once sent, only the next approval stage may touch it.
func (s *Service) UpdateTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.UpdateTransferReq) (*model.Transfer, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	transfer, err := s.GetTransfer(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if transfer.RequestedBy != actor.ID && !isAdminRole(actor.Role) {
		return nil, fmt.Errorf("%w: only the requester or an admin may edit a transfer", ErrForbidden)
	}

	set := bson.M{}
	if req.ToBranchID != "" {
		toBranch, err := parseID(req.ToBranchID)
		if err != nil {
			return nil, err
		}
		set["to_branch_id"] = toBranch
		transfer.ToBranchID = toBranch
	}
	if req.ToDepartmentID != "" {
		toDept, err := parseID(req.ToDepartmentID)
		if err != nil {
			return nil, err
		}
		set["to_department_id"] = toDept
		transfer.ToDepartmentID = toDept
		transfer.ToDepartmentName = ""
		if dept, lookupErr := s.Store.GetDepartment(ctx, toDept); lookupErr == nil && dept != nil {
			transfer.ToDepartmentName = dept.Name
		}
		set["to_department_name"] = transfer.ToDepartmentName
	}
	if req.Reason != "" {
		set["reason"] = req.Reason
		transfer.Reason = req.Reason
	}
	if len(set) == 0 {
		return transfer, nil
	}

	matched, err := s.Store.AdvanceTransfer(ctx, id, model.TransferStatusPending, set)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("%w: only a pending transfer can be edited", ErrConflict)
	}

	s.audit(ctx, actor, model.ActionUpdate, model.ResourceTransfer, transfer.ID, "", "", transfer.FromBranchID, transfer.FromDepartmentID)
	return transfer, nil
}

// DeleteTransfer removes a transfer while still Pending. Requester or admin.
func (s *Service) DeleteTransfer(ctx context.Context, actor *model.Actor, id primitive.ObjectID) error {
	transfer, err := s.GetTransfer(ctx, actor, id)
	if err != nil {
		return err
	}
	if transfer.RequestedBy != actor.ID && !isAdminRole(actor.Role) {
		return fmt.Errorf("%w: only the requester or an admin may delete a transfer", ErrForbidden)
	}

	deleted, err := s.Store.DeleteTransfer(ctx, id, model.TransferStatusPending)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: only a pending transfer can be deleted", ErrConflict)
	}

	s.audit(ctx, actor, model.ActionDelete, model.ResourceTransfer, transfer.ID, "", "", transfer.FromBranchID, transfer.FromDepartmentID)
	return nil
}

// onOriginSide: superuser anywhere; otherwise the actor's branch must be the
// origin branch, and below admin the actor must manage the origin department.
func (s *Service) onOriginSide(actor *model.Actor, t *model.Transfer) bool {
	if actor.Role == model.RoleSuperuser {
		return true
	}
	if actor.BranchID != t.FromBranchID {
		return false
	}
	if isAdminRole(actor.Role) {
		return true
	}
	if !isManagerialRole(actor.Role) {
		return false
	}
	return t.FromDepartmentID.IsZero() || actor.OwnsDepartment(t.FromDepartmentID, "")
}

// onDestinationSide: superuser anywhere; otherwise the actor's branch must be
// the destination branch, and below admin the actor must belong to the
// destination department.
func (s *Service) onDestinationSide(actor *model.Actor, t *model.Transfer) bool {
	if actor.Role == model.RoleSuperuser {
		return true
	}
	if actor.BranchID != t.ToBranchID {
		return false
	}
	if isAdminRole(actor.Role) {
		return true
	}
	return t.ToDepartmentID.IsZero() || actor.OwnsDepartment(t.ToDepartmentID, "")
}
