package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/policy"
	"assettrack/internal/tracker/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateAssignment hands an asset to a recipient. A stale active assignment
// row, one that says "in use" while the asset itself reads available, is
// auto-closed here instead of blocking the new assignment; a genuinely
// active one is a conflict.
func (s *Service) CreateAssignment(ctx context.Context, actor *model.Actor, req *model.CreateAssignmentReq) (*model.Assignment, error) {
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

	if !model.PrivilegedAssignRoles[actor.Role] {
		if !actor.OwnsDepartment(asset.DepartmentID, asset.Department) {
			return nil, fmt.Errorf("%w: asset belongs to another department", ErrForbidden)
		}
	}

	existing, err := s.Store.FindActiveAssignment(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !model.AvailableAssetStatuses[asset.Status] {
			return nil, fmt.Errorf("%w: asset is already assigned", ErrConflict)
		}
		// Stale row: asset says available, assignment says in use. Close it
		// and move on.
		now := time.Now()
		existing.Status = model.AssignmentStatusReturned
		existing.ReturnedDate = &now
		existing.UpdatedBy = actor.ID
		if existing.Notes != "" {
			existing.Notes += "; "
		}
		existing.Notes += "auto-closed: asset status indicated availability"
		if err := s.Store.UpdateAssignment(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("auto-closed stale assignment",
			"assignment_id", existing.ID.Hex(),
			"asset_id", assetID.Hex(),
		)
		s.audit(ctx, actor, model.ActionAutoClose, model.ResourceAssignment, existing.ID, asset.Name, "stale assignment auto-closed", asset.BranchID, asset.DepartmentID)
	}

	var userID *primitive.ObjectID
	if req.UserID != "" {
		id, err := parseID(req.UserID)
		if err != nil {
			return nil, err
		}
		userID = &id
	}
	locationID, err := parseOptionalID(req.LocationID)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		AssetID:      assetID,
		UserID:       userID,
		AssignedTo:   req.AssignedTo,
		Status:       model.AssignmentStatusAssigned,
		LocationID:   locationID,
		BranchID:     asset.BranchID,
		DepartmentID: asset.DepartmentID,
		Department:   asset.Department,
		AssignedDate: time.Now(),
		Notes:        req.Notes,
		CreatedBy:    actor.ID,
		UpdatedBy:    actor.ID,
	}
	if err := s.Store.CreateAssignment(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Partial unique index caught a concurrent assignment.
			return nil, fmt.Errorf("%w: asset is already assigned", ErrConflict)
		}
		return nil, err
	}

	asset.Status = model.AssetStatusAssigned
	if !locationID.IsZero() {
		asset.LocationID = locationID
	}
	asset.UpdatedBy = actor.ID
	appendActivity(asset, model.ActionAssign, assignmentRecipient(assignment), actor.ID)
	if err := s.Store.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, model.ActionAssign, model.ResourceAssignment, assignment.ID, asset.Name, assignmentRecipient(assignment), asset.BranchID, asset.DepartmentID)
	return assignment, nil
}

// ReturnAssignment closes an assignment. The asset goes back to active
// unless it is under maintenance; maintenance always wins over a return.
func (s *Service) ReturnAssignment(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.ReturnAssignmentReq) (*model.Assignment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	assignment, err := s.getScopedAssignment(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status == model.AssignmentStatusReturned {
		return nil, fmt.Errorf("%w: assignment is already returned", ErrConflict)
	}

	returnedDate := time.Now()
	if req.ReturnedDate != nil {
		returnedDate = *req.ReturnedDate
	}
	assignment.Status = model.AssignmentStatusReturned
	assignment.ReturnedDate = &returnedDate
	assignment.UpdatedBy = actor.ID
	if req.Notes != "" {
		if assignment.Notes != "" {
			assignment.Notes += "; "
		}
		assignment.Notes += req.Notes
	}
	if err := s.Store.UpdateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	asset, err := s.Store.GetAsset(ctx, assignment.AssetID)
	if err != nil {
		return nil, err
	}
	if asset != nil {
		if asset.Status != model.AssetStatusMaintenance && asset.Status != model.AssetStatusRequestMaint {
			asset.Status = model.AssetStatusActive
		}
		asset.UpdatedBy = actor.ID
		appendActivity(asset, model.ActionReturn, "", actor.ID)
		if err := s.Store.UpdateAsset(ctx, asset); err != nil {
			return nil, err
		}
		s.audit(ctx, actor, model.ActionReturn, model.ResourceAssignment, assignment.ID, asset.Name, "", asset.BranchID, asset.DepartmentID)
	}

	return assignment, nil
}

func (s *Service) ListAssignments(ctx context.Context, actor *model.Actor, explicitBranch primitive.ObjectID, filter model.AssignmentFilter) ([]*model.Assignment, error) {
	scope := policy.ResolveScope(actor, model.ResourceAssignment, explicitBranch)
	if scope.Empty {
		return []*model.Assignment{}, nil
	}
	return s.Store.FindAssignments(ctx, scope.Filter(), filter)
}

func (s *Service) DeleteAssignment(ctx context.Context, actor *model.Actor, id primitive.ObjectID) error {
	assignment, err := s.getScopedAssignment(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.Store.SoftDeleteAssignment(ctx, assignment.ID, actor.ID); err != nil {
		return err
	}
	s.audit(ctx, actor, model.ActionDelete, model.ResourceAssignment, assignment.ID, "", "", assignment.BranchID, assignment.DepartmentID)
	return nil
}

// BulkUpdateRecipient renames a manual recipient across every matching
// assignment. Rows are written concurrently and independently; a failed row
// is counted, not rolled back.
func (s *Service) BulkUpdateRecipient(ctx context.Context, actor *model.Actor, req *model.BulkUpdateRecipientReq) (*model.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	rows, err := s.Store.FindByRecipient(ctx, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	result := s.forEachAssignment(ctx, rows, func(a *model.Assignment) error {
		a.AssignedTo = req.NewAssignedTo
		a.UpdatedBy = actor.ID
		return s.Store.UpdateAssignment(ctx, a)
	})

	s.audit(ctx, actor, model.ActionUpdate, model.ResourceAssignment, primitive.NilObjectID, req.AssignedTo,
		fmt.Sprintf("bulk recipient rename to %q: %d updated, %d failed", req.NewAssignedTo, result.Updated, result.Failed),
		actor.BranchID, actor.DepartmentID)
	return result, nil
}

// BulkDeleteRecipient soft-deletes every assignment held by a manual
// recipient. Same fire-and-collect semantics as BulkUpdateRecipient.
func (s *Service) BulkDeleteRecipient(ctx context.Context, actor *model.Actor, req *model.BulkDeleteRecipientReq) (*model.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	rows, err := s.Store.FindByRecipient(ctx, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	result := s.forEachAssignment(ctx, rows, func(a *model.Assignment) error {
		return s.Store.SoftDeleteAssignment(ctx, a.ID, actor.ID)
	})

	s.audit(ctx, actor, model.ActionDelete, model.ResourceAssignment, primitive.NilObjectID, req.AssignedTo,
		fmt.Sprintf("bulk recipient delete: %d deleted, %d failed", result.Updated, result.Failed),
		actor.BranchID, actor.DepartmentID)
	return result, nil
}

// forEachAssignment applies op to every row concurrently and collects the
// per-row outcomes.
func (s *Service) forEachAssignment(ctx context.Context, rows []*model.Assignment, op func(*model.Assignment) error) *model.BulkResult {
	result := &model.BulkResult{Matched: len(rows)}
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, row := range rows {
		wg.Add(1)
		go func(a *model.Assignment) {
			defer wg.Done()
			err := op(a)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				s.logger.Warn("bulk assignment write failed",
					"assignment_id", a.ID.Hex(),
					"error", err,
				)
				return
			}
			result.Updated++
		}(row)
	}
	wg.Wait()
	return result
}

func (s *Service) getScopedAssignment(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Assignment, error) {
	assignment, err := s.Store.GetAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil || assignment.IsDeleted {
		return nil, fmt.Errorf("%w: assignment %s", ErrNotFound, id.Hex())
	}
	scope := policy.ResolveScope(actor, model.ResourceAssignment, primitive.NilObjectID)
	if !scope.Allows(assignment.BranchID, assignment.DepartmentID, assignment.Department) {
		return nil, fmt.Errorf("%w: assignment is outside your branch or department", ErrForbidden)
	}
	return assignment, nil
}

func assignmentRecipient(a *model.Assignment) string {
	if a.AssignedTo != "" {
		return "assigned to " + a.AssignedTo
	}
	if a.UserID != nil {
		return "assigned to user " + a.UserID.Hex()
	}
	return ""
}
