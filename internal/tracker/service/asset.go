package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/policy"
	"assettrack/internal/tracker/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset status policy. Location changes drive active/in_use flips, but a
// protected status (assigned, maintenance, request maintenance, retired,
// disposed) is never overwritten by location-driven logic.

func (s *Service) CreateAsset(ctx context.Context, actor *model.Actor, req *model.CreateAssetReq) (*model.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	departmentID, err := parseOptionalID(req.DepartmentID)
	if err != nil {
		return nil, err
	}
	branchID, err := parseOptionalID(req.BranchID)
	if err != nil {
		return nil, err
	}
	locationID, err := parseOptionalID(req.LocationID)
	if err != nil {
		return nil, err
	}

	// Non-superusers create assets inside their own branch; a requested
	// branch is ignored rather than honored.
	if actor.Role != model.RoleSuperuser {
		branchID = actor.BranchID
	}
	if departmentID.IsZero() && !model.PrivilegedAssignRoles[actor.Role] {
		departmentID = actor.DepartmentID
	}

	asset := &model.Asset{
		Name:         req.Name,
		Serial:       req.Serial,
		DepartmentID: departmentID,
		Department:   req.Department,
		BranchID:     branchID,
		LocationID:   locationID,
		Status:       req.Status,
		CreatedBy:    actor.ID,
		UpdatedBy:    actor.ID,
	}
	if asset.Department == "" && !departmentID.IsZero() {
		if dept, err := s.Store.GetDepartment(ctx, departmentID); err == nil && dept != nil {
			asset.Department = dept.Name
		}
	}
	appendActivity(asset, model.ActionCreate, "asset registered", actor.ID)

	if err := s.Store.CreateAsset(ctx, asset); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: an asset with serial %q already exists", ErrConflict, req.Serial)
		}
		return nil, err
	}

	s.audit(ctx, actor, model.ActionCreate, model.ResourceAsset, asset.ID, asset.Name, "", asset.BranchID, asset.DepartmentID)
	return asset, nil
}

func (s *Service) GetAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Asset, error) {
	asset, err := s.Store.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %s", ErrNotFound, id.Hex())
	}
	scope := policy.ResolveScope(actor, model.ResourceAsset, primitive.NilObjectID)
	if !scope.Allows(asset.BranchID, asset.DepartmentID, asset.Department) {
		return nil, fmt.Errorf("%w: asset is outside your branch or department", ErrForbidden)
	}
	return asset, nil
}

func (s *Service) ListAssets(ctx context.Context, actor *model.Actor, explicitBranch primitive.ObjectID, filter model.AssetFilter) ([]*model.Asset, error) {
	scope := policy.ResolveScope(actor, model.ResourceAsset, explicitBranch)
	if scope.Empty {
		return []*model.Asset{}, nil
	}
	return s.Store.FindAssets(ctx, scope.Filter(), filter)
}

func (s *Service) UpdateAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.UpdateAssetReq) (*model.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	asset, err := s.GetAsset(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		asset.Name = req.Name
	}
	if req.Serial != "" {
		asset.Serial = req.Serial
	}

	if req.DepartmentID != "" {
		newDept, err := parseID(req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if newDept != asset.DepartmentID {
			// Non-privileged actors may only pull an asset into their own
			// department, never push it elsewhere.
			if !model.PrivilegedAssignRoles[actor.Role] && newDept != actor.DepartmentID {
				return nil, fmt.Errorf("%w: cannot move asset to another department", ErrForbidden)
			}
			asset.DepartmentID = newDept
			asset.Department = ""
			if dept, err := s.Store.GetDepartment(ctx, newDept); err == nil && dept != nil {
				asset.Department = dept.Name
			}
		}
	}
	if req.Department != "" {
		asset.Department = req.Department
	}

	if req.LocationID != "" {
		locID, err := parseID(req.LocationID)
		if err != nil {
			return nil, err
		}
		if locID != asset.LocationID {
			loc, err := s.Store.GetLocation(ctx, locID)
			if err != nil {
				return nil, err
			}
			if loc == nil {
				return nil, fmt.Errorf("%w: location %s", ErrNotFound, locID.Hex())
			}
			asset.LocationID = locID
			s.applyLocationStatus(asset, loc)
		}
	}

	// An explicit status in the request is a deliberate operator action,
	// not a location side effect, so the protected set does not apply.
	if req.Status != "" {
		asset.Status = req.Status
	}

	asset.UpdatedBy = actor.ID
	appendActivity(asset, model.ActionUpdate, "asset updated", actor.ID)

	if err := s.Store.UpdateAsset(ctx, asset); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: an asset with serial %q already exists", ErrConflict, asset.Serial)
		}
		return nil, err
	}

	s.audit(ctx, actor, model.ActionUpdate, model.ResourceAsset, asset.ID, asset.Name, "", asset.BranchID, asset.DepartmentID)
	return asset, nil
}

func (s *Service) DeleteAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID) error {
	asset, err := s.GetAsset(ctx, actor, id)
	if err != nil {
		return err
	}

	active, err := s.Store.FindActiveAssignment(ctx, asset.ID)
	if err != nil {
		return err
	}
	if active != nil {
		return fmt.Errorf("%w: asset has an active assignment and cannot be deleted", ErrConflict)
	}

	if err := s.Store.DeleteAsset(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, actor, model.ActionDelete, model.ResourceAsset, asset.ID, asset.Name, "", asset.BranchID, asset.DepartmentID)
	return nil
}

// InstallAsset mounts an asset into an optional parent and relocates it.
// Without an explicit location the asset lands in its department warehouse,
// then any warehouse in the branch, else the location stays unset.
func (s *Service) InstallAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID, req *model.InstallAssetReq) (*model.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	asset, err := s.GetAsset(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.ParentAssetID != "" {
		parentID, err := parseID(req.ParentAssetID)
		if err != nil {
			return nil, err
		}
		if parentID == asset.ID {
			return nil, fmt.Errorf("%w: an asset cannot contain itself", ErrValidation)
		}
		parent, err := s.Store.GetAsset(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: parent asset %s", ErrNotFound, parentID.Hex())
		}
		if err := s.checkContainmentCycle(ctx, asset.ID, parent); err != nil {
			return nil, err
		}
		asset.ParentAssetID = &parentID
	}

	loc, err := s.resolveInstallLocation(ctx, asset, req.LocationID)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		asset.LocationID = loc.ID
	}
	asset.Status = model.AssetStatusInUse
	asset.UpdatedBy = actor.ID

	details := req.Details
	if details == "" && loc != nil {
		details = "installed at " + loc.Name
	}
	appendActivity(asset, model.ActionInstall, details, actor.ID)

	if err := s.Store.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionInstall, model.ResourceAsset, asset.ID, asset.Name, details, asset.BranchID, asset.DepartmentID)
	return asset, nil
}

// DismantleAsset detaches an asset from its parent and returns it to a
// warehouse. in_use/assigned assets go back to active.
func (s *Service) DismantleAsset(ctx context.Context, actor *model.Actor, id primitive.ObjectID) (*model.Asset, error) {
	asset, err := s.GetAsset(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	asset.ParentAssetID = nil

	loc, err := s.findWarehouse(ctx, asset.DepartmentID, asset.BranchID)
	if err != nil {
		return nil, err
	}
	details := "dismantled"
	if loc != nil {
		asset.LocationID = loc.ID
		details = "dismantled, returned to " + loc.Name
	} else {
		asset.LocationID = primitive.NilObjectID
	}

	if asset.Status == model.AssetStatusInUse || asset.Status == model.AssetStatusAssigned {
		asset.Status = model.AssetStatusActive
	}
	asset.UpdatedBy = actor.ID
	appendActivity(asset, model.ActionDismantle, details, actor.ID)

	if err := s.Store.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionDismantle, model.ResourceAsset, asset.ID, asset.Name, details, asset.BranchID, asset.DepartmentID)
	return asset, nil
}

// applyLocationStatus flips active/in_use from a location change, unless the
// current status is protected.
func (s *Service) applyLocationStatus(asset *model.Asset, loc *model.Location) {
	if model.ProtectedAssetStatuses[asset.Status] {
		return
	}
	if loc.IsWarehouse {
		asset.Status = model.AssetStatusActive
	} else {
		asset.Status = model.AssetStatusInUse
	}
}

func (s *Service) resolveInstallLocation(ctx context.Context, asset *model.Asset, explicitHex string) (*model.Location, error) {
	if explicitHex != "" {
		locID, err := parseID(explicitHex)
		if err != nil {
			return nil, err
		}
		loc, err := s.Store.GetLocation(ctx, locID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, fmt.Errorf("%w: location %s", ErrNotFound, locID.Hex())
		}
		return loc, nil
	}
	return s.findWarehouse(ctx, asset.DepartmentID, asset.BranchID)
}

// findWarehouse resolves the department's warehouse in the branch, then any
// warehouse in the branch. A nil result is fine; the location stays unset.
func (s *Service) findWarehouse(ctx context.Context, departmentID, branchID primitive.ObjectID) (*model.Location, error) {
	if branchID.IsZero() {
		return nil, nil
	}
	if !departmentID.IsZero() {
		loc, err := s.Store.FindWarehouse(ctx, departmentID, branchID)
		if err != nil {
			return nil, err
		}
		if loc != nil {
			return loc, nil
		}
	}
	return s.Store.FindAnyWarehouse(ctx, branchID)
}

// checkContainmentCycle walks the parent chain upward from the proposed
// parent. Seeing the asset itself, or exceeding the depth bound, rejects
// the install.
func (s *Service) checkContainmentCycle(ctx context.Context, assetID primitive.ObjectID, parent *model.Asset) error {
	current := parent
	for depth := 0; depth < model.MaxContainmentDepth; depth++ {
		if current.ID == assetID {
			return fmt.Errorf("%w: installing here would create a containment cycle", ErrConflict)
		}
		if current.ParentAssetID == nil {
			return nil
		}
		next, err := s.Store.GetAsset(ctx, *current.ParentAssetID)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return fmt.Errorf("%w: containment chain exceeds depth %d", ErrConflict, model.MaxContainmentDepth)
}

func appendActivity(asset *model.Asset, action, details, performedBy string) {
	asset.ActivityLog = append(asset.ActivityLog, model.ActivityLogEntry{
		ID:          uuid.NewString(),
		Action:      action,
		Details:     details,
		PerformedBy: performedBy,
		Timestamp:   time.Now(),
	})
}
