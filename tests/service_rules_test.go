package tests

import (
	"context"
	"errors"
	"testing"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rules below are exercised against the service directly; some of them only
// trigger for actors with non-default permission grants.

func TestUpdateAsset_DepartmentPushForbidden(t *testing.T) {
	store := new(MockStore)
	svc := service.NewService(store, store)

	branch := primitive.NewObjectID()
	ownDept := primitive.NewObjectID()
	otherDept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusActive, BranchID: branch, DepartmentID: ownDept}
	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)

	actor := &model.Actor{ID: "usr-1", Role: model.RoleUser, BranchID: branch, DepartmentID: ownDept}

	// Pushing the asset into someone else's department is forbidden.
	_, err := svc.UpdateAsset(context.Background(), actor, assetID, &model.UpdateAssetReq{DepartmentID: otherDept.Hex()})
	assert.True(t, errors.Is(err, service.ErrForbidden))
	store.AssertNotCalled(t, "UpdateAsset", mock.Anything, mock.Anything)
}

func TestUpdateAsset_DepartmentPullAllowed(t *testing.T) {
	store := new(MockStore)
	svc := service.NewService(store, store)

	branch := primitive.NewObjectID()
	ownDept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	// Unowned asset in the branch; pulling it into the actor's own
	// department is fine.
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusActive, BranchID: branch}
	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	store.On("GetDepartment", mock.Anything, ownDept).Return(&model.Department{ID: ownDept, Name: "Kitchen"}, nil)
	store.On("UpdateAsset", mock.Anything, asset).Return(nil)

	actor := &model.Actor{ID: "usr-1", Role: model.RoleUser, BranchID: branch, DepartmentID: ownDept}

	updated, err := svc.UpdateAsset(context.Background(), actor, assetID, &model.UpdateAssetReq{DepartmentID: ownDept.Hex()})
	assert.NoError(t, err)
	assert.Equal(t, ownDept, updated.DepartmentID)
	assert.Equal(t, "Kitchen", updated.Department)
}

func TestCreateTransfer_NonPrivilegedNeedsOwnDepartment(t *testing.T) {
	store := new(MockStore)
	svc := service.NewService(store, store)

	branch := primitive.NewObjectID()
	ownDept := primitive.NewObjectID()
	otherDept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	asset := &model.Asset{ID: assetID, BranchID: branch, DepartmentID: otherDept}
	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)

	actor := &model.Actor{ID: "usr-1", Role: model.RoleUser, BranchID: branch, DepartmentID: ownDept}

	_, err := svc.CreateTransfer(context.Background(), actor, &model.CreateTransferReq{AssetID: assetID.Hex()})
	assert.True(t, errors.Is(err, service.ErrForbidden))
}

func TestCreateTransfer_OriginFallsBackToActorBranch(t *testing.T) {
	store := new(MockStore)
	svc := service.NewService(store, store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	// Asset predates branch bookkeeping; the actor's branch becomes the origin.
	asset := &model.Asset{ID: assetID, DepartmentID: dept}
	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	var created *model.Transfer
	store.On("CreateTransfer", mock.Anything, mock.AnythingOfType("*model.Transfer")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*model.Transfer) }).
		Return(nil)

	actor := &model.Actor{ID: "mgr-1", Role: model.RoleManager, BranchID: branch, DepartmentID: dept}

	_, err := svc.CreateTransfer(context.Background(), actor, &model.CreateTransferReq{AssetID: assetID.Hex()})
	assert.NoError(t, err)
	assert.Equal(t, branch, created.FromBranchID)
	assert.Equal(t, branch, created.ToBranchID)
}

func TestManagedDepartmentsCountAsOwn(t *testing.T) {
	store := new(MockStore)
	svc := service.NewService(store, store)

	branch := primitive.NewObjectID()
	ownDept := primitive.NewObjectID()
	managedDept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusActive, BranchID: branch, DepartmentID: managedDept}

	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	store.On("FindActiveAssignment", mock.Anything, assetID).Return(nil, nil)
	store.On("CreateAssignment", mock.Anything, mock.AnythingOfType("*model.Assignment")).Return(nil)
	store.On("UpdateAsset", mock.Anything, asset).Return(nil)

	// Not a privileged role, but the asset's department is one they manage.
	actor := &model.Actor{
		ID: "usr-1", Role: model.RoleUser, BranchID: branch,
		DepartmentID:       ownDept,
		ManagedDepartments: []primitive.ObjectID{managedDept},
	}

	_, err := svc.CreateAssignment(context.Background(), actor, &model.CreateAssignmentReq{
		AssetID:    assetID.Hex(),
		AssignedTo: "Shift Lead",
	})
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestBulkDeleteRecipient_AllRowsSoftDeleted(t *testing.T) {
	store := new(MockStore)
	svc := service.NewService(store, store)

	rows := []*model.Assignment{
		{ID: primitive.NewObjectID(), AssignedTo: "Leaver"},
		{ID: primitive.NewObjectID(), AssignedTo: "Leaver"},
	}
	store.On("FindByRecipient", mock.Anything, "Leaver").Return(rows, nil)
	store.On("SoftDeleteAssignment", mock.Anything, rows[0].ID, "adm-1").Return(nil)
	store.On("SoftDeleteAssignment", mock.Anything, rows[1].ID, "adm-1").Return(nil)

	actor := &model.Actor{ID: "adm-1", Role: model.RoleAdmin, BranchID: primitive.NewObjectID()}

	result, err := svc.BulkDeleteRecipient(context.Background(), actor, &model.BulkDeleteRecipientReq{AssignedTo: "Leaver"})
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 0, result.Failed)
	store.AssertExpectations(t)
}
