package tests

import (
	"net/http"
	"testing"

	"assettrack/internal/tracker/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostTransfer_DefaultsToIntraBranch(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	fromDept := primitive.NewObjectID()
	toDept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	asset := &model.Asset{ID: assetID, Name: "Oven", BranchID: branch, DepartmentID: fromDept}

	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	store.On("GetDepartment", mock.Anything, toDept).Return(&model.Department{ID: toDept, Name: "Kitchen"}, nil)
	var created *model.Transfer
	store.On("CreateTransfer", mock.Anything, mock.AnythingOfType("*model.Transfer")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*model.Transfer) }).
		Return(nil)

	body := map[string]interface{}{"asset_id": assetID.Hex(), "to_department_id": toDept.Hex()}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers", body,
		actorHeaders("mgr-1", model.RoleManager, branch, fromDept))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.TransferStatusPending, created.Status)
	// No target branch given: the transfer stays inside the origin branch.
	assert.Equal(t, branch, created.FromBranchID)
	assert.Equal(t, branch, created.ToBranchID)
	assert.Equal(t, "Kitchen", created.ToDepartmentName)
	store.AssertExpectations(t)
}

func TestPostTransfer_NoBranchAnywhereIsConfigError(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	assetID := primitive.NewObjectID()
	asset := &model.Asset{ID: assetID, Name: "Oven"}

	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	store.On("FindHeadOfficeBranch", mock.Anything).Return(nil, nil)
	store.On("FindAnyBranch", mock.Anything).Return(nil, nil)

	body := map[string]interface{}{"asset_id": assetID.Hex()}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers", body,
		actorHeaders("root", model.RoleSuperuser, primitive.NilObjectID, primitive.NilObjectID))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp model.ErrorResponse
	assert.NoError(t, unmarshalBody(rec, &resp))
	assert.Equal(t, "system_configuration", resp.Error.Code)
}

func TestSendTransfer_RequesterAdvancesPending(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	transferID := primitive.NewObjectID()
	transfer := &model.Transfer{
		ID: transferID, RequestedBy: "usr-1", Status: model.TransferStatusPending,
		FromBranchID: branch, FromDepartmentID: dept, ToBranchID: branch, ToDepartmentID: dept,
	}
	store.On("GetTransfer", mock.Anything, transferID).Return(transfer, nil)
	store.On("AdvanceTransfer", mock.Anything, transferID, model.TransferStatusPending, mock.AnythingOfType("primitive.M")).
		Return(true, nil)

	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers/"+transferID.Hex()+"/send", nil,
		actorHeaders("usr-1", model.RoleUser, branch, dept))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.TransferStatusWaitingApproval, transfer.Status)
}

func TestSendTransfer_AlreadyAdvancedConflict(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	transferID := primitive.NewObjectID()
	transfer := &model.Transfer{
		ID: transferID, RequestedBy: "usr-1", Status: model.TransferStatusPending,
		FromBranchID: branch, FromDepartmentID: dept, ToBranchID: branch, ToDepartmentID: dept,
	}
	store.On("GetTransfer", mock.Anything, transferID).Return(transfer, nil)
	// The compare-and-set found the transfer no longer Pending.
	store.On("AdvanceTransfer", mock.Anything, transferID, model.TransferStatusPending, mock.AnythingOfType("primitive.M")).
		Return(false, nil)

	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers/"+transferID.Hex()+"/send", nil,
		actorHeaders("usr-1", model.RoleUser, branch, dept))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestManagerApproval_OriginManagerOnly(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	fromBranch := primitive.NewObjectID()
	fromDept := primitive.NewObjectID()
	toBranch := primitive.NewObjectID()
	toDept := primitive.NewObjectID()
	transferID := primitive.NewObjectID()
	transfer := &model.Transfer{
		ID: transferID, RequestedBy: "usr-1", Status: model.TransferStatusWaitingApproval,
		FromBranchID: fromBranch, FromDepartmentID: fromDept,
		ToBranchID: toBranch, ToDepartmentID: toDept,
	}
	store.On("GetTransfer", mock.Anything, transferID).Return(transfer, nil)

	// A manager on the destination side must not approve.
	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers/"+transferID.Hex()+"/manager-approval", nil,
		actorHeaders("mgr-dest", model.RoleManager, toBranch, toDept))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The origin department's manager may.
	store.On("AdvanceTransfer", mock.Anything, transferID, model.TransferStatusWaitingApproval, mock.AnythingOfType("primitive.M")).
		Return(true, nil)
	rec = PerformRequest(e, http.MethodPost, "/api/v1/transfers/"+transferID.Hex()+"/manager-approval", nil,
		actorHeaders("mgr-origin", model.RoleManager, fromBranch, fromDept))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.TransferStatusInTransit, transfer.Status)
	assert.Equal(t, "mgr-origin", transfer.ManagerApprovedBy)
}

func TestAcceptTransfer_DestinationMovesAsset(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	fromBranch := primitive.NewObjectID()
	fromDept := primitive.NewObjectID()
	toBranch := primitive.NewObjectID()
	toDept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	transferID := primitive.NewObjectID()

	transfer := &model.Transfer{
		ID: transferID, AssetID: assetID, RequestedBy: "usr-1",
		Status:       model.TransferStatusInTransit,
		FromBranchID: fromBranch, FromDepartmentID: fromDept,
		ToBranchID: toBranch, ToDepartmentID: toDept,
		ToDepartmentName: "Kitchen",
	}
	asset := &model.Asset{ID: assetID, Name: "Oven", BranchID: fromBranch, DepartmentID: fromDept}

	store.On("GetTransfer", mock.Anything, transferID).Return(transfer, nil)
	store.On("AdvanceTransfer", mock.Anything, transferID, model.TransferStatusInTransit, mock.AnythingOfType("primitive.M")).
		Return(true, nil)
	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	var moved *model.Asset
	store.On("UpdateAsset", mock.Anything, asset).
		Run(func(args mock.Arguments) { moved = args.Get(1).(*model.Asset) }).
		Return(nil)

	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers/"+transferID.Hex()+"/accept", nil,
		actorHeaders("usr-dest", model.RoleUser, toBranch, toDept))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.TransferStatusCompleted, transfer.Status)
	assert.Equal(t, "usr-dest", transfer.ApprovedBy)
	// This is the moment the asset actually moves.
	assert.Equal(t, toBranch, moved.BranchID)
	assert.Equal(t, toDept, moved.DepartmentID)
	assert.Equal(t, "Kitchen", moved.Department)
	store.AssertExpectations(t)
}

func TestAcceptTransfer_OriginSideForbidden(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	fromBranch := primitive.NewObjectID()
	fromDept := primitive.NewObjectID()
	toBranch := primitive.NewObjectID()
	toDept := primitive.NewObjectID()
	transferID := primitive.NewObjectID()
	transfer := &model.Transfer{
		ID: transferID, RequestedBy: "usr-1", Status: model.TransferStatusInTransit,
		FromBranchID: fromBranch, FromDepartmentID: fromDept,
		ToBranchID: toBranch, ToDepartmentID: toDept,
	}
	store.On("GetTransfer", mock.Anything, transferID).Return(transfer, nil)

	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers/"+transferID.Hex()+"/accept", nil,
		actorHeaders("usr-origin", model.RoleUser, fromBranch, fromDept))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	store.AssertNotCalled(t, "AdvanceTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectTransfer_DestinationWithReason(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	fromDept := primitive.NewObjectID()
	toDept := primitive.NewObjectID()
	transferID := primitive.NewObjectID()
	transfer := &model.Transfer{
		ID: transferID, RequestedBy: "usr-1", Status: model.TransferStatusPending,
		FromBranchID: branch, FromDepartmentID: fromDept,
		ToBranchID: branch, ToDepartmentID: toDept,
		Reason: "needs calibration",
	}
	store.On("GetTransfer", mock.Anything, transferID).Return(transfer, nil)
	store.On("AdvanceTransfer", mock.Anything, transferID, model.TransferStatusPending, mock.MatchedBy(func(set bson.M) bool {
		_, touchesRequestReason := set["reason"]
		return set["status"] == model.TransferStatusRejected &&
			set["rejection_reason"] == "no space left" &&
			!touchesRequestReason
	})).Return(true, nil)

	body := map[string]interface{}{"reason": "no space left"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers/"+transferID.Hex()+"/reject", body,
		actorHeaders("usr-dest", model.RoleUser, branch, toDept))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.TransferStatusRejected, transfer.Status)
	assert.Equal(t, "usr-dest", transfer.RejectedBy)
	assert.Equal(t, "no space left", transfer.RejectionReason)
	// The requester's original reason is kept alongside the rejection.
	assert.Equal(t, "needs calibration", transfer.Reason)
}

func TestRejectTransfer_CompletedCannotBeRejected(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	toDept := primitive.NewObjectID()
	transferID := primitive.NewObjectID()
	transfer := &model.Transfer{
		ID: transferID, RequestedBy: "usr-1", Status: model.TransferStatusCompleted,
		FromBranchID: branch, ToBranchID: branch, ToDepartmentID: toDept,
	}
	store.On("GetTransfer", mock.Anything, transferID).Return(transfer, nil)
	store.On("AdvanceTransfer", mock.Anything, transferID, model.TransferStatusPending, mock.AnythingOfType("primitive.M")).
		Return(false, nil)
	store.On("AdvanceTransfer", mock.Anything, transferID, model.TransferStatusWaitingApproval, mock.AnythingOfType("primitive.M")).
		Return(false, nil)

	body := map[string]interface{}{"reason": "too late"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/transfers/"+transferID.Hex()+"/reject", body,
		actorHeaders("usr-dest", model.RoleUser, branch, toDept))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteTransfer_OnlyWhilePending(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	transferID := primitive.NewObjectID()
	transfer := &model.Transfer{
		ID: transferID, RequestedBy: "mgr-1", Status: model.TransferStatusWaitingApproval,
		FromBranchID: branch, FromDepartmentID: dept, ToBranchID: branch, ToDepartmentID: dept,
	}
	store.On("GetTransfer", mock.Anything, transferID).Return(transfer, nil)
	store.On("DeleteTransfer", mock.Anything, transferID, model.TransferStatusPending).Return(false, nil)

	rec := PerformRequest(e, http.MethodDelete, "/api/v1/transfers/"+transferID.Hex(), nil,
		actorHeaders("mgr-1", model.RoleManager, branch, dept))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
