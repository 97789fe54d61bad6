package tests

import (
	"net/http"
	"testing"

	"assettrack/internal/tracker/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReturnAssignment_AssetGoesBackToActive(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	assignmentID := primitive.NewObjectID()

	assignment := &model.Assignment{
		ID: assignmentID, AssetID: assetID,
		Status: model.AssignmentStatusAssigned, BranchID: branch, DepartmentID: dept,
	}
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusAssigned, BranchID: branch, DepartmentID: dept}

	store.On("GetAssignment", mock.Anything, assignmentID).Return(assignment, nil)
	store.On("UpdateAssignment", mock.Anything, assignment).Return(nil)
	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	var updated *model.Asset
	store.On("UpdateAsset", mock.Anything, asset).
		Run(func(args mock.Arguments) { updated = args.Get(1).(*model.Asset) }).
		Return(nil)

	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments/"+assignmentID.Hex()+"/return",
		map[string]interface{}{}, actorHeaders("mgr-1", model.RoleManager, branch, dept))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.AssignmentStatusReturned, assignment.Status)
	assert.NotNil(t, assignment.ReturnedDate)
	assert.Equal(t, model.AssetStatusActive, updated.Status)
	store.AssertExpectations(t)
}

func TestReturnAssignment_MaintenanceWins(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	assignmentID := primitive.NewObjectID()

	assignment := &model.Assignment{
		ID: assignmentID, AssetID: assetID,
		Status: model.AssignmentStatusAssigned, BranchID: branch, DepartmentID: dept,
	}
	// The asset went into maintenance while assigned; the return must not
	// flip it back to active.
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusMaintenance, BranchID: branch, DepartmentID: dept}

	store.On("GetAssignment", mock.Anything, assignmentID).Return(assignment, nil)
	store.On("UpdateAssignment", mock.Anything, assignment).Return(nil)
	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	var updated *model.Asset
	store.On("UpdateAsset", mock.Anything, asset).
		Run(func(args mock.Arguments) { updated = args.Get(1).(*model.Asset) }).
		Return(nil)

	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments/"+assignmentID.Hex()+"/return",
		map[string]interface{}{}, actorHeaders("mgr-1", model.RoleManager, branch, dept))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.AssetStatusMaintenance, updated.Status)
}

func TestReturnAssignment_AlreadyReturned(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	assignmentID := primitive.NewObjectID()

	assignment := &model.Assignment{
		ID: assignmentID, AssetID: primitive.NewObjectID(),
		Status: model.AssignmentStatusReturned, BranchID: branch, DepartmentID: dept,
	}
	store.On("GetAssignment", mock.Anything, assignmentID).Return(assignment, nil)

	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments/"+assignmentID.Hex()+"/return",
		map[string]interface{}{}, actorHeaders("mgr-1", model.RoleManager, branch, dept))

	assert.Equal(t, http.StatusConflict, rec.Code)
	store.AssertNotCalled(t, "UpdateAssignment", mock.Anything, mock.Anything)
}

func TestReturnAssignment_OutsideScopeForbidden(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	assignmentID := primitive.NewObjectID()
	assignment := &model.Assignment{
		ID: assignmentID, AssetID: primitive.NewObjectID(),
		Status: model.AssignmentStatusAssigned,
		BranchID: primitive.NewObjectID(), DepartmentID: primitive.NewObjectID(),
	}
	store.On("GetAssignment", mock.Anything, assignmentID).Return(assignment, nil)

	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments/"+assignmentID.Hex()+"/return",
		map[string]interface{}{}, actorHeaders("mgr-1", model.RoleManager, primitive.NewObjectID(), primitive.NewObjectID()))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBulkRecipientUpdate_PartialFailureReported(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	rows := []*model.Assignment{
		{ID: primitive.NewObjectID(), AssignedTo: "Old Name"},
		{ID: primitive.NewObjectID(), AssignedTo: "Old Name"},
		{ID: primitive.NewObjectID(), AssignedTo: "Old Name"},
	}
	store.On("FindByRecipient", mock.Anything, "Old Name").Return(rows, nil)
	store.On("UpdateAssignment", mock.Anything, rows[0]).Return(nil)
	store.On("UpdateAssignment", mock.Anything, rows[1]).Return(assert.AnError)
	store.On("UpdateAssignment", mock.Anything, rows[2]).Return(nil)

	body := map[string]interface{}{"assigned_to": "Old Name", "new_assigned_to": "New Name"}
	rec := PerformRequest(e, http.MethodPut, "/api/v1/assignments/bulk/recipient", body,
		actorHeaders("adm-1", model.RoleAdmin, branch, primitive.NilObjectID))

	assert.Equal(t, http.StatusOK, rec.Code)

	var result model.BulkResult
	assert.NoError(t, unmarshalBody(rec, &result))
	assert.Equal(t, 3, result.Matched)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 1, result.Failed)
}
