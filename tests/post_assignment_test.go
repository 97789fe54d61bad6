package tests

import (
	"net/http"
	"testing"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostAssignment_Success(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	asset := &model.Asset{ID: assetID, Name: "Laptop", Status: model.AssetStatusActive, BranchID: branch, DepartmentID: dept}

	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	store.On("FindActiveAssignment", mock.Anything, assetID).Return(nil, nil)
	store.On("CreateAssignment", mock.Anything, mock.AnythingOfType("*model.Assignment")).Return(nil)
	var updatedAsset *model.Asset
	store.On("UpdateAsset", mock.Anything, mock.AnythingOfType("*model.Asset")).
		Run(func(args mock.Arguments) { updatedAsset = args.Get(1).(*model.Asset) }).
		Return(nil)

	body := map[string]interface{}{"asset_id": assetID.Hex(), "assigned_to": "J. Barista"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments", body, actorHeaders("mgr-1", model.RoleManager, branch, dept))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.AssetStatusAssigned, updatedAsset.Status)
	store.AssertExpectations(t)
}

func TestPostAssignment_ActiveAssignmentConflict(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	// The asset itself reads assigned, so the active row is genuine.
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusAssigned, BranchID: branch, DepartmentID: dept}
	existing := &model.Assignment{ID: primitive.NewObjectID(), AssetID: assetID, Status: model.AssignmentStatusAssigned}

	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	store.On("FindActiveAssignment", mock.Anything, assetID).Return(existing, nil)

	body := map[string]interface{}{"asset_id": assetID.Hex(), "assigned_to": "Someone Else"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments", body, actorHeaders("mgr-1", model.RoleManager, branch, dept))

	assert.Equal(t, http.StatusConflict, rec.Code)
	store.AssertNotCalled(t, "CreateAssignment", mock.Anything, mock.Anything)
}

func TestPostAssignment_StaleRowAutoClosed(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	// The asset says available while an assignment row still says assigned:
	// the row is stale and must be closed, not block the new assignment.
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusActive, BranchID: branch, DepartmentID: dept}
	stale := &model.Assignment{ID: primitive.NewObjectID(), AssetID: assetID, Status: model.AssignmentStatusAssigned}

	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	store.On("FindActiveAssignment", mock.Anything, assetID).Return(stale, nil)
	var closed *model.Assignment
	store.On("UpdateAssignment", mock.Anything, stale).
		Run(func(args mock.Arguments) { closed = args.Get(1).(*model.Assignment) }).
		Return(nil).Once()
	store.On("CreateAssignment", mock.Anything, mock.AnythingOfType("*model.Assignment")).Return(nil)
	store.On("UpdateAsset", mock.Anything, mock.AnythingOfType("*model.Asset")).Return(nil)

	body := map[string]interface{}{"asset_id": assetID.Hex(), "assigned_to": "New Holder"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments", body, actorHeaders("mgr-1", model.RoleManager, branch, dept))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.AssignmentStatusReturned, closed.Status)
	assert.NotNil(t, closed.ReturnedDate)
	assert.Contains(t, closed.Notes, "auto-closed")
	store.AssertExpectations(t)
}

func TestPostAssignment_ConcurrentDuplicateRejected(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusActive, BranchID: branch, DepartmentID: dept}

	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)
	store.On("FindActiveAssignment", mock.Anything, assetID).Return(nil, nil)
	// A racing request got there first; the partial unique index fires.
	store.On("CreateAssignment", mock.Anything, mock.AnythingOfType("*model.Assignment")).Return(repository.ErrDuplicate)

	body := map[string]interface{}{"asset_id": assetID.Hex(), "assigned_to": "Racer"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments", body, actorHeaders("mgr-1", model.RoleManager, branch, dept))

	assert.Equal(t, http.StatusConflict, rec.Code)
	store.AssertNotCalled(t, "UpdateAsset", mock.Anything, mock.Anything)
}

func TestPostAssignment_OtherDepartmentForbidden(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	ownDept := primitive.NewObjectID()
	otherDept := primitive.NewObjectID()
	assetID := primitive.NewObjectID()
	asset := &model.Asset{ID: assetID, Status: model.AssetStatusActive, BranchID: branch, DepartmentID: otherDept}

	store.On("GetAsset", mock.Anything, assetID).Return(asset, nil)

	body := map[string]interface{}{"asset_id": assetID.Hex(), "assigned_to": "J. Barista"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments", body, actorHeaders("usr-1", model.RoleUser, branch, ownDept))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	store.AssertNotCalled(t, "CreateAssignment", mock.Anything, mock.Anything)
}

func TestPostAssignment_RequiresRecipient(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	body := map[string]interface{}{"asset_id": primitive.NewObjectID().Hex()}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assignments", body, actorHeaders("mgr-1", model.RoleManager, branch, primitive.NilObjectID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
