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

func TestPostAsset_Success(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	dept := primitive.NewObjectID()

	// No department name in the request: the legacy field is backfilled
	// from the department lookup.
	store.On("GetDepartment", mock.Anything, dept).Return(&model.Department{ID: dept, Name: "Kitchen"}, nil)
	var created *model.Asset
	store.On("CreateAsset", mock.Anything, mock.AnythingOfType("*model.Asset")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Asset)
		}).
		Return(nil)

	body := map[string]interface{}{
		"name":          "Espresso Machine",
		"serial":        "EM-1001",
		"department_id": dept.Hex(),
	}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assets", body, actorHeaders("admin-1", model.RoleAdmin, branch, dept))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotNil(t, created)
	// Non-superusers always create inside their own branch.
	assert.Equal(t, branch, created.BranchID)
	assert.Equal(t, "Kitchen", created.Department)
	assert.Equal(t, model.AssetStatusActive, created.Status)
	assert.Len(t, created.ActivityLog, 1)
	store.AssertExpectations(t)
}

func TestPostAsset_DuplicateSerial(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	store.On("CreateAsset", mock.Anything, mock.AnythingOfType("*model.Asset")).
		Return(repository.ErrDuplicate)

	body := map[string]interface{}{"name": "Fridge", "serial": "FR-7"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assets", body, actorHeaders("admin-1", model.RoleAdmin, branch, primitive.NilObjectID))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPostAsset_AuditorLacksCapability(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	branch := primitive.NewObjectID()
	body := map[string]interface{}{"name": "Fridge", "serial": "FR-8"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assets", body, actorHeaders("aud-1", model.RoleAuditor, branch, primitive.NilObjectID))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	store.AssertNotCalled(t, "CreateAsset", mock.Anything, mock.Anything)
}

func TestPostAsset_MissingIdentity(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	body := map[string]interface{}{"name": "Fridge", "serial": "FR-9"}
	rec := PerformRequest(e, http.MethodPost, "/api/v1/assets", body, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetAssets_NoBranchYieldsEmptyList(t *testing.T) {
	store := new(MockStore)
	e := SetupServer(store)

	// A non-superuser with no branch resolves to an empty scope; the store
	// is never queried.
	rec := PerformRequest(e, http.MethodGet, "/api/v1/assets", nil, actorHeaders("mgr-1", model.RoleManager, primitive.NilObjectID, primitive.NilObjectID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
	store.AssertNotCalled(t, "FindAssets", mock.Anything, mock.Anything, mock.Anything)
}
