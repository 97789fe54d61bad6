package tests

import (
	"encoding/json"
	"net/http/httptest"
	"strings"

	"assettrack/internal/tracker/handler"
	"assettrack/internal/tracker/router"
	"assettrack/internal/tracker/service"
	"assettrack/internal/tracker/util"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	util.InitLogger()
}

// SetupServer wires the full HTTP surface over a mock store.
func SetupServer(store *MockStore) *echo.Echo {
	e := echo.New()
	svc := service.NewService(store, store)
	router.RegisterRoutes(e, handler.NewHandler(svc))
	return e
}

func PerformRequest(e *echo.Echo, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = strings.NewReader(string(b))
	} else {
		bodyReader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func unmarshalBody(rec *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

// actorHeaders builds the trusted gateway identity headers for a request.
func actorHeaders(userID, role string, branchID, departmentID primitive.ObjectID) map[string]string {
	h := map[string]string{
		"x-user-id":   userID,
		"x-user-role": role,
	}
	if !branchID.IsZero() {
		h["x-branch-id"] = branchID.Hex()
	}
	if !departmentID.IsZero() {
		h["x-department-id"] = departmentID.Hex()
	}
	return h
}
