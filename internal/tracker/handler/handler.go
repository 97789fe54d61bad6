package handler

import (
	"net/http"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/service"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	Service service.TrackerService
}

func NewHandler(s service.TrackerService) *Handler {
	return &Handler{Service: s}
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses the :id path segment; a malformed id is a 400 handled at
// the call site.
func pathID(c echo.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error: model.ErrorDetail{Code: "bad_request", Message: "invalid id"},
	})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error: model.ErrorDetail{Code: "bad_request", Message: "invalid body"},
	})
}

// branchFilter reads the optional ?branch_id= query param. Only a superuser
// scope honors it; for everyone else it is ignored downstream.
func branchFilter(c echo.Context) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(c.QueryParam("branch_id"))
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}
