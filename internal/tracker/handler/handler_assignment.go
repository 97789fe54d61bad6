package handler

import (
	"net/http"

	"assettrack/internal/tracker/model"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostAssignment handles POST /assignments
func (h *Handler) PostAssignment(c echo.Context) error {
	var req model.CreateAssignmentReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	assignment, err := h.Service.CreateAssignment(c.Request().Context(), actorFrom(c), &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusCreated, assignment)
}

// GetAssignments handles GET /assignments
func (h *Handler) GetAssignments(c echo.Context) error {
	filter := model.AssignmentFilter{
		AssignedTo: c.QueryParam("assigned_to"),
		Status:     c.QueryParam("status"),
	}
	if assetID, err := primitive.ObjectIDFromHex(c.QueryParam("asset_id")); err == nil {
		filter.AssetID = assetID
	}
	assignments, err := h.Service.ListAssignments(c.Request().Context(), actorFrom(c), branchFilter(c), filter)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, assignments)
}

// PostAssignmentReturn handles POST /assignments/:id/return
func (h *Handler) PostAssignmentReturn(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.ReturnAssignmentReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	assignment, err := h.Service.ReturnAssignment(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment handles DELETE /assignments/:id
func (h *Handler) DeleteAssignment(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	if err := h.Service.DeleteAssignment(c.Request().Context(), actorFrom(c), id); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// PutBulkRecipient handles PUT /assignments/bulk/recipient
func (h *Handler) PutBulkRecipient(c echo.Context) error {
	var req model.BulkUpdateRecipientReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	result, err := h.Service.BulkUpdateRecipient(c.Request().Context(), actorFrom(c), &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteBulkRecipient handles DELETE /assignments/bulk/recipient
func (h *Handler) DeleteBulkRecipient(c echo.Context) error {
	var req model.BulkDeleteRecipientReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	result, err := h.Service.BulkDeleteRecipient(c.Request().Context(), actorFrom(c), &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, result)
}
