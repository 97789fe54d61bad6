package handler

import (
	"net/http"

	"assettrack/internal/tracker/model"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostTransfer handles POST /transfers
func (h *Handler) PostTransfer(c echo.Context) error {
	var req model.CreateTransferReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	transfer, err := h.Service.CreateTransfer(c.Request().Context(), actorFrom(c), &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusCreated, transfer)
}

// GetTransfers handles GET /transfers
func (h *Handler) GetTransfers(c echo.Context) error {
	filter := model.TransferFilter{
		Status:      c.QueryParam("status"),
		RequestedBy: c.QueryParam("requested_by"),
	}
	if assetID, err := primitive.ObjectIDFromHex(c.QueryParam("asset_id")); err == nil {
		filter.AssetID = assetID
	}
	transfers, err := h.Service.ListTransfers(c.Request().Context(), actorFrom(c), branchFilter(c), filter)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, transfers)
}

// GetTransfer handles GET /transfers/:id
func (h *Handler) GetTransfer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	transfer, err := h.Service.GetTransfer(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, transfer)
}

// PutTransfer handles PUT /transfers/:id
func (h *Handler) PutTransfer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.UpdateTransferReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	transfer, err := h.Service.UpdateTransfer(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, transfer)
}

// DeleteTransfer handles DELETE /transfers/:id
func (h *Handler) DeleteTransfer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	if err := h.Service.DeleteTransfer(c.Request().Context(), actorFrom(c), id); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// PostTransferSend handles POST /transfers/:id/send
func (h *Handler) PostTransferSend(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	transfer, err := h.Service.SendTransfer(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, transfer)
}

// PostTransferManagerApproval handles POST /transfers/:id/manager-approval
func (h *Handler) PostTransferManagerApproval(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	transfer, err := h.Service.ManagerApproveTransfer(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, transfer)
}

// PostTransferAccept handles POST /transfers/:id/accept
func (h *Handler) PostTransferAccept(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	transfer, err := h.Service.AcceptTransfer(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, transfer)
}

// PostTransferReject handles POST /transfers/:id/reject
func (h *Handler) PostTransferReject(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.RejectTransferReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	transfer, err := h.Service.RejectTransfer(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, transfer)
}
