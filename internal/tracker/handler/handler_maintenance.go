package handler

import (
	"net/http"

	"assettrack/internal/tracker/model"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostTicket handles POST /maintenance
func (h *Handler) PostTicket(c echo.Context) error {
	var req model.CreateTicketReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	ticket, err := h.Service.CreateTicket(c.Request().Context(), actorFrom(c), &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusCreated, ticket)
}

// GetTickets handles GET /maintenance
func (h *Handler) GetTickets(c echo.Context) error {
	filter := model.TicketFilter{
		Status:      c.QueryParam("status"),
		Technician:  c.QueryParam("technician"),
		RequestedBy: c.QueryParam("requested_by"),
	}
	if assetID, err := primitive.ObjectIDFromHex(c.QueryParam("asset_id")); err == nil {
		filter.AssetID = assetID
	}
	tickets, err := h.Service.ListTickets(c.Request().Context(), actorFrom(c), branchFilter(c), filter)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, tickets)
}

// GetTicket handles GET /maintenance/:id
func (h *Handler) GetTicket(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	ticket, err := h.Service.GetTicket(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, ticket)
}

// PostTicketAccept handles POST /maintenance/:id/accept
func (h *Handler) PostTicketAccept(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.AcceptTicketReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	ticket, err := h.Service.AcceptTicket(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, ticket)
}

// PostTicketReject handles POST /maintenance/:id/reject
func (h *Handler) PostTicketReject(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.RejectTicketReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	ticket, err := h.Service.RejectTicket(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, ticket)
}

// PostTicketStart handles POST /maintenance/:id/start
func (h *Handler) PostTicketStart(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	ticket, err := h.Service.StartTicket(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, ticket)
}

// PostTicketWork handles POST /maintenance/:id/work
func (h *Handler) PostTicketWork(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.UpdateWorkReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	ticket, err := h.Service.UpdateWork(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, ticket)
}

// PostTicketNote handles POST /maintenance/:id/notes
func (h *Handler) PostTicketNote(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.AddNoteReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	ticket, err := h.Service.AddTicketNote(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, ticket)
}

// PostTicketClose handles POST /maintenance/:id/close
func (h *Handler) PostTicketClose(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	ticket, err := h.Service.CloseTicket(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, ticket)
}
