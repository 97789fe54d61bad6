package router

import (
	"assettrack/internal/tracker/handler"
	"assettrack/internal/tracker/policy"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			"x-user-id", "x-user-role", "x-branch-id", "x-department-id",
			"x-managed-departments", "x-department-name",
		},
	}))

	// Health Check
	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/api/v1")
	v1.Use(handler.RequestIDMiddleware)
	v1.Use(handler.ActorMiddleware)

	// Assets
	v1.POST("/assets", h.PostAsset, handler.RequireCapability(policy.CapAssetCreate))
	v1.GET("/assets", h.GetAssets, handler.RequireCapability(policy.CapAssetView))
	v1.GET("/assets/:id", h.GetAsset, handler.RequireCapability(policy.CapAssetView))
	v1.PUT("/assets/:id", h.PutAsset, handler.RequireCapability(policy.CapAssetEdit))
	v1.DELETE("/assets/:id", h.DeleteAsset, handler.RequireCapability(policy.CapAssetDelete))
	v1.POST("/assets/:id/install", h.PostAssetInstall, handler.RequireCapability(policy.CapAssetEdit))
	v1.POST("/assets/:id/dismantle", h.PostAssetDismantle, handler.RequireCapability(policy.CapAssetEdit))

	// Assignments
	v1.POST("/assignments", h.PostAssignment, handler.RequireCapability(policy.CapAssignmentCreate))
	v1.GET("/assignments", h.GetAssignments, handler.RequireCapability(policy.CapAssignmentView))
	v1.POST("/assignments/:id/return", h.PostAssignmentReturn, handler.RequireCapability(policy.CapAssignmentEdit))
	v1.DELETE("/assignments/:id", h.DeleteAssignment, handler.RequireCapability(policy.CapAssignmentDelete))
	v1.PUT("/assignments/bulk/recipient", h.PutBulkRecipient, handler.RequireCapability(policy.CapAssignmentEdit))
	v1.DELETE("/assignments/bulk/recipient", h.DeleteBulkRecipient, handler.RequireCapability(policy.CapAssignmentDelete))

	// Maintenance tickets
	v1.POST("/maintenance", h.PostTicket, handler.RequireCapability(policy.CapTicketCreate))
	v1.GET("/maintenance", h.GetTickets, handler.RequireCapability(policy.CapTicketView))
	v1.GET("/maintenance/:id", h.GetTicket, handler.RequireCapability(policy.CapTicketView))
	v1.POST("/maintenance/:id/accept", h.PostTicketAccept, handler.RequireCapability(policy.CapTicketEdit))
	v1.POST("/maintenance/:id/reject", h.PostTicketReject, handler.RequireCapability(policy.CapTicketEdit))
	v1.POST("/maintenance/:id/start", h.PostTicketStart, handler.RequireCapability(policy.CapTicketEdit))
	v1.POST("/maintenance/:id/work", h.PostTicketWork, handler.RequireCapability(policy.CapTicketEdit))
	v1.POST("/maintenance/:id/notes", h.PostTicketNote, handler.RequireCapability(policy.CapTicketEdit))
	v1.POST("/maintenance/:id/close", h.PostTicketClose, handler.RequireCapability(policy.CapTicketEdit))

	// Transfers
	v1.POST("/transfers", h.PostTransfer, handler.RequireCapability(policy.CapTransferCreate))
	v1.GET("/transfers", h.GetTransfers, handler.RequireCapability(policy.CapTransferView))
	v1.GET("/transfers/:id", h.GetTransfer, handler.RequireCapability(policy.CapTransferView))
	v1.PUT("/transfers/:id", h.PutTransfer, handler.RequireCapability(policy.CapTransferEdit))
	v1.DELETE("/transfers/:id", h.DeleteTransfer, handler.RequireCapability(policy.CapTransferDelete))
	v1.POST("/transfers/:id/send", h.PostTransferSend, handler.RequireCapability(policy.CapTransferEdit))
	v1.POST("/transfers/:id/manager-approval", h.PostTransferManagerApproval, handler.RequireCapability(policy.CapTransferEdit))
	v1.POST("/transfers/:id/accept", h.PostTransferAccept, handler.RequireCapability(policy.CapTransferEdit))
	v1.POST("/transfers/:id/reject", h.PostTransferReject, handler.RequireCapability(policy.CapTransferEdit))
}
