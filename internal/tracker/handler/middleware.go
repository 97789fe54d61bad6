package handler

import (
	"net/http"
	"strings"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/policy"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	actorContextKey = "actor"
	capsContextKey  = "capabilities"
)

func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := c.Request().Header.Get(echo.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, reqID)
		return next(c)
	}
}

// ActorMiddleware builds the request actor from the trusted gateway headers
// and resolves its capability set once. Requests without an identity are
// rejected here.
func ActorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header
		userID := strings.TrimSpace(h.Get("x-user-id"))
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, model.ErrorResponse{
				Error: model.ErrorDetail{Code: "unauthorized", Message: "missing x-user-id"},
			})
		}

		actor := &model.Actor{
			ID:         userID,
			Role:       strings.ToLower(strings.TrimSpace(h.Get("x-user-role"))),
			Department: strings.TrimSpace(h.Get("x-department-name")),
		}
		actor.BranchID = parseHeaderID(h.Get("x-branch-id"))
		actor.DepartmentID = parseHeaderID(h.Get("x-department-id"))
		for _, part := range strings.Split(h.Get("x-managed-departments"), ",") {
			if id := parseHeaderID(part); !id.IsZero() {
				actor.ManagedDepartments = append(actor.ManagedDepartments, id)
			}
		}

		c.Set(actorContextKey, actor)
		c.Set(capsContextKey, policy.ResolveCapabilities(actor))
		return next(c)
	}
}

// RequireCapability is a per-route gate over the resolved capability set.
func RequireCapability(cap policy.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caps, ok := c.Get(capsContextKey).(policy.CapabilitySet)
			if !ok || !caps.Has(cap) {
				return c.JSON(http.StatusForbidden, model.ErrorResponse{
					Error: model.ErrorDetail{Code: "forbidden", Message: "missing capability: " + string(cap)},
				})
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) *model.Actor {
	actor, _ := c.Get(actorContextKey).(*model.Actor)
	return actor
}

func parseHeaderID(raw string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}
