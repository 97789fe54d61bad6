package handler

import (
	"net/http"

	"assettrack/internal/tracker/model"

	"github.com/labstack/echo/v4"
)

// PostAsset handles POST /assets
func (h *Handler) PostAsset(c echo.Context) error {
	var req model.CreateAssetReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	asset, err := h.Service.CreateAsset(c.Request().Context(), actorFrom(c), &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusCreated, asset)
}

// GetAssets handles GET /assets
func (h *Handler) GetAssets(c echo.Context) error {
	filter := model.AssetFilter{
		Status: c.QueryParam("status"),
		Serial: c.QueryParam("serial"),
	}
	assets, err := h.Service.ListAssets(c.Request().Context(), actorFrom(c), branchFilter(c), filter)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, assets)
}

// GetAsset handles GET /assets/:id
func (h *Handler) GetAsset(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	asset, err := h.Service.GetAsset(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, asset)
}

// PutAsset handles PUT /assets/:id
func (h *Handler) PutAsset(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.UpdateAssetReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	asset, err := h.Service.UpdateAsset(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, asset)
}

// DeleteAsset handles DELETE /assets/:id
func (h *Handler) DeleteAsset(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	if err := h.Service.DeleteAsset(c.Request().Context(), actorFrom(c), id); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// PostAssetInstall handles POST /assets/:id/install
func (h *Handler) PostAssetInstall(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req model.InstallAssetReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	asset, err := h.Service.InstallAsset(c.Request().Context(), actorFrom(c), id, &req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, asset)
}

// PostAssetDismantle handles POST /assets/:id/dismantle
func (h *Handler) PostAssetDismantle(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	asset, err := h.Service.DismantleAsset(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, asset)
}
