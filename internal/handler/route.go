package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
)

// RouteHandler serves the /routes resource.
type RouteHandler struct {
	Repo *repository.RouteRepo
}

func NewRouteHandler(repo *repository.RouteRepo) *RouteHandler {
	return &RouteHandler{Repo: repo}
}

type routeWriteReq struct {
	Source      uint64 `json:"source"`
	Destination uint64 `json:"destination"`
	Distance    uint32 `json:"distance"`
}

func (h *RouteHandler) Create(c echo.Context) error {
	var req routeWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rt, err := h.Repo.Create(c.Request().Context(), req.Source, req.Destination, req.Distance)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, routeViews.render(detailView, *rt))
}

func (h *RouteHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req routeWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rt, err := h.Repo.Update(c.Request().Context(), id, req.Source, req.Destination, req.Distance)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, routeViews.render(detailView, *rt))
}

func (h *RouteHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rt, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, routeViews.render(detailView, *rt))
}

// List returns routes filtered by source/destination airport name.
func (h *RouteHandler) List(c echo.Context) error {
	f := repository.RouteFilter{
		Source:      c.QueryParam("source"),
		Destination: c.QueryParam("destination"),
		Page:        pageParams(c, 5),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": routeViews.renderAll(listView, items)})
}
