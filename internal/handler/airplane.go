package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
)

// AirplaneTypeHandler serves the /airplane-types resource.
type AirplaneTypeHandler struct {
	Repo *repository.AirplaneTypeRepo
}

func NewAirplaneTypeHandler(repo *repository.AirplaneTypeRepo) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{Repo: repo}
}

type airplaneTypeCreateReq struct {
	Name string `json:"name"`
}

func (h *AirplaneTypeHandler) Create(c echo.Context) error {
	var req airplaneTypeCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, err := h.Repo.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, airplaneTypeViews.render(detailView, *t))
}

func (h *AirplaneTypeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airplaneTypeViews.render(detailView, *t))
}

func (h *AirplaneTypeHandler) List(c echo.Context) error {
	f := repository.AirplaneTypeFilter{
		Name: c.QueryParam("name"),
		Page: pageParams(c, 5),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": airplaneTypeViews.renderAll(listView, items)})
}

// AirplaneHandler serves the /airplanes resource.
type AirplaneHandler struct {
	Repo *repository.AirplaneRepo
}

func NewAirplaneHandler(repo *repository.AirplaneRepo) *AirplaneHandler {
	return &AirplaneHandler{Repo: repo}
}

type airplaneWriteReq struct {
	Name         string `json:"name"`
	Rows         uint32 `json:"rows"`
	SeatsInRow   uint32 `json:"seats_in_row"`
	AirplaneType uint64 `json:"airplane_type"`
}

func (h *AirplaneHandler) Create(c echo.Context) error {
	var req airplaneWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, err := h.Repo.Create(c.Request().Context(), req.Name, req.Rows, req.SeatsInRow, req.AirplaneType)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, airplaneViews.render(detailView, *a))
}

func (h *AirplaneHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req airplaneWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, err := h.Repo.Update(c.Request().Context(), id, req.Name, req.Rows, req.SeatsInRow, req.AirplaneType)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airplaneViews.render(detailView, *a))
}

func (h *AirplaneHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airplaneViews.render(detailView, *a))
}

// List returns airplanes filtered by name, type name and exact capacity.
func (h *AirplaneHandler) List(c echo.Context) error {
	f := repository.AirplaneFilter{
		Name:     c.QueryParam("name"),
		TypeName: c.QueryParam("airplane_type"),
		Capacity: uint32(queryID(c, "capacity")),
		Page:     pageParams(c, 5),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": airplaneViews.renderAll(listView, items)})
}
