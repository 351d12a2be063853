package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
)

// CityHandler serves the /cities resource.
type CityHandler struct {
	Repo *repository.CityRepo
}

func NewCityHandler(repo *repository.CityRepo) *CityHandler {
	return &CityHandler{Repo: repo}
}

type cityCreateReq struct {
	Name    string `json:"name"`
	Country uint64 `json:"country"`
}

// Create validates and inserts a city, including the external existence
// check when the geo collaborator is configured.
func (h *CityHandler) Create(c echo.Context) error {
	var req cityCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ci, err := h.Repo.Create(c.Request().Context(), req.Name, req.Country)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cityViews.render(detailView, *ci))
}

// Get returns one city with its country embedded.
func (h *CityHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ci, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cityViews.render(detailView, *ci))
}

// List returns cities filtered by name substring and country id set.
func (h *CityHandler) List(c echo.Context) error {
	f := repository.CityFilter{
		Name:       c.QueryParam("name"),
		CountryIDs: idSet(c.QueryParam("countries")),
		Page:       pageParams(c, 5),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cityViews.renderAll(listView, items)})
}
