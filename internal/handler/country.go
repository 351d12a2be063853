package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
)

// CountryHandler serves the /countries resource.
type CountryHandler struct {
	Repo *repository.CountryRepo
}

func NewCountryHandler(repo *repository.CountryRepo) *CountryHandler {
	return &CountryHandler{Repo: repo}
}

type countryCreateReq struct {
	Name string `json:"name"`
}

// Create registers a country from the reference list.
func (h *CountryHandler) Create(c echo.Context) error {
	var req countryCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	co, err := h.Repo.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, countryViews.render(detailView, *co))
}

// Get returns one country by id.
func (h *CountryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	co, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, countryViews.render(detailView, *co))
}

// List returns countries filtered by name substring.
func (h *CountryHandler) List(c echo.Context) error {
	f := repository.CountryFilter{
		Name: c.QueryParam("name"),
		Page: pageParams(c, 5),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": countryViews.renderAll(listView, items)})
}
