package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
)

// AirportHandler serves the /airports resource.
type AirportHandler struct {
	Repo *repository.AirportRepo
}

func NewAirportHandler(repo *repository.AirportRepo) *AirportHandler {
	return &AirportHandler{Repo: repo}
}

type airportCreateReq struct {
	Name           string `json:"name"`
	ClosestBigCity uint64 `json:"closest_big_city"`
}

func (h *AirportHandler) Create(c echo.Context) error {
	var req airportCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, err := h.Repo.Create(c.Request().Context(), req.Name, req.ClosestBigCity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, airportViews.render(detailView, *a))
}

func (h *AirportHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airportViews.render(detailView, *a))
}

// List returns airports filtered by name substring and city id set.
func (h *AirportHandler) List(c echo.Context) error {
	f := repository.AirportFilter{
		Name:    c.QueryParam("name"),
		CityIDs: idSet(c.QueryParam("cities")),
		Page:    pageParams(c, 5),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": airportViews.renderAll(listView, items)})
}
