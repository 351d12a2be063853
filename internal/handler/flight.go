package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
)

// FlightHandler serves the /flights resource.
type FlightHandler struct {
	Repo *repository.FlightRepo
}

func NewFlightHandler(repo *repository.FlightRepo) *FlightHandler {
	return &FlightHandler{Repo: repo}
}

type flightWriteReq struct {
	Route         uint64    `json:"route"`
	Airplane      uint64    `json:"airplane"`
	Crew          []uint64  `json:"crew"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

func (h *FlightHandler) Create(c echo.Context) error {
	var req flightWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f, err := h.Repo.Create(c.Request().Context(),
		req.Route, req.Airplane, req.Crew, req.DepartureTime, req.ArrivalTime)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, flightViews.render(detailView, *f))
}

func (h *FlightHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req flightWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f, err := h.Repo.Update(c.Request().Context(),
		id, req.Route, req.Airplane, req.Crew, req.DepartureTime, req.ArrivalTime)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flightViews.render(detailView, *f))
}

func (h *FlightHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	f, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flightViews.render(detailView, *f))
}

// List returns flights filtered by exact departure/arrival date and by
// source/destination city.
func (h *FlightHandler) List(c echo.Context) error {
	f := repository.FlightFilter{
		DepartureDate: c.QueryParam("departure_date"),
		ArrivalDate:   c.QueryParam("arrival_date"),
		FromCityID:    queryID(c, "from"),
		ToCityID:      queryID(c, "to"),
		Page:          pageParams(c, 2),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": flightViews.renderAll(listView, items)})
}
