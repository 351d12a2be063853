package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
)

// CrewHandler serves the /crew resource.
type CrewHandler struct {
	Repo *repository.CrewRepo
}

func NewCrewHandler(repo *repository.CrewRepo) *CrewHandler {
	return &CrewHandler{Repo: repo}
}

type crewWriteReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *CrewHandler) Create(c echo.Context) error {
	var req crewWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, err := h.Repo.Create(c.Request().Context(), req.FirstName, req.LastName)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, crewViews.render(detailView, *m))
}

func (h *CrewHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req crewWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, err := h.Repo.Update(c.Request().Context(), id, req.FirstName, req.LastName)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, crewViews.render(detailView, *m))
}

func (h *CrewHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, crewViews.render(detailView, *m))
}

// List returns crew members filtered by first/last name substring.
func (h *CrewHandler) List(c echo.Context) error {
	f := repository.CrewFilter{
		FirstName: c.QueryParam("first_name"),
		LastName:  c.QueryParam("last_name"),
		Page:      pageParams(c, 10),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": crewViews.renderAll(listView, items)})
}
