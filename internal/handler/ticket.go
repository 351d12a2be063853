package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
)

// TicketHandler serves the read-only /tickets resource. Tickets are
// created exclusively through order creation.
type TicketHandler struct {
	Repo *repository.TicketRepo
}

func NewTicketHandler(repo *repository.TicketRepo) *TicketHandler {
	return &TicketHandler{Repo: repo}
}

func (h *TicketHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ticketViews.render(detailView, *t))
}

// List returns tickets filtered by a comma-separated flight id set.
func (h *TicketHandler) List(c echo.Context) error {
	f := repository.TicketFilter{
		FlightIDs: idSet(c.QueryParam("flights")),
		Page:      pageParams(c, 5),
	}
	items, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": ticketViews.renderAll(listView, items)})
}
