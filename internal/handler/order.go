package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/middleware"
	"github.com/avialine/airport-api/internal/queue"
	"github.com/avialine/airport-api/internal/repository"
	"github.com/avialine/airport-api/internal/service"
)

// OrderHandler serves the /orders resource. Orders are always scoped to
// the authenticated caller.
type OrderHandler struct {
	Repo      *repository.OrderRepo
	Publisher *service.Publisher // nil disables event publishing
}

func NewOrderHandler(repo *repository.OrderRepo, pub *service.Publisher) *OrderHandler {
	return &OrderHandler{Repo: repo, Publisher: pub}
}

type orderCreateReq struct {
	Tickets []repository.TicketRequest `json:"tickets"`
}

// Create books all requested seats atomically. On success an
// order.confirmed event is published; publish failures are logged by the
// publisher and do not affect the response since the order is committed.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req orderCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	o, err := h.Repo.CreateWithTickets(c.Request().Context(), userID, req.Tickets)
	if err != nil {
		return writeError(c, err)
	}

	ev := queue.OrderConfirmedEvent{
		OrderID:     o.ID,
		UserID:      userID,
		ConfirmedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range o.Tickets {
		ev.Tickets = append(ev.Tickets, queue.EventTicket{
			Flight: t.FlightID,
			Route:  t.RouteName,
			Row:    t.Row,
			Seat:   t.Seat,
		})
	}
	_ = h.Publisher.PublishOrderConfirmed(c.Request().Context(), ev)

	return c.JSON(http.StatusCreated, orderViews.render(detailView, *o))
}

// Get returns one of the caller's orders; other users' orders read as 404.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	o, err := h.Repo.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orderViews.render(detailView, *o))
}

// List returns the caller's orders, optionally filtered by creation date.
func (h *OrderHandler) List(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f := repository.OrderFilter{
		Date: c.QueryParam("date"),
		Page: pageParams(c, 2),
	}
	items, err := h.Repo.ListByUser(c.Request().Context(), userID, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orderViews.renderAll(listView, items)})
}
