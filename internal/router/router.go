// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/handler"
	"github.com/avialine/airport-api/internal/middleware"
)

// Handlers collects every HTTP handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Countries     *handler.CountryHandler
	Cities        *handler.CityHandler
	Airports      *handler.AirportHandler
	Routes        *handler.RouteHandler
	AirplaneTypes *handler.AirplaneTypeHandler
	Airplanes     *handler.AirplaneHandler
	Crew          *handler.CrewHandler
	Flights       *handler.FlightHandler
	Orders        *handler.OrderHandler
	Tickets       *handler.TicketHandler
}

// Register mounts all routes. /healthz and /v1/auth token endpoints are
// public; everything else requires a valid access token. Reference-data
// writes additionally require the ADMIN role, mirroring
// "admins write, any authenticated user reads". Orders and tickets are
// available to every authenticated user.
//
// cache applies only to reference-data reads, which render identically
// for every caller. User-scoped endpoints (orders, me) must never be
// cached. Pass nil to disable.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	e.GET("/healthz", handler.Health)

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/refresh-access", h.Auth.RefreshAccess)

	// Any authenticated user.
	v1 := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleAdmin, handler.RoleCustomer),
	)
	v1.POST("/auth/logout", h.Auth.Logout)
	v1.GET("/me", h.Auth.Me)

	v1.GET("/countries", h.Countries.List, cache)
	v1.GET("/countries/:id", h.Countries.Get, cache)
	v1.GET("/cities", h.Cities.List, cache)
	v1.GET("/cities/:id", h.Cities.Get, cache)
	v1.GET("/airports", h.Airports.List, cache)
	v1.GET("/airports/:id", h.Airports.Get, cache)
	v1.GET("/routes", h.Routes.List, cache)
	v1.GET("/routes/:id", h.Routes.Get, cache)
	v1.GET("/airplane-types", h.AirplaneTypes.List, cache)
	v1.GET("/airplane-types/:id", h.AirplaneTypes.Get, cache)
	v1.GET("/airplanes", h.Airplanes.List, cache)
	v1.GET("/airplanes/:id", h.Airplanes.Get, cache)
	v1.GET("/crew", h.Crew.List, cache)
	v1.GET("/crew/:id", h.Crew.Get, cache)
	v1.GET("/flights", h.Flights.List)
	v1.GET("/flights/:id", h.Flights.Get)
	v1.GET("/tickets", h.Tickets.List)
	v1.GET("/tickets/:id", h.Tickets.Get)

	v1.GET("/orders", h.Orders.List)
	v1.GET("/orders/:id", h.Orders.Get)
	v1.POST("/orders", h.Orders.Create)

	// Reference-data writes, ADMIN only.
	admin := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleAdmin),
	)
	admin.POST("/countries", h.Countries.Create)
	admin.POST("/cities", h.Cities.Create)
	admin.POST("/airports", h.Airports.Create)
	admin.POST("/routes", h.Routes.Create)
	admin.PUT("/routes/:id", h.Routes.Update)
	admin.POST("/airplane-types", h.AirplaneTypes.Create)
	admin.POST("/airplanes", h.Airplanes.Create)
	admin.PUT("/airplanes/:id", h.Airplanes.Update)
	admin.POST("/crew", h.Crew.Create)
	admin.PUT("/crew/:id", h.Crew.Update)
	admin.POST("/flights", h.Flights.Create)
	admin.PUT("/flights/:id", h.Flights.Update)
}
