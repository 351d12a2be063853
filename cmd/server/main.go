package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avialine/airport-api/internal/config"
	"github.com/avialine/airport-api/internal/database"
	"github.com/avialine/airport-api/internal/geo"
	"github.com/avialine/airport-api/internal/handler"
	"github.com/avialine/airport-api/internal/middleware"
	"github.com/avialine/airport-api/internal/queue"
	"github.com/avialine/airport-api/internal/repository"
	"github.com/avialine/airport-api/internal/router"
	"github.com/avialine/airport-api/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	geoClient := geo.New(cfg.GeoAPIKey, cfg.GeoTimeout)
	if geoClient == nil {
		log.Println("geo lookup disabled: no API key configured")
	}

	publisher := service.NewPublisher(cfg.AMQPURL)
	if publisher == nil {
		log.Println("event publishing disabled: no AMQP URL configured")
	} else {
		go queue.StartOrderConsumer(cfg.AMQPURL)
	}

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)),
		Countries:     handler.NewCountryHandler(repository.NewCountryRepo(db)),
		Cities:        handler.NewCityHandler(repository.NewCityRepo(db, geoClient)),
		Airports:      handler.NewAirportHandler(repository.NewAirportRepo(db)),
		Routes:        handler.NewRouteHandler(repository.NewRouteRepo(db)),
		AirplaneTypes: handler.NewAirplaneTypeHandler(repository.NewAirplaneTypeRepo(db)),
		Airplanes:     handler.NewAirplaneHandler(repository.NewAirplaneRepo(db)),
		Crew:          handler.NewCrewHandler(repository.NewCrewRepo(db)),
		Flights:       handler.NewFlightHandler(repository.NewFlightRepo(db)),
		Orders:        handler.NewOrderHandler(repository.NewOrderRepo(db), publisher),
		Tickets:       handler.NewTicketHandler(repository.NewTicketRepo(db)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response caching disabled")
	}
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	router.Register(e, h, cfg.JWTSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
