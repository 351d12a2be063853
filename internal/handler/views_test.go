package handler

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/repository"
)

func TestFlightViewShapes(t *testing.T) {
	dep := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	row := repository.FlightRow{
		Flight: model.Flight{
			ID:            11,
			RouteID:       3,
			AirplaneID:    4,
			DepartureTime: dep,
			ArrivalTime:   dep.Add(150 * time.Minute),
		},
		SourceAirport:      "Charles de Gaulle",
		DestinationAirport: "Tegel",
		SourceCity:         "Paris",
		DestinationCity:    "Berlin",
		Distance:           878,
		AirplaneName:       "Airbus A320",
		AirplaneRows:       25,
		AirplaneSeatsInRow: 6,
		AirplaneTypeName:   "Narrow Body",
		TicketsAvailable:   148,
		CrewNames:          []string{"Ada Laurent"},
	}

	list, ok := flightViews.render(listView, row).(flightListViewT)
	require.True(t, ok)
	assert.Equal(t, "Paris - Berlin", list.Route)
	assert.Equal(t, uint32(150), list.AirplaneCapacity)
	assert.Equal(t, uint32(148), list.TicketsAvailable)

	detail, ok := flightViews.render(detailView, row).(flightDetailViewT)
	require.True(t, ok)
	assert.Equal(t, "Charles de Gaulle", detail.Route.Source)
	assert.Equal(t, uint32(878), detail.Route.Distance)
	assert.Equal(t, "Narrow Body", detail.Airplane.AirplaneType)
	assert.InDelta(t, 2.5, detail.DurationHours, 1e-9)
	assert.Equal(t, []string{"Ada Laurent"}, detail.Crew)
}

func TestFlightDetailViewEmptyCrew(t *testing.T) {
	detail, ok := flightViews.render(detailView, repository.FlightRow{}).(flightDetailViewT)
	require.True(t, ok)
	assert.NotNil(t, detail.Crew, "crew should serialize as [] rather than null")
}

func TestTicketViewShapes(t *testing.T) {
	dep := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	row := repository.TicketRow{
		Ticket:        model.Ticket{ID: 9, Row: 2, Seat: 3, FlightID: 11},
		RouteName:     "Paris - Berlin",
		DepartureTime: sql.NullTime{Time: dep, Valid: true},
	}

	list, ok := ticketViews.render(listView, row).(ticketListViewT)
	require.True(t, ok)
	assert.Equal(t, uint64(11), list.Flight)

	detail, ok := ticketViews.render(detailView, row).(ticketDetailViewT)
	require.True(t, ok)
	assert.Equal(t, "Paris - Berlin", detail.Route)
	require.NotNil(t, detail.DepartureTime)
	assert.Equal(t, dep, *detail.DepartureTime)
	assert.Nil(t, detail.ArrivalTime)
}

func TestCityViewShapes(t *testing.T) {
	row := repository.CityRow{
		City:        model.City{ID: 2, Name: "Paris", CountryID: 1},
		CountryName: "France",
	}

	list, ok := cityViews.render(listView, row).(cityListViewT)
	require.True(t, ok)
	assert.Equal(t, "France", list.Country)

	detail, ok := cityViews.render(detailView, row).(cityDetailViewT)
	require.True(t, ok)
	assert.Equal(t, uint64(1), detail.Country.ID)
	assert.Equal(t, "France", detail.Country.Name)
}

func TestRenderAll(t *testing.T) {
	items := []model.Country{{ID: 1, Name: "France"}, {ID: 2, Name: "Ukraine"}}
	out := countryViews.renderAll(listView, items)
	require.Len(t, out, 2)
	assert.Equal(t, countryView{ID: 2, Name: "Ukraine"}, out[1])
}
