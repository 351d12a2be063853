package handler

import (
	"time"

	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/repository"
)

// Every resource renders in one of two shapes: a flattened list shape
// referencing relations by name, and a detail shape embedding them. The
// shape is chosen by looking the operation kind up in the resource's
// viewTable, so handlers never branch on shape at runtime.

type viewKind int

const (
	listView viewKind = iota
	detailView
)

// viewTable maps an operation kind to the function producing that shape.
type viewTable[T any] map[viewKind]func(T) any

func (t viewTable[T]) render(k viewKind, v T) any { return t[k](v) }

func (t viewTable[T]) renderAll(k viewKind, items []T) []any {
	out := make([]any, 0, len(items))
	f := t[k]
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}

// ----- countries -----

type countryView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func newCountryView(co model.Country) countryView {
	return countryView{ID: co.ID, Name: co.Name}
}

var countryViews = viewTable[model.Country]{
	listView:   func(co model.Country) any { return newCountryView(co) },
	detailView: func(co model.Country) any { return newCountryView(co) },
}

// ----- cities -----

type cityListViewT struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type cityDetailViewT struct {
	ID      uint64      `json:"id"`
	Name    string      `json:"name"`
	Country countryView `json:"country"`
}

var cityViews = viewTable[repository.CityRow]{
	listView: func(ci repository.CityRow) any {
		return cityListViewT{ID: ci.ID, Name: ci.Name, Country: ci.CountryName}
	},
	detailView: func(ci repository.CityRow) any {
		return cityDetailViewT{
			ID:      ci.ID,
			Name:    ci.Name,
			Country: countryView{ID: ci.CountryID, Name: ci.CountryName},
		}
	},
}

// ----- airports -----

type airportListViewT struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type airportDetailViewT struct {
	ID             uint64        `json:"id"`
	Name           string        `json:"name"`
	ClosestBigCity cityListViewT `json:"closest_big_city"`
}

var airportViews = viewTable[repository.AirportRow]{
	listView: func(a repository.AirportRow) any {
		return airportListViewT{ID: a.ID, Name: a.Name, ClosestBigCity: a.CityName}
	},
	detailView: func(a repository.AirportRow) any {
		return airportDetailViewT{
			ID:   a.ID,
			Name: a.Name,
			ClosestBigCity: cityListViewT{
				ID:      a.CityID,
				Name:    a.CityName,
				Country: a.CountryName,
			},
		}
	},
}

// ----- routes -----

type routeListViewT struct {
	ID          uint64 `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    uint32 `json:"distance"`
}

type routeDetailViewT struct {
	ID          uint64           `json:"id"`
	Source      airportListViewT `json:"source"`
	Destination airportListViewT `json:"destination"`
	Distance    uint32           `json:"distance"`
}

var routeViews = viewTable[repository.RouteRow]{
	listView: func(rt repository.RouteRow) any {
		return routeListViewT{
			ID:          rt.ID,
			Source:      rt.SourceName,
			Destination: rt.DestinationName,
			Distance:    rt.Distance,
		}
	},
	detailView: func(rt repository.RouteRow) any {
		return routeDetailViewT{
			ID: rt.ID,
			Source: airportListViewT{
				ID: rt.SourceID, Name: rt.SourceName, ClosestBigCity: rt.SourceCity,
			},
			Destination: airportListViewT{
				ID: rt.DestinationID, Name: rt.DestinationName, ClosestBigCity: rt.DestinationCity,
			},
			Distance: rt.Distance,
		}
	},
}

// ----- airplane types -----

type airplaneTypeViewT struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	AirplaneCount uint32 `json:"airplane_count"`
}

var airplaneTypeViews = viewTable[repository.AirplaneTypeRow]{
	listView: func(t repository.AirplaneTypeRow) any {
		return airplaneTypeViewT{ID: t.ID, Name: t.Name, AirplaneCount: t.AirplaneCount}
	},
	detailView: func(t repository.AirplaneTypeRow) any {
		return airplaneTypeViewT{ID: t.ID, Name: t.Name, AirplaneCount: t.AirplaneCount}
	},
}

// ----- airplanes -----

type airplaneListViewT struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Rows         uint32 `json:"rows"`
	SeatsInRow   uint32 `json:"seats_in_row"`
	Capacity     uint32 `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
}

type airplaneDetailViewT struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Rows         uint32            `json:"rows"`
	SeatsInRow   uint32            `json:"seats_in_row"`
	Capacity     uint32            `json:"capacity"`
	AirplaneType airplaneTypeViewT `json:"airplane_type"`
}

var airplaneViews = viewTable[repository.AirplaneRow]{
	listView: func(a repository.AirplaneRow) any {
		return airplaneListViewT{
			ID:           a.ID,
			Name:         a.Name,
			Rows:         a.Rows,
			SeatsInRow:   a.SeatsInRow,
			Capacity:     a.Capacity(),
			AirplaneType: a.TypeName,
		}
	},
	detailView: func(a repository.AirplaneRow) any {
		return airplaneDetailViewT{
			ID:           a.ID,
			Name:         a.Name,
			Rows:         a.Rows,
			SeatsInRow:   a.SeatsInRow,
			Capacity:     a.Capacity(),
			AirplaneType: airplaneTypeViewT{ID: a.AirplaneTypeID, Name: a.TypeName},
		}
	},
}

// ----- crew -----

type crewViewT struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func newCrewView(m model.Crew) crewViewT {
	return crewViewT{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, FullName: m.FullName()}
}

var crewViews = viewTable[model.Crew]{
	listView:   func(m model.Crew) any { return newCrewView(m) },
	detailView: func(m model.Crew) any { return newCrewView(m) },
}

// ----- flights -----

type flightListViewT struct {
	ID               uint64    `json:"id"`
	Route            string    `json:"route"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	AirplaneName     string    `json:"airplane_name"`
	AirplaneCapacity uint32    `json:"airplane_capacity"`
	TicketsAvailable uint32    `json:"tickets_available"`
}

type flightDetailViewT struct {
	ID               uint64            `json:"id"`
	Route            routeListViewT    `json:"route"`
	Airplane         airplaneListViewT `json:"airplane"`
	DepartureTime    time.Time         `json:"departure_time"`
	ArrivalTime      time.Time         `json:"arrival_time"`
	DurationHours    float64           `json:"duration_hours"`
	Crew             []string          `json:"crew"`
	TicketsAvailable uint32            `json:"tickets_available"`
}

var flightViews = viewTable[repository.FlightRow]{
	listView: func(f repository.FlightRow) any {
		return flightListViewT{
			ID:               f.ID,
			Route:            f.RouteName(),
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
			AirplaneName:     f.AirplaneName,
			AirplaneCapacity: f.AirplaneCapacity(),
			TicketsAvailable: f.TicketsAvailable,
		}
	},
	detailView: func(f repository.FlightRow) any {
		crew := f.CrewNames
		if crew == nil {
			crew = []string{}
		}
		return flightDetailViewT{
			ID: f.ID,
			Route: routeListViewT{
				ID:          f.RouteID,
				Source:      f.SourceAirport,
				Destination: f.DestinationAirport,
				Distance:    f.Distance,
			},
			Airplane: airplaneListViewT{
				ID:           f.AirplaneID,
				Name:         f.AirplaneName,
				Rows:         f.AirplaneRows,
				SeatsInRow:   f.AirplaneSeatsInRow,
				Capacity:     f.AirplaneCapacity(),
				AirplaneType: f.AirplaneTypeName,
			},
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
			DurationHours:    f.Duration(),
			Crew:             crew,
			TicketsAvailable: f.TicketsAvailable,
		}
	},
}

// ----- orders -----

type orderTicketViewT struct {
	ID     uint64 `json:"id"`
	Row    uint32 `json:"row"`
	Seat   uint32 `json:"seat"`
	Flight uint64 `json:"flight"`
	Route  string `json:"route"`
}

type orderViewT struct {
	ID        uint64             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Tickets   []orderTicketViewT `json:"tickets"`
}

func newOrderView(o repository.OrderRow) orderViewT {
	tickets := make([]orderTicketViewT, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, orderTicketViewT{
			ID:     t.ID,
			Row:    t.Row,
			Seat:   t.Seat,
			Flight: t.FlightID,
			Route:  t.RouteName,
		})
	}
	return orderViewT{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}

var orderViews = viewTable[repository.OrderRow]{
	listView:   func(o repository.OrderRow) any { return newOrderView(o) },
	detailView: func(o repository.OrderRow) any { return newOrderView(o) },
}

// ----- tickets -----

type ticketListViewT struct {
	ID     uint64 `json:"id"`
	Row    uint32 `json:"row"`
	Seat   uint32 `json:"seat"`
	Flight uint64 `json:"flight"`
}

type ticketDetailViewT struct {
	ID            uint64     `json:"id"`
	Row           uint32     `json:"row"`
	Seat          uint32     `json:"seat"`
	Flight        uint64     `json:"flight"`
	Route         string     `json:"route"`
	DepartureTime *time.Time `json:"departure_time,omitempty"`
	ArrivalTime   *time.Time `json:"arrival_time,omitempty"`
}

var ticketViews = viewTable[repository.TicketRow]{
	listView: func(t repository.TicketRow) any {
		return ticketListViewT{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID}
	},
	detailView: func(t repository.TicketRow) any {
		v := ticketDetailViewT{
			ID:     t.ID,
			Row:    t.Row,
			Seat:   t.Seat,
			Flight: t.FlightID,
			Route:  t.RouteName,
		}
		if t.DepartureTime.Valid {
			dt := t.DepartureTime.Time
			v.DepartureTime = &dt
		}
		if t.ArrivalTime.Valid {
			at := t.ArrivalTime.Time
			v.ArrivalTime = &at
		}
		return v
	},
}
