package model

import "time"

// Flight is a scheduled instance of a Route flown by a specific Airplane.
// The (route, airplane, departure_time, arrival_time) tuple is unique.
// Both timestamps must be in the future at creation time, must differ,
// and departure must precede arrival.
//
// Fields:
//  ID            – primary key identifier.
//  RouteID       – route being flown.
//  AirplaneID    – aircraft assigned to the flight.
//  CrewIDs       – assigned crew members (many-to-many, may be empty).
//  DepartureTime – scheduled departure, stored in UTC.
//  ArrivalTime   – scheduled arrival, stored in UTC.
type Flight struct {
	ID            uint64    // flights.id
	RouteID       uint64    // flights.route_id
	AirplaneID    uint64    // flights.airplane_id
	CrewIDs       []uint64  // flight_crew join rows
	DepartureTime time.Time // flights.departure_time
	ArrivalTime   time.Time // flights.arrival_time
}

// Duration returns the flight duration in hours.
func (f Flight) Duration() float64 {
	return f.ArrivalTime.Sub(f.DepartureTime).Hours()
}

// Order is a user's booking transaction. It owns its tickets exclusively;
// creating an order and its tickets is a single atomic write.
type Order struct {
	ID        uint64    // orders.id
	UserID    uint64    // orders.user_id
	CreatedAt time.Time // orders.created_at
}

// Ticket claims one seat (row, seat) of one Flight on behalf of an Order.
// The (flight, row, seat) triple is unique: the database constraint, not
// application locking, is what prevents double booking under concurrency.
type Ticket struct {
	ID       uint64 // tickets.id
	Row      uint32 // tickets.row
	Seat     uint32 // tickets.seat
	FlightID uint64 // tickets.flight_id
	OrderID  uint64 // tickets.order_id
}
