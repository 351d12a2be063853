package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/validator"
)

// FlightRow is a flight joined with everything the list and detail views
// need: route endpoints, airplane dimensions and the derived seat count.
// TicketsAvailable is computed at query time as capacity minus sold
// tickets, so it always agrees with the booking engine's bookkeeping.
type FlightRow struct {
	model.Flight
	SourceAirport      string
	DestinationAirport string
	SourceCity         string
	DestinationCity    string
	Distance           uint32
	AirplaneName       string
	AirplaneRows       uint32
	AirplaneSeatsInRow uint32
	AirplaneTypeName   string
	TicketsAvailable   uint32
	CrewNames          []string
}

// RouteName renders the "SourceCity - DestinationCity" display name.
func (f FlightRow) RouteName() string { return f.SourceCity + " - " + f.DestinationCity }

// AirplaneCapacity returns the derived cabin capacity.
func (f FlightRow) AirplaneCapacity() uint32 { return f.AirplaneRows * f.AirplaneSeatsInRow }

// FlightRepo persists flights and their crew assignments. The
// (route, airplane, departure, arrival) tuple is unique; both timestamps
// must be in the future, distinct, and ordered at write time.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// validate runs the write-time invariants shared by Create and Update.
func (r *FlightRepo) validate(ctx context.Context, routeID, airplaneID uint64, crewIDs []uint64, departure, arrival time.Time) error {
	now := time.Now().UTC()
	v := validator.New()
	v.CheckFuture("departure_time", departure, now)
	v.CheckFuture("arrival_time", arrival, now)
	v.CheckDistinctDates("departure_time", "arrival_time", departure, arrival)
	v.CheckOrdered("departure_time", departure, arrival)
	if err := v.Err(); err != nil {
		return err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM routes WHERE id = ?)`, routeID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return validator.FieldError("route", "route does not exist")
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM airplanes WHERE id = ?)`, airplaneID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return validator.FieldError("airplane", "airplane does not exist")
	}
	for _, crewID := range crewIDs {
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM crew WHERE id = ?)`, crewID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return validator.FieldError("crew", "crew member does not exist")
		}
	}
	return nil
}

// Create validates and inserts a flight together with its crew assignments
// in a single transaction.
func (r *FlightRepo) Create(ctx context.Context, routeID, airplaneID uint64, crewIDs []uint64, departure, arrival time.Time) (*FlightRow, error) {
	departure = departure.UTC()
	arrival = arrival.UTC()
	if err := r.validate(ctx, routeID, airplaneID, crewIDs, departure, arrival); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES (?, ?, ?, ?)`,
		routeID, airplaneID, departure, arrival)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("departure_time", "an identical flight is already scheduled")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := insertFlightCrewTx(ctx, tx, uint64(id), crewIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.GetByID(ctx, uint64(id))
}

// Update replaces a flight's fields and crew set under the same invariants
// as Create, atomically.
func (r *FlightRepo) Update(ctx context.Context, id, routeID, airplaneID uint64, crewIDs []uint64, departure, arrival time.Time) (*FlightRow, error) {
	departure = departure.UTC()
	arrival = arrival.UTC()
	if err := r.validate(ctx, routeID, airplaneID, crewIDs, departure, arrival); err != nil {
		return nil, err
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`UPDATE flights SET route_id = ?, airplane_id = ?, departure_time = ?, arrival_time = ? WHERE id = ?`,
		routeID, airplaneID, departure, arrival, id)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("departure_time", "an identical flight is already scheduled")
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM flight_crew WHERE flight_id = ?`, id); err != nil {
		return nil, err
	}
	if err := insertFlightCrewTx(ctx, tx, id, crewIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.GetByID(ctx, id)
}

// insertFlightCrewTx bulk inserts flight_crew join rows. An empty crew set
// is allowed and inserts nothing.
func insertFlightCrewTx(ctx context.Context, tx *sql.Tx, flightID uint64, crewIDs []uint64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	query := `INSERT INTO flight_crew (flight_id, crew_id) VALUES `
	args := make([]interface{}, 0, len(crewIDs)*2)
	for i, crewID := range crewIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, flightID, crewID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

const flightSelect = `SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
              sa.name, da.name, sc.name, dc.name, r.distance,
              a.name, a.` + "`rows`" + `, a.seats_in_row, t.name,
              a.` + "`rows`" + ` * a.seats_in_row - COUNT(tk.id)
       FROM flights f
       JOIN routes r ON r.id = f.route_id
       JOIN airports sa ON sa.id = r.source_id
       JOIN airports da ON da.id = r.destination_id
       JOIN cities sc ON sc.id = sa.city_id
       JOIN cities dc ON dc.id = da.city_id
       JOIN airplanes a ON a.id = f.airplane_id
       JOIN airplane_types t ON t.id = a.airplane_type_id
       LEFT JOIN tickets tk ON tk.flight_id = f.id`

const flightGroupBy = ` GROUP BY f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
              sa.name, da.name, sc.name, dc.name, r.distance, a.name, a.` + "`rows`" + `, a.seats_in_row, t.name`

func scanFlightRow(s interface{ Scan(...interface{}) error }, row *FlightRow) error {
	return s.Scan(&row.ID, &row.RouteID, &row.AirplaneID, &row.DepartureTime, &row.ArrivalTime,
		&row.SourceAirport, &row.DestinationAirport, &row.SourceCity, &row.DestinationCity, &row.Distance,
		&row.AirplaneName, &row.AirplaneRows, &row.AirplaneSeatsInRow, &row.AirplaneTypeName,
		&row.TicketsAvailable)
}

// GetByID fetches a flight with its joined details and crew names.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*FlightRow, error) {
	var row FlightRow
	err := scanFlightRow(r.db.QueryRowContext(ctx, flightSelect+` WHERE f.id = ?`+flightGroupBy, id), &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("flight")
		}
		return nil, err
	}
	rows := []*FlightRow{&row}
	if err := r.attachCrew(ctx, rows); err != nil {
		return nil, err
	}
	return &row, nil
}

// FlightFilter holds the optional list predicates for flights. Dates match
// on the calendar day; FromCityID/ToCityID match the route endpoints'
// closest big cities.
type FlightFilter struct {
	DepartureDate string // YYYY-MM-DD
	ArrivalDate   string // YYYY-MM-DD
	FromCityID    uint64
	ToCityID      uint64
	Page          Page
}

// List returns flights with joined details, ordered by departure time.
func (r *FlightRepo) List(ctx context.Context, f FlightFilter) ([]FlightRow, error) {
	var w whereBuilder
	if f.DepartureDate != "" {
		w.add("DATE(f.departure_time) = ?", f.DepartureDate)
	}
	if f.ArrivalDate != "" {
		w.add("DATE(f.arrival_time) = ?", f.ArrivalDate)
	}
	if f.FromCityID > 0 {
		w.add("sa.city_id = ?", f.FromCityID)
	}
	if f.ToCityID > 0 {
		w.add("da.city_id = ?", f.ToCityID)
	}
	lim, limArgs := f.Page.limitClause(2)

	q := flightSelect + w.clause() + flightGroupBy + ` ORDER BY f.departure_time` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]FlightRow, 0)
	for rows.Next() {
		var row FlightRow
		if err := scanFlightRow(rows, &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*FlightRow, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := r.attachCrew(ctx, refs); err != nil {
		return nil, err
	}
	return out, nil
}

// attachCrew populates CrewNames and CrewIDs for the given flights in one
// query, using an index map rather than a query per flight.
func (r *FlightRepo) attachCrew(ctx context.Context, flights []*FlightRow) error {
	if len(flights) == 0 {
		return nil
	}
	index := make(map[uint64]*FlightRow, len(flights))
	ids := make([]interface{}, 0, len(flights))
	placeholders := make([]string, 0, len(flights))
	for _, f := range flights {
		f.CrewNames = []string{}
		f.CrewIDs = []uint64{}
		index[f.ID] = f
		ids = append(ids, f.ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT fc.flight_id, c.id, c.first_name, c.last_name
	      FROM flight_crew fc
	      JOIN crew c ON c.id = fc.crew_id
	      WHERE fc.flight_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY fc.flight_id, c.last_name`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var flightID, crewID uint64
		var first, last string
		if err := rows.Scan(&flightID, &crewID, &first, &last); err != nil {
			return err
		}
		if f, ok := index[flightID]; ok {
			f.CrewIDs = append(f.CrewIDs, crewID)
			f.CrewNames = append(f.CrewNames, first+" "+last)
		}
	}
	return rows.Err()
}
