package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avialine/airport-api/internal/model"
)

// TicketRow is a ticket joined with the flight details needed by the list
// and detail views.
type TicketRow struct {
	model.Ticket
	RouteName          string
	AirplaneRows       uint32
	AirplaneSeatsInRow uint32
	DepartureTime      sql.NullTime
	ArrivalTime        sql.NullTime
}

// TicketRepo reads committed tickets. Tickets are created only through the
// booking engine (OrderRepo), never directly, so this repository exposes
// no write methods.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketSelect = "SELECT tk.id, tk.`row`, tk.seat, tk.flight_id, tk.order_id," +
	` CONCAT(sc.name, ' - ', dc.name), a.` + "`rows`" + `, a.seats_in_row,
	  f.departure_time, f.arrival_time
	  FROM tickets tk
	  JOIN flights f ON f.id = tk.flight_id
	  JOIN routes r ON r.id = f.route_id
	  JOIN airports sa ON sa.id = r.source_id
	  JOIN airports da ON da.id = r.destination_id
	  JOIN cities sc ON sc.id = sa.city_id
	  JOIN cities dc ON dc.id = da.city_id
	  JOIN airplanes a ON a.id = f.airplane_id`

func scanTicketRow(s interface{ Scan(...interface{}) error }, row *TicketRow) error {
	return s.Scan(&row.ID, &row.Row, &row.Seat, &row.FlightID, &row.OrderID,
		&row.RouteName, &row.AirplaneRows, &row.AirplaneSeatsInRow,
		&row.DepartureTime, &row.ArrivalTime)
}

// GetByID fetches a ticket with its flight details.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*TicketRow, error) {
	var row TicketRow
	err := scanTicketRow(r.db.QueryRowContext(ctx, ticketSelect+` WHERE tk.id = ?`, id), &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("ticket")
		}
		return nil, err
	}
	return &row, nil
}

// TicketFilter holds the optional list predicates for tickets.
type TicketFilter struct {
	FlightIDs []uint64
	Page      Page
}

// List returns tickets, optionally restricted to a flight-id set, ordered
// by flight then seat position.
func (r *TicketRepo) List(ctx context.Context, f TicketFilter) ([]TicketRow, error) {
	var w whereBuilder
	w.addIn("tk.flight_id", f.FlightIDs)
	lim, limArgs := f.Page.limitClause(5)

	q := ticketSelect + w.clause() + " ORDER BY tk.flight_id, tk.`row`, tk.seat" + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TicketRow, 0)
	for rows.Next() {
		var row TicketRow
		if err := scanTicketRow(rows, &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
