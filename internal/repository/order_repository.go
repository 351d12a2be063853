package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/validator"
)

// TicketRequest is one seat claim inside an order creation request.
type TicketRequest struct {
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
	FlightID uint64 `json:"flight"`
}

// OrderTicket is a ticket joined with its flight's route display name.
type OrderTicket struct {
	model.Ticket
	RouteName string
}

// OrderRow is an order with its tickets populated.
type OrderRow struct {
	model.Order
	Tickets []OrderTicket
}

// OrderRepo is the booking engine: it creates an Order together with its
// Tickets as one atomic unit, and lists orders scoped to their owner.
//
// Seat uniqueness per flight is ultimately enforced by the uq_ticket_seat
// UNIQUE key, not by application locking: of two concurrent attempts on
// the same (flight, row, seat) exactly one insert succeeds and the loser's
// whole transaction is rolled back and reported as a conflict.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// flightDims caches airplane dimensions per flight within one booking.
type flightDims struct {
	rows       uint32
	seatsInRow uint32
}

// CreateWithTickets opens a single transaction, creates the order, then
// validates and inserts every requested ticket. Any failure (unknown
// flight, a seat outside the airplane's bounds, a seat already taken)
// rolls the entire order back; nothing is persisted.
func (r *OrderRepo) CreateWithTickets(ctx context.Context, userID uint64, reqs []TicketRequest) (*OrderRow, error) {
	if len(reqs) == 0 {
		return nil, validator.FieldError("tickets", "at least one ticket is required")
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

	res, err := tx.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, userID)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	dims := make(map[uint64]flightDims)
	for _, req := range reqs {
		d, ok := dims[req.FlightID]
		if !ok {
			d, err = flightDimsTx(ctx, tx, req.FlightID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil, validator.FieldError("flight", "flight does not exist")
				}
				return nil, err
			}
			dims[req.FlightID] = d
		}

		v := validator.New()
		v.CheckSeatBound("row", req.Row, d.rows)
		v.CheckSeatBound("seat", req.Seat, d.seatsInRow)
		if err := v.Err(); err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO tickets (`row`, seat, flight_id, order_id) VALUES (?, ?, ?, ?)",
			req.Row, req.Seat, req.FlightID, orderID)
		if err != nil {
			if isDuplicate(err) {
				return nil, conflict("seat",
					fmt.Sprintf("seat %d in row %d on flight %d is already taken", req.Seat, req.Row, req.FlightID))
			}
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.GetByIDForUser(ctx, uint64(orderID), userID)
}

// flightDimsTx loads the referenced flight's airplane dimensions inside
// the booking transaction.
func flightDimsTx(ctx context.Context, tx *sql.Tx, flightID uint64) (flightDims, error) {
	const q = "SELECT a.`rows`, a.seats_in_row FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE f.id = ?"
	var d flightDims
	if err := tx.QueryRowContext(ctx, q, flightID).Scan(&d.rows, &d.seatsInRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d, notFound("flight")
		}
		return d, err
	}
	return d, nil
}

// GetByIDForUser returns a single order with its tickets, enforcing
// ownership in the WHERE clause: another user's order reads as not found.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*OrderRow, error) {
	var row OrderRow
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE id = ? AND user_id = ?`,
		orderID, userID).Scan(&row.ID, &row.UserID, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("order")
		}
		return nil, err
	}
	rows := []*OrderRow{&row}
	if err := r.attachTickets(ctx, rows); err != nil {
		return nil, err
	}
	return &row, nil
}

// OrderFilter holds the optional list predicates for orders. Date matches
// the creation calendar day.
type OrderFilter struct {
	Date string // YYYY-MM-DD
	Page Page
}

// ListByUser returns the caller's orders with tickets populated, ordered
// by creation time.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64, f OrderFilter) ([]OrderRow, error) {
	var w whereBuilder
	w.add("user_id = ?", userID)
	if f.Date != "" {
		w.add("DATE(created_at) = ?", f.Date)
	}
	lim, limArgs := f.Page.limitClause(2)

	q := `SELECT id, user_id, created_at FROM orders` + w.clause() + ` ORDER BY created_at` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderRow, 0)
	for rows.Next() {
		var o OrderRow
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*OrderRow, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := r.attachTickets(ctx, refs); err != nil {
		return nil, err
	}
	return out, nil
}

// attachTickets populates tickets for the given orders in a single query.
func (r *OrderRepo) attachTickets(ctx context.Context, orders []*OrderRow) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[uint64]*OrderRow, len(orders))
	ids := make([]interface{}, 0, len(orders))
	placeholders := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Tickets = []OrderTicket{}
		index[o.ID] = o
		ids = append(ids, o.ID)
		placeholders = append(placeholders, "?")
	}
	q := "SELECT tk.id, tk.`row`, tk.seat, tk.flight_id, tk.order_id, CONCAT(sc.name, ' - ', dc.name)" + `
	      FROM tickets tk
	      JOIN flights f ON f.id = tk.flight_id
	      JOIN routes r ON r.id = f.route_id
	      JOIN airports sa ON sa.id = r.source_id
	      JOIN airports da ON da.id = r.destination_id
	      JOIN cities sc ON sc.id = sa.city_id
	      JOIN cities dc ON dc.id = da.city_id
	      WHERE tk.order_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY tk.order_id, tk.` + "`row`" + `, tk.seat`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t OrderTicket
		if err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID, &t.RouteName); err != nil {
			return err
		}
		if o, ok := index[t.OrderID]; ok {
			o.Tickets = append(o.Tickets, t)
		}
	}
	return rows.Err()
}
