package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avialine/airport-api/internal/validator"
)

func newOrderRepoMock(t *testing.T) (*OrderRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderRepo(db), mock
}

func expectDims(mock sqlmock.Sqlmock, flightID uint64, rows, seats uint32) {
	mock.ExpectQuery(`SELECT a\..rows., a\.seats_in_row FROM flights f`).
		WithArgs(flightID).
		WillReturnRows(sqlmock.NewRows([]string{"rows", "seats_in_row"}).AddRow(rows, seats))
}

func TestCreateWithTicketsCommits(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	created := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	expectDims(mock, 5, 20, 6)
	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs(uint32(3), uint32(4), uint64(5), int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Same flight again: dimensions come from the per-booking cache, no
	// second SELECT.
	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs(uint32(3), uint32(5), uint64(5), int64(42)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT id, user_id, created_at FROM orders WHERE`).
		WithArgs(uint64(42), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(42, 7, created))
	mock.ExpectQuery(`FROM tickets tk`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "row", "seat", "flight_id", "order_id", "route"}).
			AddRow(1, 3, 4, 5, 42, "Paris - Berlin").
			AddRow(2, 3, 5, 5, 42, "Paris - Berlin"))

	o, err := repo.CreateWithTickets(context.Background(), 7, []TicketRequest{
		{Row: 3, Seat: 4, FlightID: 5},
		{Row: 3, Seat: 5, FlightID: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), o.ID)
	require.Len(t, o.Tickets, 2)
	assert.Equal(t, "Paris - Berlin", o.Tickets[0].RouteName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsEmptyRequest(t *testing.T) {
	repo, _ := newOrderRepoMock(t)

	_, err := repo.CreateWithTickets(context.Background(), 7, nil)
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "tickets")
}

func TestCreateWithTicketsUnknownFlightRollsBack(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`SELECT a\..rows., a\.seats_in_row FROM flights f`).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"rows", "seats_in_row"}))
	mock.ExpectRollback()

	_, err := repo.CreateWithTickets(context.Background(), 7, []TicketRequest{
		{Row: 1, Seat: 1, FlightID: 99},
	})
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "flight")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsSeatOutOfBoundsRollsBack(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	expectDims(mock, 5, 20, 6)
	mock.ExpectRollback()

	_, err := repo.CreateWithTickets(context.Background(), 7, []TicketRequest{
		{Row: 21, Seat: 9, FlightID: 5},
	})
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "row")
	assert.Contains(t, ve.Fields, "seat")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsDuplicateSeatRollsBack(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	expectDims(mock, 5, 20, 6)
	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs(uint32(2), uint32(2), uint64(5), int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Second ticket loses the uniqueness race: the whole order rolls back,
	// including the ticket that inserted cleanly.
	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs(uint32(2), uint32(3), uint64(5), int64(42)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := repo.CreateWithTickets(context.Background(), 7, []TicketRequest{
		{Row: 2, Seat: 2, FlightID: 5},
		{Row: 2, Seat: 3, FlightID: 5},
	})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Fields, "seat")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUserScoping(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectQuery(`SELECT id, user_id, created_at FROM orders WHERE`).
		WithArgs(uint64(42), uint64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

	_, err := repo.GetByIDForUser(context.Background(), 42, 8)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserDateFilter(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	created := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, user_id, created_at FROM orders WHERE user_id = \? AND DATE\(created_at\) = \?`).
		WithArgs(uint64(7), "2026-04-01", 2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(42, 7, created))
	mock.ExpectQuery(`FROM tickets tk`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "row", "seat", "flight_id", "order_id", "route"}))

	orders, err := repo.ListByUser(context.Background(), 7, OrderFilter{Date: "2026-04-01"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].Tickets)
	assert.NoError(t, mock.ExpectationsWereMet())
}
