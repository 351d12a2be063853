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

func newCountryRepoMock(t *testing.T) (*CountryRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCountryRepo(db), mock
}

func TestCountryCreateNormalizes(t *testing.T) {
	repo, mock := newCountryRepoMock(t)
	created := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO countries`).
		WithArgs("United Kingdom").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery(`SELECT id, name, created_at FROM countries`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(3, "United Kingdom", created))

	co, err := repo.Create(context.Background(), "  united kingdom ")
	require.NoError(t, err)
	assert.Equal(t, "United Kingdom", co.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryCreateRejectsUnknownName(t *testing.T) {
	repo, _ := newCountryRepoMock(t)

	_, err := repo.Create(context.Background(), "Atlantis")
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["name"], "not a recognized country")
}

func TestCountryCreateRejectsBadPattern(t *testing.T) {
	repo, _ := newCountryRepoMock(t)

	_, err := repo.Create(context.Background(), "Fran<e")
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
}

func TestCountryCreateDuplicate(t *testing.T) {
	repo, mock := newCountryRepoMock(t)

	mock.ExpectExec(`INSERT INTO countries`).
		WithArgs("France").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), "France")
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Fields, "name")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryGetByIDNotFound(t *testing.T) {
	repo, mock := newCountryRepoMock(t)

	mock.ExpectQuery(`SELECT id, name, created_at FROM countries`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
