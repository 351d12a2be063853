package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avialine/airport-api/internal/validator"
)

func newRouteRepoMock(t *testing.T) (*RouteRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRouteRepo(db), mock
}

func TestRouteCreateEqualEndpointsRejected(t *testing.T) {
	repo, _ := newRouteRepoMock(t)

	_, err := repo.Create(context.Background(), 3, 3, 500)
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "source")
	assert.Contains(t, ve.Fields, "destination")
}

func TestRouteCreateZeroDistanceRejected(t *testing.T) {
	repo, _ := newRouteRepoMock(t)

	_, err := repo.Create(context.Background(), 3, 4, 0)
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "distance")
}

func TestRouteCreateMissingAirportRejected(t *testing.T) {
	repo, mock := newRouteRepoMock(t)

	// Endpoint existence is probed one airport at a time; the first miss
	// fails the write before any INSERT.
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.Create(context.Background(), 3, 4, 500)
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "airport does not exist")
}
