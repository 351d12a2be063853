package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avialine/airport-api/internal/repository"
)

func newCountryHandler(t *testing.T) (*CountryHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCountryHandler(repository.NewCountryRepo(db)), mock
}

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/countries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestCountryCreateEndpoint(t *testing.T) {
	h, mock := newCountryHandler(t)
	created := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO countries`).
		WithArgs("France").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT id, name, created_at FROM countries`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow(1, "France", created))

	rec := postJSON(t, h.Create, `{"name":"france"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"France"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryCreateValidationIs400(t *testing.T) {
	h, _ := newCountryHandler(t)

	rec := postJSON(t, h.Create, `{"name":"Atlantis"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "errors")
}

func TestCountryCreateDuplicateIs409(t *testing.T) {
	h, mock := newCountryHandler(t)

	mock.ExpectExec(`INSERT INTO countries`).
		WithArgs("France").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	rec := postJSON(t, h.Create, `{"name":"France"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryGetUnknownIs404(t *testing.T) {
	h, mock := newCountryHandler(t)

	mock.ExpectQuery(`SELECT id, name, created_at FROM countries`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/countries/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/countries/:id")
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
