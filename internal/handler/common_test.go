package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/avialine/airport-api/internal/repository"
)

func testContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name   string
		target string
		def    int
		want   repository.Page
	}{
		{"defaults", "/v1/countries", 5, repository.Page{Limit: 5, Offset: 0}},
		{"explicit size", "/v1/countries?page_size=20", 5, repository.Page{Limit: 20, Offset: 0}},
		{"second page", "/v1/countries?page=3&page_size=10", 5, repository.Page{Limit: 10, Offset: 20}},
		{"size capped at 100", "/v1/countries?page_size=500", 5, repository.Page{Limit: 100, Offset: 0}},
		{"garbage ignored", "/v1/countries?page=x&page_size=-2", 2, repository.Page{Limit: 2, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(t, tt.target)
			assert.Equal(t, tt.want, pageParams(c, tt.def))
		})
	}
}

func TestIDSet(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []uint64
	}{
		{"empty", "", nil},
		{"single", "4", []uint64{4}},
		{"multiple with spaces", "1, 2,3", []uint64{1, 2, 3}},
		{"malformed entries dropped", "1,x,0,-1,3", []uint64{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idSet(tt.raw))
		})
	}
}
