// Package handler exposes the HTTP surface: auth endpoints plus one
// handler per resource. Handlers bind and parse requests, call the
// repositories and shape responses through the view tables; all
// validation and invariant enforcement lives in the repository layer.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avialine/airport-api/internal/repository"
	"github.com/avialine/airport-api/internal/validator"
)

// writeError translates repository failures into HTTP responses. Field
// validation and uniqueness conflicts render their field-keyed message
// maps verbatim so clients can attach messages to form fields.
func writeError(c echo.Context, err error) error {
	var ve *validator.ValidationError
	var ce *repository.ConflictError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": ve.Fields})
	case errors.As(err, &ce):
		return c.JSON(http.StatusConflict, echo.Map{"errors": ce.Fields})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// pageParams reads page / page_size query parameters into a Page. def is
// the resource's default page size; sizes are clamped to [1, 100].
func pageParams(c echo.Context, def int) repository.Page {
	size := def
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		size = v
	}
	if size > 100 {
		size = 100
	}
	page := 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 1 {
		page = v
	}
	return repository.Page{Limit: size, Offset: (page - 1) * size}
}

// idSet parses a comma-separated id list ("1,3") from a query parameter.
// Malformed entries are ignored rather than failing the whole request.
func idSet(raw string) []uint64 {
	if raw == "" {
		return nil
	}
	var ids []uint64
	for _, p := range strings.Split(raw, ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// queryID parses a single numeric query parameter, 0 when absent.
func queryID(c echo.Context, name string) uint64 {
	id, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
