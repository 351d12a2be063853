package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/validator"
)

// RouteRow is a route joined with its endpoint airports and their cities.
// DisplayName follows the original convention "SourceCity - DestinationCity".
type RouteRow struct {
	model.Route
	SourceName      string
	DestinationName string
	SourceCity      string
	DestinationCity string
}

// DisplayName renders the human-readable route name.
func (r RouteRow) DisplayName() string {
	return r.SourceCity + " - " + r.DestinationCity
}

// RouteRepo persists routes. Endpoints must be distinct existing airports,
// distance must be positive, and (source, destination) is unique via
// uq_routes_endpoints.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo returns a RouteRepo bound to the given database.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// validate runs the cross-field invariants shared by Create and Update.
func (r *RouteRepo) validate(ctx context.Context, sourceID, destinationID uint64, distance uint32) error {
	v := validator.New()
	v.CheckDistinctEndpoints(sourceID, destinationID)
	v.Check(distance > 0, "distance", "distance must be greater than zero")
	if err := v.Err(); err != nil {
		return err
	}

	endpoints := []struct {
		field string
		id    uint64
	}{
		{"source", sourceID},
		{"destination", destinationID},
	}
	for _, ep := range endpoints {
		field, id := ep.field, ep.id
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM airports WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return validator.FieldError(field, "airport does not exist")
		}
	}
	return nil
}

// Create validates and inserts a route.
func (r *RouteRepo) Create(ctx context.Context, sourceID, destinationID uint64, distance uint32) (*RouteRow, error) {
	if err := r.validate(ctx, sourceID, destinationID, distance); err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO routes (source_id, destination_id, distance) VALUES (?, ?, ?)`,
		sourceID, destinationID, distance)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("source", "route between these airports already exists")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces a route's endpoints and distance under the same
// invariants as Create.
func (r *RouteRepo) Update(ctx context.Context, id, sourceID, destinationID uint64, distance uint32) (*RouteRow, error) {
	if err := r.validate(ctx, sourceID, destinationID, distance); err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE routes SET source_id = ?, destination_id = ?, distance = ? WHERE id = ?`,
		sourceID, destinationID, distance, id)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("source", "route between these airports already exists")
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "identical values" with a lookup.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

const routeSelect = `SELECT r.id, r.source_id, r.destination_id, r.distance,
              sa.name, da.name, sc.name, dc.name
       FROM routes r
       JOIN airports sa ON sa.id = r.source_id
       JOIN airports da ON da.id = r.destination_id
       JOIN cities sc ON sc.id = sa.city_id
       JOIN cities dc ON dc.id = da.city_id`

func scanRouteRow(s interface{ Scan(...interface{}) error }, row *RouteRow) error {
	return s.Scan(&row.ID, &row.SourceID, &row.DestinationID, &row.Distance,
		&row.SourceName, &row.DestinationName, &row.SourceCity, &row.DestinationCity)
}

// GetByID fetches a route with endpoint names.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*RouteRow, error) {
	var row RouteRow
	err := scanRouteRow(r.db.QueryRowContext(ctx, routeSelect+` WHERE r.id = ?`, id), &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("route")
		}
		return nil, err
	}
	return &row, nil
}

// RouteFilter holds the optional list predicates for routes.
type RouteFilter struct {
	Source      string // source airport name substring
	Destination string // destination airport name substring
	Page        Page
}

// List returns routes with endpoint names.
func (r *RouteRepo) List(ctx context.Context, f RouteFilter) ([]RouteRow, error) {
	var w whereBuilder
	if f.Source != "" {
		w.add("sa.name LIKE ?", "%"+f.Source+"%")
	}
	if f.Destination != "" {
		w.add("da.name LIKE ?", "%"+f.Destination+"%")
	}
	lim, limArgs := f.Page.limitClause(5)

	q := routeSelect + w.clause() + ` ORDER BY r.id` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RouteRow, 0)
	for rows.Next() {
		var row RouteRow
		if err := scanRouteRow(rows, &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
