package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/validator"
)

// AirportRow is an airport joined with its city and country names.
type AirportRow struct {
	model.Airport
	CityName    string
	CountryName string
}

// AirportRepo persists airports. Names follow the extended airport name
// pattern, are normalized on write and globally unique.
type AirportRepo struct {
	db *sql.DB
}

// NewAirportRepo returns an AirportRepo bound to the given database.
func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{db: db} }

// Create validates, normalizes and inserts an airport.
func (r *AirportRepo) Create(ctx context.Context, name string, cityID uint64) (*AirportRow, error) {
	name = validator.NormalizeName(name)

	v := validator.New()
	v.CheckAirportName("name", name)
	if err := v.Err(); err != nil {
		return nil, err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM cities WHERE id = ?)`, cityID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, validator.FieldError("closest_big_city", "city does not exist")
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO airports (name, city_id) VALUES (?, ?)`, name, cityID)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("name", "airport already exists")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches an airport with city and country names.
func (r *AirportRepo) GetByID(ctx context.Context, id uint64) (*AirportRow, error) {
	const q = `SELECT a.id, a.name, a.city_id, a.created_at, c.name, co.name
	           FROM airports a
	           JOIN cities c ON c.id = a.city_id
	           JOIN countries co ON co.id = c.country_id
	           WHERE a.id = ?`
	var row AirportRow
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&row.ID, &row.Name, &row.CityID, &row.CreatedAt, &row.CityName, &row.CountryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("airport")
		}
		return nil, err
	}
	return &row, nil
}

// AirportFilter holds the optional list predicates for airports.
type AirportFilter struct {
	Name    string   // substring match
	CityIDs []uint64 // related-id set
	Page    Page
}

// List returns airports with their city and country names.
func (r *AirportRepo) List(ctx context.Context, f AirportFilter) ([]AirportRow, error) {
	var w whereBuilder
	if f.Name != "" {
		w.add("a.name LIKE ?", "%"+f.Name+"%")
	}
	w.addIn("a.city_id", f.CityIDs)
	lim, limArgs := f.Page.limitClause(5)

	q := `SELECT a.id, a.name, a.city_id, a.created_at, c.name, co.name
	      FROM airports a
	      JOIN cities c ON c.id = a.city_id
	      JOIN countries co ON co.id = c.country_id` +
		w.clause() + ` ORDER BY a.name` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AirportRow, 0)
	for rows.Next() {
		var row AirportRow
		if err := rows.Scan(&row.ID, &row.Name, &row.CityID, &row.CreatedAt, &row.CityName, &row.CountryName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
