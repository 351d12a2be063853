package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avialine/airport-api/internal/geo"
	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/validator"
)

// CityRow is a city joined with its country name for list rendering.
type CityRow struct {
	model.City
	CountryName string
}

// CityRepo persists cities. On create it verifies the city exists in the
// real world via the geo collaborator (when configured) and that it lies
// in the claimed country. (name, country) uniqueness comes from the
// uq_cities_name_country key.
type CityRepo struct {
	db  *sql.DB
	geo *geo.Client // nil disables the external lookup
}

// NewCityRepo returns a CityRepo. geoClient may be nil, which skips the
// external existence check.
func NewCityRepo(db *sql.DB, geoClient *geo.Client) *CityRepo {
	return &CityRepo{db: db, geo: geoClient}
}

// Create validates and inserts a city. Failure modes: name pattern
// (validation error on "name"), unknown country id (validation error on
// "country"), geo lookup says the city does not exist (validation error on
// "name"), geo lookup resolves a different country (validation error on
// "country"), duplicate (name, country) pair (ConflictError).
func (r *CityRepo) Create(ctx context.Context, name string, countryID uint64) (*CityRow, error) {
	name = validator.NormalizeTrim(name)

	v := validator.New()
	v.CheckName("name", name)
	if err := v.Err(); err != nil {
		return nil, err
	}

	country, err := NewCountryRepo(r.db).GetByID(ctx, countryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, validator.FieldError("country", "country does not exist")
		}
		return nil, err
	}

	if err := r.verifyCityCountry(ctx, name, country.Name); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cities (name, country_id) VALUES (?, ?)`, name, countryID)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("name", "city already exists in this country")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// verifyCityCountry asks the geo collaborator which country the city lies
// in. A disabled collaborator passes; a domain "not found" or a country
// mismatch becomes a field-keyed validation error; transport failures are
// reported as lookup errors on the name field rather than a crash.
func (r *CityRepo) verifyCityCountry(ctx context.Context, city, country string) error {
	resolved, err := r.geo.GetCountry(ctx, city)
	if err != nil {
		if errors.Is(err, geo.ErrDisabled) {
			return nil
		}
		if errors.Is(err, geo.ErrCityNotFound) {
			return validator.FieldError("name", city+" does not exist")
		}
		return validator.FieldError("name", "could not verify city: "+err.Error())
	}
	if !strings.EqualFold(validator.NormalizeName(resolved), validator.NormalizeName(country)) {
		return validator.FieldError("country", city+" is located in "+resolved+", not "+country)
	}
	return nil
}

// GetByID fetches a city with its country name.
func (r *CityRepo) GetByID(ctx context.Context, id uint64) (*CityRow, error) {
	const q = `SELECT c.id, c.name, c.country_id, c.created_at, co.name
	           FROM cities c
	           JOIN countries co ON co.id = c.country_id
	           WHERE c.id = ?`
	var row CityRow
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&row.ID, &row.Name, &row.CountryID, &row.CreatedAt, &row.CountryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("city")
		}
		return nil, err
	}
	return &row, nil
}

// CityFilter holds the optional list predicates for cities.
type CityFilter struct {
	Name       string   // substring match
	CountryIDs []uint64 // related-id set
	Page       Page
}

// List returns cities with country names, ordered by city name.
func (r *CityRepo) List(ctx context.Context, f CityFilter) ([]CityRow, error) {
	var w whereBuilder
	if f.Name != "" {
		w.add("c.name LIKE ?", "%"+f.Name+"%")
	}
	w.addIn("c.country_id", f.CountryIDs)
	lim, limArgs := f.Page.limitClause(5)

	q := `SELECT c.id, c.name, c.country_id, c.created_at, co.name
	      FROM cities c
	      JOIN countries co ON co.id = c.country_id` +
		w.clause() + ` ORDER BY c.name` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CityRow, 0)
	for rows.Next() {
		var row CityRow
		if err := rows.Scan(&row.ID, &row.Name, &row.CountryID, &row.CreatedAt, &row.CountryName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListByCountry returns the cities of one country, for country detail views.
func (r *CityRepo) ListByCountry(ctx context.Context, countryID uint64) ([]model.City, error) {
	const q = `SELECT id, name, country_id, created_at FROM cities WHERE country_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, countryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.City, 0)
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
