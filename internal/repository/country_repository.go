package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avialine/airport-api/internal/countries"
	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/validator"
)

// CountryRepo persists countries. Names are normalized on write and must
// come from the embedded reference list; uniqueness is enforced by the
// uq_countries_name key.
type CountryRepo struct {
	db *sql.DB
}

// NewCountryRepo returns a CountryRepo bound to the given database.
func NewCountryRepo(db *sql.DB) *CountryRepo { return &CountryRepo{db: db} }

// Create validates, normalizes and inserts a country. It returns a
// *validator.ValidationError when the name fails checks and a
// *ConflictError when the name already exists.
func (r *CountryRepo) Create(ctx context.Context, name string) (*model.Country, error) {
	name = validator.NormalizeName(name)

	v := validator.New()
	v.CheckName("name", name)
	if v.Valid() {
		v.Check(countries.Known(name), "name", name+" is not a recognized country")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO countries (name) VALUES (?)`, name)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("name", "country already exists")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a single country.
func (r *CountryRepo) GetByID(ctx context.Context, id uint64) (*model.Country, error) {
	var c model.Country
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM countries WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("country")
		}
		return nil, err
	}
	return &c, nil
}

// CountryFilter holds the optional list predicates for countries.
type CountryFilter struct {
	Name string // substring match
	Page Page
}

// List returns countries ordered by name, optionally filtered by a name
// substring.
func (r *CountryRepo) List(ctx context.Context, f CountryFilter) ([]model.Country, error) {
	var w whereBuilder
	if f.Name != "" {
		w.add("name LIKE ?", "%"+f.Name+"%")
	}
	lim, limArgs := f.Page.limitClause(5)

	q := `SELECT id, name, created_at FROM countries` + w.clause() + ` ORDER BY name` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Country, 0)
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a country; dependent cities, airports, routes, flights
// and tickets are removed by the schema's cascade rules. Not routed over
// HTTP, used by admin tooling.
func (r *CountryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("country")
	}
	return nil
}
