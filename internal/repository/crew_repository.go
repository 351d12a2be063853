package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/validator"
)

// CrewRepo persists crew members. Both names are normalized (title-cased,
// trimmed); the (first_name, last_name) pair is unique.
type CrewRepo struct {
	db *sql.DB
}

// NewCrewRepo returns a CrewRepo bound to the given database.
func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

func validateCrewNames(first, last string) error {
	v := validator.New()
	v.CheckName("first_name", first)
	v.CheckName("last_name", last)
	return v.Err()
}

// Create validates, normalizes and inserts a crew member.
func (r *CrewRepo) Create(ctx context.Context, firstName, lastName string) (*model.Crew, error) {
	firstName = validator.NormalizeName(firstName)
	lastName = validator.NormalizeName(lastName)
	if err := validateCrewNames(firstName, lastName); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO crew (first_name, last_name) VALUES (?, ?)`, firstName, lastName)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("first_name", "crew member with this name already exists")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces a crew member's names under the same invariants.
func (r *CrewRepo) Update(ctx context.Context, id uint64, firstName, lastName string) (*model.Crew, error) {
	firstName = validator.NormalizeName(firstName)
	lastName = validator.NormalizeName(lastName)
	if err := validateCrewNames(firstName, lastName); err != nil {
		return nil, err
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE crew SET first_name = ?, last_name = ? WHERE id = ?`, firstName, lastName, id)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("first_name", "crew member with this name already exists")
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a single crew member.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (*model.Crew, error) {
	var c model.Crew
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM crew WHERE id = ?`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("crew member")
		}
		return nil, err
	}
	return &c, nil
}

// CrewFilter holds the optional list predicates for crew members.
type CrewFilter struct {
	FirstName string
	LastName  string
	Page      Page
}

// List returns crew members ordered by last name.
func (r *CrewRepo) List(ctx context.Context, f CrewFilter) ([]model.Crew, error) {
	var w whereBuilder
	if f.FirstName != "" {
		w.add("first_name LIKE ?", "%"+f.FirstName+"%")
	}
	if f.LastName != "" {
		w.add("last_name LIKE ?", "%"+f.LastName+"%")
	}
	lim, limArgs := f.Page.limitClause(10)

	q := `SELECT id, first_name, last_name FROM crew` + w.clause() + ` ORDER BY last_name` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Crew, 0)
	for rows.Next() {
		var c model.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
