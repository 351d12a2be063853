package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avialine/airport-api/internal/model"
	"github.com/avialine/airport-api/internal/validator"
)

// AirplaneTypeRow is an airplane type with the number of airplanes of that
// type, computed at query time.
type AirplaneTypeRow struct {
	model.AirplaneType
	AirplaneCount uint32
}

// AirplaneTypeRepo persists airplane type records.
type AirplaneTypeRepo struct {
	db *sql.DB
}

// NewAirplaneTypeRepo returns an AirplaneTypeRepo bound to the database.
func NewAirplaneTypeRepo(db *sql.DB) *AirplaneTypeRepo { return &AirplaneTypeRepo{db: db} }

// Create validates, normalizes and inserts an airplane type. Type names
// follow the plain alphabetic pattern.
func (r *AirplaneTypeRepo) Create(ctx context.Context, name string) (*AirplaneTypeRow, error) {
	name = validator.NormalizeTrim(name)

	v := validator.New()
	v.CheckName("name", name)
	if err := v.Err(); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO airplane_types (name) VALUES (?)`, name)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("name", "airplane type already exists")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one airplane type with its airplane count.
func (r *AirplaneTypeRepo) GetByID(ctx context.Context, id uint64) (*AirplaneTypeRow, error) {
	const q = `SELECT t.id, t.name, COUNT(a.id)
	           FROM airplane_types t
	           LEFT JOIN airplanes a ON a.airplane_type_id = t.id
	           WHERE t.id = ?
	           GROUP BY t.id, t.name`
	var row AirplaneTypeRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(&row.ID, &row.Name, &row.AirplaneCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("airplane type")
		}
		return nil, err
	}
	return &row, nil
}

// AirplaneTypeFilter holds the optional list predicates for types.
type AirplaneTypeFilter struct {
	Name string
	Page Page
}

// List returns airplane types with airplane counts, ordered by name.
func (r *AirplaneTypeRepo) List(ctx context.Context, f AirplaneTypeFilter) ([]AirplaneTypeRow, error) {
	var w whereBuilder
	if f.Name != "" {
		w.add("t.name LIKE ?", "%"+f.Name+"%")
	}
	lim, limArgs := f.Page.limitClause(5)

	q := `SELECT t.id, t.name, COUNT(a.id)
	      FROM airplane_types t
	      LEFT JOIN airplanes a ON a.airplane_type_id = t.id` +
		w.clause() + ` GROUP BY t.id, t.name ORDER BY t.name` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AirplaneTypeRow, 0)
	for rows.Next() {
		var row AirplaneTypeRow
		if err := rows.Scan(&row.ID, &row.Name, &row.AirplaneCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// AirplaneRow is an airplane joined with its type name.
type AirplaneRow struct {
	model.Airplane
	TypeName string
}

// AirplaneRepo persists airplanes. The (name, airplane_type) pair is
// unique; capacity is always derived, never stored.
type AirplaneRepo struct {
	db *sql.DB
}

// NewAirplaneRepo returns an AirplaneRepo bound to the given database.
func NewAirplaneRepo(db *sql.DB) *AirplaneRepo { return &AirplaneRepo{db: db} }

// validate runs the write-time invariants shared by Create and Update.
func (r *AirplaneRepo) validate(ctx context.Context, name string, rows, seatsInRow uint32, typeID uint64) error {
	v := validator.New()
	v.CheckAirplaneName("name", name)
	v.Check(rows > 0, "rows", "rows must be greater than zero")
	v.Check(seatsInRow > 0, "seats_in_row", "seats_in_row must be greater than zero")
	if err := v.Err(); err != nil {
		return err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM airplane_types WHERE id = ?)`, typeID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return validator.FieldError("airplane_type", "airplane type does not exist")
	}
	return nil
}

// Create validates, normalizes and inserts an airplane.
func (r *AirplaneRepo) Create(ctx context.Context, name string, rows, seatsInRow uint32, typeID uint64) (*AirplaneRow, error) {
	name = validator.NormalizeTrim(name)
	if err := r.validate(ctx, name, rows, seatsInRow, typeID); err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO airplanes (name, `rows`, seats_in_row, airplane_type_id) VALUES (?, ?, ?, ?)",
		name, rows, seatsInRow, typeID)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("name", "airplane with this name and type already exists")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces an airplane's fields under the same invariants as Create.
func (r *AirplaneRepo) Update(ctx context.Context, id uint64, name string, rows, seatsInRow uint32, typeID uint64) (*AirplaneRow, error) {
	name = validator.NormalizeTrim(name)
	if err := r.validate(ctx, name, rows, seatsInRow, typeID); err != nil {
		return nil, err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE airplanes SET name = ?, `rows` = ?, seats_in_row = ?, airplane_type_id = ? WHERE id = ?",
		name, rows, seatsInRow, typeID, id)
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("name", "airplane with this name and type already exists")
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

const airplaneSelect = "SELECT a.id, a.name, a.`rows`, a.seats_in_row, a.airplane_type_id, t.name" +
	` FROM airplanes a
	  JOIN airplane_types t ON t.id = a.airplane_type_id`

// GetByID fetches an airplane with its type name.
func (r *AirplaneRepo) GetByID(ctx context.Context, id uint64) (*AirplaneRow, error) {
	var row AirplaneRow
	err := r.db.QueryRowContext(ctx, airplaneSelect+` WHERE a.id = ?`, id).
		Scan(&row.ID, &row.Name, &row.Rows, &row.SeatsInRow, &row.AirplaneTypeID, &row.TypeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("airplane")
		}
		return nil, err
	}
	return &row, nil
}

// AirplaneFilter holds the optional list predicates for airplanes.
// Capacity filters on the derived rows*seats_in_row product.
type AirplaneFilter struct {
	Name     string
	TypeName string
	Capacity uint32 // 0 means no filter
	Page     Page
}

// List returns airplanes with their type names, ordered by name.
func (r *AirplaneRepo) List(ctx context.Context, f AirplaneFilter) ([]AirplaneRow, error) {
	var w whereBuilder
	if f.Name != "" {
		w.add("a.name LIKE ?", "%"+f.Name+"%")
	}
	if f.TypeName != "" {
		w.add("t.name LIKE ?", "%"+f.TypeName+"%")
	}
	if f.Capacity > 0 {
		w.add("a.`rows` * a.seats_in_row = ?", f.Capacity)
	}
	lim, limArgs := f.Page.limitClause(5)

	q := airplaneSelect + w.clause() + ` ORDER BY a.name` + lim
	rows, err := r.db.QueryContext(ctx, q, append(w.args, limArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AirplaneRow, 0)
	for rows.Next() {
		var row AirplaneRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Rows, &row.SeatsInRow, &row.AirplaneTypeID, &row.TypeName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
