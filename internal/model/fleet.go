package model

// AirplaneType groups airplanes of the same model family.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique type name (alphabetic pattern).
type AirplaneType struct {
	ID   uint64 // airplane_types.id
	Name string // airplane_types.name
}

// Airplane is a physical aircraft. Rows and SeatsInRow define the cabin
// grid; capacity is always derived as Rows*SeatsInRow and never stored.
// The (name, airplane_type) pair is unique.
type Airplane struct {
	ID             uint64 // airplanes.id
	Name           string // airplanes.name
	Rows           uint32 // airplanes.rows
	SeatsInRow     uint32 // airplanes.seats_in_row
	AirplaneTypeID uint64 // airplanes.airplane_type_id
}

// Capacity returns the number of seats in the cabin grid.
func (a Airplane) Capacity() uint32 { return a.Rows * a.SeatsInRow }

// Crew is a crew member identified by the unique (first_name, last_name)
// pair. Both names are stored normalized.
type Crew struct {
	ID        uint64 // crew.id
	FirstName string // crew.first_name
	LastName  string // crew.last_name
}

// FullName joins first and last name for list views.
func (c Crew) FullName() string { return c.FirstName + " " + c.LastName }
