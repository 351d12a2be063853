// Package model defines the persisted record types of the booking domain.
// The structs are plain data: all validation and normalization happens in
// the validator package and all invariants are enforced by the repository
// layer at write time.
package model

import "time"

// Country is a canonical country taken from the embedded reference list.
// Names are stored normalized (title-cased, trimmed) and are unique.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique normalized country name.
//  CreatedAt – timestamp when the row was created.
type Country struct {
	ID        uint64    // countries.id
	Name      string    // countries.name
	CreatedAt time.Time // countries.created_at
}

// City belongs to exactly one Country. The (name, country) pair is unique;
// deleting a Country cascades to its cities.
type City struct {
	ID        uint64    // cities.id
	Name      string    // cities.name
	CountryID uint64    // cities.country_id
	CreatedAt time.Time // cities.created_at
}

// Airport is located near one City (its "closest big city"). Airport names
// are globally unique and follow the extended airport name pattern.
type Airport struct {
	ID        uint64    // airports.id
	Name      string    // airports.name
	CityID    uint64    // airports.city_id
	CreatedAt time.Time // airports.created_at
}

// Route is a directed airport-to-airport pairing with a distance in
// kilometres. The (source, destination) pair is unique and the two
// endpoints must differ.
type Route struct {
	ID            uint64 // routes.id
	SourceID      uint64 // routes.source_id
	DestinationID uint64 // routes.destination_id
	Distance      uint32 // routes.distance
}
