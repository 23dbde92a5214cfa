package entity

import "time"

// AircraftType classifies the club fleet.
type AircraftType string

const (
	AircraftGlider   AircraftType = "glider"
	AircraftTowPlane AircraftType = "tow_plane"
	AircraftPowered  AircraftType = "powered"
)

// Aircraft is a fleet resource consumed for the duration of a flight.
type Aircraft struct {
	ID              string
	Registration    string
	Type            AircraftType
	OutOfService    bool
	InsuranceExpiry *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
