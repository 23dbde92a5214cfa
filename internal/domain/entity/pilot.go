package entity

import "time"

// Category is a qualification held by a club member, e.g.
// "Piloto de planeador" or "Instructor de avión". Matching against
// category names is case and diacritic insensitive.
type Category struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pilot is a club member who can appear on a flight record as pilot or
// instructor. MedicalExpiry is nil when the club holds no medical
// certificate on file for the member; that is not a finding by itself.
type Pilot struct {
	ID            string
	FirstName     string
	LastName      string
	Categories    []Category
	MedicalExpiry *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName returns the display name used in conflict and report output.
func (p *Pilot) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
