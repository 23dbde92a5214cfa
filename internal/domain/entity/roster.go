package entity

import "time"

// RosterSlot is a pre-booked entry on the club's scheduling board,
// synced from the shared reservations calendar. Flight records may
// carry a back-reference to the slot they were flown against.
type RosterSlot struct {
	ID         string    `bson:"_id"` // calendar event id
	Date       time.Time `bson:"date"`
	Start      TimeOfDay `bson:"startTime"`
	End        TimeOfDay `bson:"endTime"`
	AircraftID string    `bson:"aircraftId,omitempty"`
	PilotName  string    `bson:"pilotName,omitempty"`
	Summary    string    `bson:"summary"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}
