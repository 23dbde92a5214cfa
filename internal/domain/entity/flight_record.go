// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// FlightRecord is one logged flight leg, the unit of scheduling and
// billing. A dual-instruction flight is stored as two records sharing
// date, interval and aircraft: one from the student's perspective and
// one from the instructor's.
type FlightRecord struct {
	ID              string      `bson:"_id,omitempty"`
	Date            time.Time   `bson:"date"` // local civil date, truncated to midnight
	Start           TimeOfDay   `bson:"startTime"`
	End             TimeOfDay   `bson:"endTime"`
	PilotID         string      `bson:"pilotId"`
	InstructorID    string      `bson:"instructorId,omitempty"`
	AircraftID      string      `bson:"aircraftId"`
	Logbook         LogbookType `bson:"logbookType"`
	Purpose         Purpose     `bson:"purpose"`
	DurationHours   float64     `bson:"durationHours"`
	BillableMinutes *int        `bson:"billableMinutes,omitempty"`
	TowsCount       int         `bson:"towsCount"`
	ScheduleEntryID string      `bson:"scheduleEntryId,omitempty"`
	CreatedAt       time.Time   `bson:"createdAt"`
	UpdatedAt       time.Time   `bson:"updatedAt"`
}

// Interval returns the record's time span within its date.
func (r *FlightRecord) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// SameDay reports whether two records fall on the same calendar date.
func (r *FlightRecord) SameDay(other *FlightRecord) bool {
	return SameDate(r.Date, other.Date)
}

// Involves reports whether the given person appears on this record as
// pilot or instructor.
func (r *FlightRecord) Involves(personID string) bool {
	if personID == "" {
		return false
	}
	return r.PilotID == personID || r.InstructorID == personID
}

// SameDate compares two timestamps as calendar dates, ignoring the
// time-of-day portion.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
