package usecase

import (
	"clublog-service/internal/domain/entity"
)

// FindCounterpart returns the other half of a dual-logged instruction
// flight, or nil when the record is orphaned. The counterpart shares
// date, interval and aircraft, with the pilot and instructor roles
// crossed between the two records. The relation is symmetric.
//
// An orphaned instruction record is not an error; it is treated as a
// standalone flight by both the conflict detector and the report
// aggregator.
func FindCounterpart(record *entity.FlightRecord, candidates []*entity.FlightRecord) *entity.FlightRecord {
	if !record.Purpose.IsInstruction() {
		return nil
	}

	for _, c := range candidates {
		if c.ID == record.ID {
			continue
		}
		if isCounterpart(record, c) {
			return c
		}
	}
	return nil
}

func isCounterpart(a, b *entity.FlightRecord) bool {
	if !b.Purpose.IsInstruction() {
		return false
	}
	if !a.SameDay(b) || a.Start != b.Start || a.End != b.End {
		return false
	}
	if a.AircraftID != b.AircraftID {
		return false
	}
	// Roles must be crossed: my pilot is their instructor, or my
	// instructor is their pilot.
	return (a.PilotID != "" && a.PilotID == b.InstructorID) ||
		(a.InstructorID != "" && a.InstructorID == b.PilotID)
}
