package usecase

import (
	"fmt"

	"clublog-service/internal/domain/entity"
	"clublog-service/pkg/logger"
)

// NameResolver turns a person id into a display name for conflict
// messages. A nil resolver falls back to the raw id.
type NameResolver func(personID string) string

// ConflictDetector decides whether a candidate flight record may be
// committed alongside the other records of its date. It is a pure
// pre-commit gate: it never mutates state, and the store's own
// uniqueness guard remains the final authority (two concurrent
// submissions can both pass this check on their snapshots).
type ConflictDetector struct {
	logger logger.Logger
}

// NewConflictDetector creates a new conflict detector
func NewConflictDetector(logger logger.Logger) *ConflictDetector {
	return &ConflictDetector{logger: logger}
}

// Check scans the same-day records for aircraft and person collisions
// with the candidate. The candidate's own id (edit case) and its
// matched instruction counterpart are excluded first, so a legitimate
// dual-logged pair never flags itself. Returns nil when the candidate
// is free to commit.
func (d *ConflictDetector) Check(candidate *entity.FlightRecord, sameDay []*entity.FlightRecord, nameOf NameResolver) *entity.Conflict {
	comparison := d.comparisonSet(candidate, sameDay)

	if c := d.aircraftConflict(candidate, comparison, nameOf); c != nil {
		return c
	}
	return d.personConflict(candidate, comparison, nameOf)
}

// comparisonSet drops the candidate itself and, for instruction
// flights, its counterpart.
func (d *ConflictDetector) comparisonSet(candidate *entity.FlightRecord, sameDay []*entity.FlightRecord) []*entity.FlightRecord {
	counterpart := FindCounterpart(candidate, sameDay)

	out := make([]*entity.FlightRecord, 0, len(sameDay))
	for _, r := range sameDay {
		if candidate.ID != "" && r.ID == candidate.ID {
			continue
		}
		if counterpart != nil && r.ID == counterpart.ID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (d *ConflictDetector) aircraftConflict(candidate *entity.FlightRecord, comparison []*entity.FlightRecord, nameOf NameResolver) *entity.Conflict {
	for _, r := range comparison {
		if r.AircraftID != candidate.AircraftID {
			continue
		}
		if !candidate.Interval().Overlaps(r.Interval()) {
			continue
		}

		d.logger.Info("Aircraft conflict detected",
			"aircraft", candidate.AircraftID,
			"candidate", candidate.Interval().String(),
			"existing", r.ID)
		return &entity.Conflict{
			Kind:         entity.ConflictAircraft,
			SubjectID:    candidate.AircraftID,
			WithRecordID: r.ID,
			Slot:         r.Interval().String(),
			Message: fmt.Sprintf("aircraft %s is already booked %s by %s",
				candidate.AircraftID, r.Interval(), resolveName(nameOf, r.PilotID)),
		}
	}
	return nil
}

// personConflict scans both logbook types: a member cannot fly a
// glider and a tow plane at the same time.
func (d *ConflictDetector) personConflict(candidate *entity.FlightRecord, comparison []*entity.FlightRecord, nameOf NameResolver) *entity.Conflict {
	for _, personID := range []string{candidate.PilotID, candidate.InstructorID} {
		if personID == "" {
			continue
		}
		for _, r := range comparison {
			if !r.Involves(personID) {
				continue
			}
			if !candidate.Interval().Overlaps(r.Interval()) {
				continue
			}

			d.logger.Info("Person conflict detected",
				"person", personID,
				"candidate", candidate.Interval().String(),
				"existing", r.ID)
			return &entity.Conflict{
				Kind:         entity.ConflictPerson,
				SubjectID:    personID,
				WithRecordID: r.ID,
				Slot:         r.Interval().String(),
				Message: fmt.Sprintf("%s is already flying %s (aircraft %s)",
					resolveName(nameOf, personID), r.Interval(), r.AircraftID),
			}
		}
	}
	return nil
}

func resolveName(nameOf NameResolver, personID string) string {
	if nameOf == nil {
		return personID
	}
	if name := nameOf(personID); name != "" {
		return name
	}
	return personID
}
