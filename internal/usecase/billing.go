package usecase

import (
	"math"

	"clublog-service/internal/domain/entity"
)

// DurationMinutes returns the raw interval length. Validation
// guarantees End > Start before any record reaches this point.
func DurationMinutes(record *entity.FlightRecord) int {
	return record.Interval().Duration()
}

// RoundHours converts minutes to decimal hours, rounded up to the next
// tenth. Rounding never goes down: a 61 minute flight bills as 1.1h.
func RoundHours(minutes int) float64 {
	return math.Ceil(float64(minutes)/60.0*10) / 10
}

// ResolveTows normalizes the tow counter for a record. Tow flights
// default to one tow and accept any non-negative override; every other
// purpose is forced to zero.
func ResolveTows(purpose entity.Purpose, requested *int) (int, error) {
	if !purpose.IsTow() {
		return 0, nil
	}
	if requested == nil {
		return 1, nil
	}
	if *requested < 0 {
		return 0, &entity.ValidationError{Field: "towsCount", Reason: "must not be negative"}
	}
	return *requested, nil
}

// ApplyDerived fills the record's derived fields from its interval and
// purpose: rounded duration hours, billable minutes (nil for tows) and
// the normalized tow counter.
func ApplyDerived(record *entity.FlightRecord, requestedTows *int) error {
	minutes := DurationMinutes(record)
	record.DurationHours = RoundHours(minutes)

	if record.Purpose.IsTow() || minutes <= 0 {
		record.BillableMinutes = nil
	} else {
		billable := minutes
		record.BillableMinutes = &billable
	}

	tows, err := ResolveTows(record.Purpose, requestedTows)
	if err != nil {
		return err
	}
	record.TowsCount = tows
	return nil
}
