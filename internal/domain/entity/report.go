package entity

import "time"

// ReportLine is one rendered row of a flight report. A matched
// instruction pair collapses into a single line with Pair set; PilotID
// then holds the student and InstructorID the instructor.
type ReportLine struct {
	RecordIDs      []string
	Start          TimeOfDay
	End            TimeOfDay
	AircraftID     string
	Logbook        LogbookType
	Purpose        Purpose
	PilotID        string
	PilotName      string
	InstructorID   string
	InstructorName string
	Pair           bool
	DurationHours  float64
	Tows           int
}

// DayReport groups a date's lines, already sorted by start time.
type DayReport struct {
	Date  time.Time
	Lines []ReportLine
}

// ReportTotals accumulates deduplicated totals: hours per logbook type,
// tow events counted by towsCount rather than duration, and raw
// billable minutes.
type ReportTotals struct {
	GliderHours     float64
	EngineHours     float64
	TowEvents       int
	BillableMinutes int
	Flights         int
}

// Report is the aggregated output for a date range. Empty is set
// explicitly for zero-record ranges so consumers never have to guess
// whether an empty slice means "no data" or "no flights".
type Report struct {
	From    time.Time
	To      time.Time
	PilotID string
	Days    []DayReport
	Totals  ReportTotals
	Empty   bool
}
