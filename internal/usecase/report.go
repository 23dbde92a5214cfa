package usecase

import (
	"sort"
	"time"

	"clublog-service/internal/domain/entity"
)

// Aggregator turns a set of committed flight records into a grouped,
// deduplicated report. A matched instruction pair renders as one line
// and counts its duration exactly once; an orphaned instruction record
// counts as a standalone flight.
type Aggregator struct{}

// NewAggregator creates a new report aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate builds the report for [from, to]. Zero records yield an
// explicit Empty report rather than an ambiguous empty structure.
func (a *Aggregator) Aggregate(records []*entity.FlightRecord, from, to time.Time, pilotID string) *entity.Report {
	report := &entity.Report{
		From:    entity.DateOnly(from),
		To:      entity.DateOnly(to),
		PilotID: pilotID,
	}

	if len(records) == 0 {
		report.Empty = true
		return report
	}

	byDate := make(map[time.Time][]*entity.FlightRecord)
	for _, r := range records {
		day := entity.DateOnly(r.Date)
		byDate[day] = append(byDate[day], r)
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for _, date := range dates {
		day := a.aggregateDay(date, byDate[date], &report.Totals)
		report.Days = append(report.Days, day)
	}
	return report
}

func (a *Aggregator) aggregateDay(date time.Time, records []*entity.FlightRecord, totals *entity.ReportTotals) entity.DayReport {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Start != records[j].Start {
			return records[i].Start < records[j].Start
		}
		if records[i].End != records[j].End {
			return records[i].End < records[j].End
		}
		return records[i].ID < records[j].ID
	})

	day := entity.DayReport{Date: date}
	consumed := make(map[string]bool)

	for _, r := range records {
		if consumed[r.ID] {
			// Already rendered via its counterpart.
			continue
		}

		var line entity.ReportLine
		if counterpart := FindCounterpart(r, records); counterpart != nil && !consumed[counterpart.ID] {
			line = pairLine(r, counterpart)
			consumed[r.ID] = true
			consumed[counterpart.ID] = true
		} else {
			line = soloLine(r)
			consumed[r.ID] = true
		}

		day.Lines = append(day.Lines, line)
		addToTotals(totals, &line)
	}
	return day
}

// pairLine collapses a matched instruction pair into one line, with
// the student as pilot and the instructor alongside.
func pairLine(a, b *entity.FlightRecord) entity.ReportLine {
	student, instructor := a, b
	if a.Purpose == entity.PurposeInstructionGiven {
		student, instructor = b, a
	}

	return entity.ReportLine{
		RecordIDs:     []string{a.ID, b.ID},
		Start:         a.Start,
		End:           a.End,
		AircraftID:    a.AircraftID,
		Logbook:       a.Logbook,
		Purpose:       student.Purpose,
		PilotID:       student.PilotID,
		InstructorID:  instructor.PilotID,
		Pair:          true,
		DurationHours: student.DurationHours,
		Tows:          0,
	}
}

func soloLine(r *entity.FlightRecord) entity.ReportLine {
	return entity.ReportLine{
		RecordIDs:     []string{r.ID},
		Start:         r.Start,
		End:           r.End,
		AircraftID:    r.AircraftID,
		Logbook:       r.Logbook,
		Purpose:       r.Purpose,
		PilotID:       r.PilotID,
		InstructorID:  r.InstructorID,
		DurationHours: r.DurationHours,
		Tows:          r.TowsCount,
	}
}

// addToTotals counts each line once. Tow events accumulate the tow
// counter, not duration; billable minutes stay raw and exclude tows.
func addToTotals(totals *entity.ReportTotals, line *entity.ReportLine) {
	totals.Flights++

	switch line.Logbook {
	case entity.LogbookGlider:
		totals.GliderHours += line.DurationHours
	case entity.LogbookEngine:
		totals.EngineHours += line.DurationHours
	}

	if line.Purpose.IsTow() {
		totals.TowEvents += line.Tows
	} else {
		totals.BillableMinutes += int(line.End - line.Start)
	}
}
