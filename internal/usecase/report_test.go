package usecase

import (
	"testing"
	"time"

	"clublog-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_EmptyRange(t *testing.T) {
	t.Parallel()

	report := NewAggregator().Aggregate(nil, testDay, testDay.AddDate(0, 0, 7), "")
	require.NotNil(t, report)
	assert.True(t, report.Empty)
	assert.Empty(t, report.Days)
	assert.Zero(t, report.Totals.Flights)
}

func TestAggregate_InstructionPairCountsOnce(t *testing.T) {
	t.Parallel()

	student, instructor := instructionPair("S", "I", "G-1", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 30))
	student.DurationHours = 0.5
	instructor.DurationHours = 0.5

	report := NewAggregator().Aggregate([]*entity.FlightRecord{student, instructor}, testDay, testDay, "")
	require.False(t, report.Empty)
	require.Len(t, report.Days, 1)
	require.Len(t, report.Days[0].Lines, 1, "a matched pair renders as one line")

	line := report.Days[0].Lines[0]
	assert.True(t, line.Pair)
	assert.Equal(t, "S", line.PilotID, "the student side leads the combined line")
	assert.Equal(t, "I", line.InstructorID)
	assert.ElementsMatch(t, []string{student.ID, instructor.ID}, line.RecordIDs)

	assert.InDelta(t, 0.5, report.Totals.GliderHours, 1e-9, "one side's duration, not the sum")
	assert.Equal(t, 1, report.Totals.Flights)
}

func TestAggregate_OrphanCountsOnceWithNoError(t *testing.T) {
	t.Parallel()

	student, _ := instructionPair("S", "I", "G-1", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 30))
	student.DurationHours = 0.5

	report := NewAggregator().Aggregate([]*entity.FlightRecord{student}, testDay, testDay, "")
	require.Len(t, report.Days, 1)
	require.Len(t, report.Days[0].Lines, 1)

	line := report.Days[0].Lines[0]
	assert.False(t, line.Pair, "an orphan renders standalone")
	assert.InDelta(t, 0.5, report.Totals.GliderHours, 1e-9)
}

func TestAggregate_TotalsPerLogbookAndTows(t *testing.T) {
	t.Parallel()

	glider := soloFlight("g1", "P1", "G-1", entity.NewTimeOfDay(10, 0), entity.NewTimeOfDay(11, 0))
	glider.DurationHours = 1.0

	tow := &entity.FlightRecord{
		ID:         "t1",
		Date:       testDay,
		Start:      entity.NewTimeOfDay(10, 0),
		End:        entity.NewTimeOfDay(10, 20),
		PilotID:    "P2",
		AircraftID: "TOW-1",
		Logbook:    entity.LogbookEngine,
		Purpose:    entity.PurposeTow,
		TowsCount:  3,
	}
	tow.DurationHours = 0.4

	trip := &entity.FlightRecord{
		ID:         "e1",
		Date:       testDay.AddDate(0, 0, 1),
		Start:      entity.NewTimeOfDay(14, 0),
		End:        entity.NewTimeOfDay(15, 1),
		PilotID:    "P3",
		AircraftID: "EC-AAA",
		Logbook:    entity.LogbookEngine,
		Purpose:    entity.PurposeTrip,
	}
	trip.DurationHours = 1.1

	report := NewAggregator().Aggregate([]*entity.FlightRecord{trip, tow, glider}, testDay, testDay.AddDate(0, 0, 1), "")

	require.Len(t, report.Days, 2)
	assert.True(t, report.Days[0].Date.Before(report.Days[1].Date), "days are ordered")

	totals := report.Totals
	assert.InDelta(t, 1.0, totals.GliderHours, 1e-9)
	assert.InDelta(t, 1.5, totals.EngineHours, 1e-9, "tow duration still accrues engine hours")
	assert.Equal(t, 3, totals.TowEvents, "tow events sum towsCount, not duration")
	assert.Equal(t, 60+61, totals.BillableMinutes, "tow minutes are not billable")
	assert.Equal(t, 3, totals.Flights)
}

func TestAggregate_LinesSortedByStartTime(t *testing.T) {
	t.Parallel()

	late := soloFlight("r-late", "P1", "G-1", entity.NewTimeOfDay(15, 0), entity.NewTimeOfDay(16, 0))
	early := soloFlight("r-early", "P2", "G-2", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(10, 0))

	report := NewAggregator().Aggregate([]*entity.FlightRecord{late, early}, testDay, testDay, "")
	require.Len(t, report.Days, 1)
	require.Len(t, report.Days[0].Lines, 2)
	assert.Equal(t, "r-early", report.Days[0].Lines[0].RecordIDs[0])
	assert.Equal(t, "r-late", report.Days[0].Lines[1].RecordIDs[0])
}

func TestAggregate_TwoPairsSameDay(t *testing.T) {
	t.Parallel()

	s1, i1 := instructionPair("S", "I", "G-1", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 30))
	s1.DurationHours, i1.DurationHours = 0.5, 0.5

	s2, i2 := instructionPair("S", "I", "G-1", entity.NewTimeOfDay(11, 0), entity.NewTimeOfDay(11, 45))
	s2.ID, i2.ID = "rec-student-2", "rec-instructor-2"
	s2.DurationHours, i2.DurationHours = 0.8, 0.8

	report := NewAggregator().Aggregate([]*entity.FlightRecord{i2, s1, i1, s2}, testDay, testDay, "")
	require.Len(t, report.Days, 1)
	assert.Len(t, report.Days[0].Lines, 2, "each physical flight renders once")
	assert.InDelta(t, 1.3, report.Totals.GliderHours, 1e-9)
	assert.Equal(t, 2, report.Totals.Flights)
}

func TestAggregate_DateRangeBoundsRecorded(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 8, 1, 13, 30, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)
	report := NewAggregator().Aggregate(nil, from, to, "P1")

	assert.Equal(t, entity.DateOnly(from), report.From)
	assert.Equal(t, entity.DateOnly(to), report.To)
	assert.Equal(t, "P1", report.PilotID)
}
