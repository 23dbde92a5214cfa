package usecase

import (
	"testing"
	"time"

	"clublog-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

// instructionPair builds the two records of one physical dual flight:
// the student's view and the instructor's view.
func instructionPair(studentID, instructorID, aircraftID string, start, end entity.TimeOfDay) (*entity.FlightRecord, *entity.FlightRecord) {
	student := &entity.FlightRecord{
		ID:           "rec-student",
		Date:         testDay,
		Start:        start,
		End:          end,
		PilotID:      studentID,
		InstructorID: instructorID,
		AircraftID:   aircraftID,
		Logbook:      entity.LogbookGlider,
		Purpose:      entity.PurposeInstructionReceived,
	}
	instructor := &entity.FlightRecord{
		ID:           "rec-instructor",
		Date:         testDay,
		Start:        start,
		End:          end,
		PilotID:      instructorID,
		InstructorID: studentID,
		AircraftID:   aircraftID,
		Logbook:      entity.LogbookGlider,
		Purpose:      entity.PurposeInstructionGiven,
	}
	return student, instructor
}

func TestFindCounterpart_MatchesAndIsSymmetric(t *testing.T) {
	t.Parallel()

	student, instructor := instructionPair("S", "I", "G-1", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 30))
	all := []*entity.FlightRecord{student, instructor}

	got := FindCounterpart(student, all)
	require.NotNil(t, got)
	assert.Equal(t, instructor.ID, got.ID)

	got = FindCounterpart(instructor, all)
	require.NotNil(t, got)
	assert.Equal(t, student.ID, got.ID)
}

func TestFindCounterpart_Orphan(t *testing.T) {
	t.Parallel()

	student, _ := instructionPair("S", "I", "G-1", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 30))
	assert.Nil(t, FindCounterpart(student, []*entity.FlightRecord{student}))
	assert.Nil(t, FindCounterpart(student, nil))
}

func TestFindCounterpart_RejectsNearMisses(t *testing.T) {
	t.Parallel()

	student, instructor := instructionPair("S", "I", "G-1", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 30))

	t.Run("different aircraft", func(t *testing.T) {
		other := *instructor
		other.AircraftID = "G-2"
		assert.Nil(t, FindCounterpart(student, []*entity.FlightRecord{&other}))
	})

	t.Run("different interval", func(t *testing.T) {
		other := *instructor
		other.End = entity.NewTimeOfDay(9, 45)
		assert.Nil(t, FindCounterpart(student, []*entity.FlightRecord{&other}))
	})

	t.Run("different date", func(t *testing.T) {
		other := *instructor
		other.Date = testDay.AddDate(0, 0, 1)
		assert.Nil(t, FindCounterpart(student, []*entity.FlightRecord{&other}))
	})

	t.Run("roles not crossed", func(t *testing.T) {
		other := *instructor
		other.PilotID = "X"
		other.InstructorID = "Y"
		assert.Nil(t, FindCounterpart(student, []*entity.FlightRecord{&other}))
	})

	t.Run("non-instruction purpose", func(t *testing.T) {
		other := *instructor
		other.Purpose = entity.PurposeLocal
		assert.Nil(t, FindCounterpart(student, []*entity.FlightRecord{&other}))
	})
}

func TestFindCounterpart_NonInstructionRecordHasNone(t *testing.T) {
	t.Parallel()

	student, instructor := instructionPair("S", "I", "G-1", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 30))
	solo := &entity.FlightRecord{
		ID:         "rec-solo",
		Date:       testDay,
		Start:      student.Start,
		End:        student.End,
		PilotID:    "S",
		AircraftID: "G-1",
		Purpose:    entity.PurposeLocal,
	}
	assert.Nil(t, FindCounterpart(solo, []*entity.FlightRecord{student, instructor}))
}
