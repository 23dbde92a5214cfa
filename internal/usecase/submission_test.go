package usecase

import (
	"context"
	"testing"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFlightStore struct {
	records   map[string]*entity.FlightRecord
	insertErr error
	updateErr error
}

func newFakeFlightStore(records ...*entity.FlightRecord) *fakeFlightStore {
	s := &fakeFlightStore{records: make(map[string]*entity.FlightRecord)}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *fakeFlightStore) FindByID(ctx context.Context, id string) (*entity.FlightRecord, error) {
	r, ok := s.records[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return r, nil
}

func (s *fakeFlightStore) FindByDate(ctx context.Context, date time.Time) ([]*entity.FlightRecord, error) {
	var out []*entity.FlightRecord
	for _, r := range s.records {
		if entity.SameDate(r.Date, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeFlightStore) FindByDateRange(ctx context.Context, from, to time.Time, filter repository.FlightRecordFilter) ([]*entity.FlightRecord, error) {
	var out []*entity.FlightRecord
	for _, r := range s.records {
		if r.Date.Before(entity.DateOnly(from)) || r.Date.After(entity.DateOnly(to)) {
			continue
		}
		if filter.PilotID != "" && !r.Involves(filter.PilotID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeFlightStore) Insert(ctx context.Context, record *entity.FlightRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.records[record.ID] = record
	return nil
}

func (s *fakeFlightStore) Update(ctx context.Context, record *entity.FlightRecord) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.records[record.ID]; !ok {
		return entity.ErrNotFound
	}
	s.records[record.ID] = record
	return nil
}

func (s *fakeFlightStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.records[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

type fakePilotStore map[string]*entity.Pilot

func (s fakePilotStore) GetByID(ctx context.Context, id string) (*entity.Pilot, error) {
	p, ok := s[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return p, nil
}

type fakeAircraftStore map[string]*entity.Aircraft

func (s fakeAircraftStore) GetByID(ctx context.Context, id string) (*entity.Aircraft, error) {
	a, ok := s[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return a, nil
}

func newSubmissionService(flights *fakeFlightStore) *SubmissionService {
	pilots := fakePilotStore{
		"P1": gliderPilot("P1", "Piloto de planeador"),
		"P2": gliderPilot("P2", "Piloto de planeador"),
		"I1": gliderPilot("I1", "Instructor de planeador"),
	}
	aircraft := fakeAircraftStore{
		"G1": serviceableAircraft("G1"),
		"G2": serviceableAircraft("G2"),
	}
	return NewSubmissionService(
		flights,
		pilots,
		aircraft,
		NewEligibilityValidator(DefaultEligibilityConfig(), nopLogger{}),
		NewConflictDetector(nopLogger{}),
		nil,
		nopLogger{},
	)
}

func TestSubmitFlight_Commits(t *testing.T) {
	t.Parallel()

	flights := newFakeFlightStore()
	svc := newSubmissionService(flights)

	rec := gliderCandidate("P1", "G1")
	rec.Start = entity.NewTimeOfDay(10, 0)
	rec.End = entity.NewTimeOfDay(11, 1)

	result, err := svc.SubmitFlight(context.Background(), rec, SubmitOptions{})
	require.NoError(t, err)
	require.True(t, result.Committed)
	assert.NotEmpty(t, result.RecordID)
	assert.Nil(t, result.Conflict)

	stored := flights.records[result.RecordID]
	require.NotNil(t, stored)
	assert.InDelta(t, 1.1, stored.DurationHours, 1e-9)
	require.NotNil(t, stored.BillableMinutes)
	assert.Equal(t, 61, *stored.BillableMinutes)
}

func TestSubmitFlight_RejectsMalformedInput(t *testing.T) {
	t.Parallel()

	svc := newSubmissionService(newFakeFlightStore())

	tests := []struct {
		name   string
		mutate func(*entity.FlightRecord)
		field  string
	}{
		{"empty interval", func(r *entity.FlightRecord) { r.End = r.Start }, "endTime"},
		{"inverted interval", func(r *entity.FlightRecord) { r.End = r.Start - 30 }, "endTime"},
		{"missing pilot", func(r *entity.FlightRecord) { r.PilotID = "" }, "pilotId"},
		{"missing aircraft", func(r *entity.FlightRecord) { r.AircraftID = "" }, "aircraftId"},
		{"unknown purpose", func(r *entity.FlightRecord) { r.Purpose = "joyride" }, "purpose"},
		{"self instruction", func(r *entity.FlightRecord) { r.InstructorID = r.PilotID }, "instructorId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := gliderCandidate("P1", "G1")
			tt.mutate(rec)

			_, err := svc.SubmitFlight(context.Background(), rec, SubmitOptions{})
			var vErr *entity.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestSubmitFlight_BlockingFindingHalts(t *testing.T) {
	t.Parallel()

	flights := newFakeFlightStore()
	svc := newSubmissionService(flights)

	rec := gliderCandidate("P2", "G1")
	expired := testDay.AddDate(0, 0, -1)
	p2 := gliderPilot("P2", "Piloto de planeador")
	p2.MedicalExpiry = &expired
	svc.pilots.(fakePilotStore)["P2"] = p2

	result, err := svc.SubmitFlight(context.Background(), rec, SubmitOptions{})
	require.NoError(t, err)
	assert.False(t, result.Committed)
	assert.Empty(t, result.RecordID)
	require.NotEmpty(t, result.Findings)
	assert.True(t, entity.HasBlocking(result.Findings))
	assert.Empty(t, flights.records, "nothing is committed on a blocking finding")
}

func TestSubmitFlight_AircraftConflictNamesPilot(t *testing.T) {
	t.Parallel()

	existing := soloFlight("r1", "P1", "G1", entity.NewTimeOfDay(10, 0), entity.NewTimeOfDay(11, 0))
	flights := newFakeFlightStore(existing)
	svc := newSubmissionService(flights)

	candidate := gliderCandidate("P2", "G1")
	candidate.Start = entity.NewTimeOfDay(10, 30)
	candidate.End = entity.NewTimeOfDay(11, 30)

	result, err := svc.SubmitFlight(context.Background(), candidate, SubmitOptions{})
	require.NoError(t, err)
	assert.False(t, result.Committed)
	require.NotNil(t, result.Conflict)
	assert.Equal(t, entity.ConflictAircraft, result.Conflict.Kind)
	assert.Contains(t, result.Conflict.Message, "Ana García")
	assert.Len(t, flights.records, 1, "candidate was not committed")
}

func TestSubmitFlight_EditRevalidatesWithoutSelf(t *testing.T) {
	t.Parallel()

	prior := soloFlight("r1", "P1", "G1", entity.NewTimeOfDay(10, 0), entity.NewTimeOfDay(11, 0))
	flights := newFakeFlightStore(prior)
	svc := newSubmissionService(flights)

	edited := gliderCandidate("P1", "G1")
	edited.ID = "r1"
	edited.Start = entity.NewTimeOfDay(10, 15)
	edited.End = entity.NewTimeOfDay(11, 15)

	result, err := svc.SubmitFlight(context.Background(), edited, SubmitOptions{})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Equal(t, "r1", result.RecordID)
	assert.Equal(t, entity.NewTimeOfDay(10, 15), flights.records["r1"].Start)
}

func TestSubmitFlight_StaleSnapshotSurfacesAsConflict(t *testing.T) {
	t.Parallel()

	flights := newFakeFlightStore()
	flights.insertErr = entity.ErrStaleSnapshot
	svc := newSubmissionService(flights)

	result, err := svc.SubmitFlight(context.Background(), gliderCandidate("P1", "G1"), SubmitOptions{})
	require.NoError(t, err, "a stale race is a user-facing conflict, not an internal error")
	assert.False(t, result.Committed)
	require.NotNil(t, result.Conflict)
	assert.Equal(t, entity.ConflictStaleData, result.Conflict.Kind)
}

func TestSubmitFlight_SecondHalfOfPairCommits(t *testing.T) {
	t.Parallel()

	student, _ := instructionPair("S", "I1", "G1", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 30))
	student.PilotID = "P1"
	student.InstructorID = "I1"
	flights := newFakeFlightStore(student)
	svc := newSubmissionService(flights)

	// The instructor logs their own half of the same physical flight:
	// same slot and aircraft, roles crossed.
	instructorRec := &entity.FlightRecord{
		Date:         testDay,
		Start:        entity.NewTimeOfDay(9, 0),
		End:          entity.NewTimeOfDay(9, 30),
		PilotID:      "I1",
		InstructorID: "P1",
		AircraftID:   "G1",
		Logbook:      entity.LogbookGlider,
		Purpose:      entity.PurposeInstructionGiven,
	}

	result, err := svc.SubmitFlight(context.Background(), instructorRec, SubmitOptions{})
	require.NoError(t, err)
	assert.True(t, result.Committed, "the counterpart slot is legitimate, not a conflict")
}

func TestDeleteFlight(t *testing.T) {
	t.Parallel()

	existing := soloFlight("r1", "P1", "G1", entity.NewTimeOfDay(10, 0), entity.NewTimeOfDay(11, 0))
	flights := newFakeFlightStore(existing)
	svc := newSubmissionService(flights)

	require.NoError(t, svc.DeleteFlight(context.Background(), "r1"))
	assert.Empty(t, flights.records)

	err := svc.DeleteFlight(context.Background(), "r1")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
