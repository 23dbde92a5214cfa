package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"
	"clublog-service/pkg/logger"
	"clublog-service/pkg/metrics"

	"github.com/google/uuid"
)

// SubmitOptions carries caller-side flags for one submission.
type SubmitOptions struct {
	// AdminOverride downgrades category findings to warnings. Medical
	// and airworthiness blocks, and every scheduling conflict, stay
	// blocking regardless.
	AdminOverride bool

	// Tows overrides the tow counter for tow flights; nil keeps the
	// default of one tow.
	Tows *int
}

// SubmitResult is what the caller gets back: either a committed record
// id, or the findings and conflict that stopped the submission.
type SubmitResult struct {
	RecordID  string
	Committed bool
	Findings  []entity.Finding
	Conflict  *entity.Conflict
}

// SubmissionService runs a candidate flight record through the full
// pre-commit pipeline: shape validation, eligibility, conflict
// detection, derived-field calculation, and finally the store commit.
// Nothing is mutated before the commit call, so a caller may abandon a
// submission at any point (context cancellation included) without side
// effects.
type SubmissionService struct {
	flights     repository.FlightRecordRepository
	pilots      repository.PilotRepository
	aircraft    repository.AircraftRepository
	eligibility *EligibilityValidator
	conflicts   *ConflictDetector
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	flights repository.FlightRecordRepository,
	pilots repository.PilotRepository,
	aircraft repository.AircraftRepository,
	eligibility *EligibilityValidator,
	conflicts *ConflictDetector,
	m *metrics.Metrics,
	logger logger.Logger,
) *SubmissionService {
	return &SubmissionService{
		flights:     flights,
		pilots:      pilots,
		aircraft:    aircraft,
		eligibility: eligibility,
		conflicts:   conflicts,
		metrics:     m,
		logger:      logger,
	}
}

// SubmitFlight validates and commits a candidate record. A candidate
// with an existing ID is an edit and is re-validated in full against
// every other record of its date, with its own prior version and its
// instruction counterpart removed from the comparison set.
func (s *SubmissionService) SubmitFlight(ctx context.Context, record *entity.FlightRecord, opts SubmitOptions) (*SubmitResult, error) {
	start := time.Now()
	if s.metrics != nil {
		defer func() { s.metrics.SubmissionTime.Observe(time.Since(start).Seconds()) }()
	}

	if err := validateShape(record); err != nil {
		s.reject("validation")
		return nil, err
	}
	record.Date = entity.DateOnly(record.Date)

	pilot, instructor, aircraft, err := s.fetchReferences(ctx, record)
	if err != nil {
		return nil, err
	}

	findings := s.eligibility.Validate(ValidateInput{
		Record:        record,
		Pilot:         pilot,
		Instructor:    instructor,
		Aircraft:      aircraft,
		AdminOverride: opts.AdminOverride,
	})
	if entity.HasBlocking(findings) {
		s.reject("eligibility")
		return &SubmitResult{Findings: findings}, nil
	}

	sameDay, err := s.flights.FindByDate(ctx, record.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch same-day records: %w", err)
	}

	names := s.nameResolver(ctx)
	if conflict := s.conflicts.Check(record, sameDay, names); conflict != nil {
		s.rejectConflict(conflict)
		return &SubmitResult{Findings: findings, Conflict: conflict}, nil
	}

	if err := ApplyDerived(record, opts.Tows); err != nil {
		s.reject("validation")
		return nil, err
	}

	committed, err := s.commit(ctx, record)
	if err != nil {
		return nil, err
	}
	if committed.Conflict != nil {
		// The store's own guard rejected the commit: a concurrent
		// writer took the slot after our snapshot. Surfaced as a
		// conflict for resubmission, never retried here.
		committed.Findings = findings
		return committed, nil
	}

	if s.metrics != nil {
		s.metrics.SubmissionsAccepted.Inc()
	}
	s.logger.Info("Flight record committed",
		"record", record.ID,
		"pilot", record.PilotID,
		"aircraft", record.AircraftID,
		"slot", record.Interval().String())

	committed.Findings = findings
	return committed, nil
}

// DeleteFlight removes a record. The counterpart of a deleted
// instruction record is left in place; it simply becomes orphaned and
// aggregates as a standalone flight from then on.
func (s *SubmissionService) DeleteFlight(ctx context.Context, id string) error {
	if id == "" {
		return &entity.ValidationError{Field: "id", Reason: "is required"}
	}
	if err := s.flights.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flight record: %w", err)
	}
	s.logger.Info("Flight record deleted", "record", id)
	return nil
}

func validateShape(record *entity.FlightRecord) error {
	switch {
	case record.PilotID == "":
		return &entity.ValidationError{Field: "pilotId", Reason: "is required"}
	case record.AircraftID == "":
		return &entity.ValidationError{Field: "aircraftId", Reason: "is required"}
	case record.Date.IsZero():
		return &entity.ValidationError{Field: "date", Reason: "is required"}
	case record.End <= record.Start:
		return &entity.ValidationError{Field: "endTime", Reason: "must be after startTime"}
	case !record.Logbook.Valid():
		return &entity.ValidationError{Field: "logbookType", Reason: "is unknown"}
	case !record.Purpose.Valid():
		return &entity.ValidationError{Field: "purpose", Reason: "is unknown"}
	case record.InstructorID != "" && record.InstructorID == record.PilotID:
		return &entity.ValidationError{Field: "instructorId", Reason: "must differ from pilotId"}
	}
	return nil
}

func (s *SubmissionService) fetchReferences(ctx context.Context, record *entity.FlightRecord) (*entity.Pilot, *entity.Pilot, *entity.Aircraft, error) {
	pilot, err := s.pilots.GetByID(ctx, record.PilotID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch pilot %s: %w", record.PilotID, err)
	}

	var instructor *entity.Pilot
	if record.InstructorID != "" {
		instructor, err = s.pilots.GetByID(ctx, record.InstructorID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to fetch instructor %s: %w", record.InstructorID, err)
		}
	}

	aircraft, err := s.aircraft.GetByID(ctx, record.AircraftID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch aircraft %s: %w", record.AircraftID, err)
	}
	return pilot, instructor, aircraft, nil
}

// nameResolver resolves pilot names for conflict messages, falling
// back to the raw id when the lookup fails.
func (s *SubmissionService) nameResolver(ctx context.Context) NameResolver {
	return func(personID string) string {
		pilot, err := s.pilots.GetByID(ctx, personID)
		if err != nil {
			return personID
		}
		return pilot.FullName()
	}
}

func (s *SubmissionService) commit(ctx context.Context, record *entity.FlightRecord) (*SubmitResult, error) {
	isEdit := record.ID != ""
	if !isEdit {
		record.ID = uuid.NewString()
	}

	var err error
	if isEdit {
		err = s.flights.Update(ctx, record)
	} else {
		err = s.flights.Insert(ctx, record)
	}

	if errors.Is(err, entity.ErrStaleSnapshot) {
		s.reject("stale_data")
		if s.metrics != nil {
			s.metrics.ConflictsDetected.WithLabelValues(string(entity.ConflictStaleData)).Inc()
		}
		return &SubmitResult{Conflict: &entity.Conflict{
			Kind:      entity.ConflictStaleData,
			SubjectID: record.AircraftID,
			Slot:      record.Interval().String(),
			Message:   "slot was taken by a concurrent submission, please resubmit",
		}}, nil
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("commit").Inc()
		}
		return nil, fmt.Errorf("failed to commit flight record: %w", err)
	}

	return &SubmitResult{RecordID: record.ID, Committed: true}, nil
}

func (s *SubmissionService) reject(reason string) {
	if s.metrics != nil {
		s.metrics.SubmissionsRejected.WithLabelValues(reason).Inc()
	}
}

func (s *SubmissionService) rejectConflict(conflict *entity.Conflict) {
	s.reject("conflict")
	if s.metrics != nil {
		s.metrics.ConflictsDetected.WithLabelValues(string(conflict.Kind)).Inc()
	}
}
