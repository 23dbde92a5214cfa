package usecase

import (
	"context"
	"fmt"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"
	"clublog-service/pkg/logger"
	"clublog-service/pkg/metrics"
)

// ReportService fetches committed records for a date range and runs
// them through the aggregator, decorating the resulting lines with
// member names for rendering.
type ReportService struct {
	flights repository.FlightRecordRepository
	pilots  repository.PilotRepository
	agg     *Aggregator
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewReportService creates a new report service
func NewReportService(
	flights repository.FlightRecordRepository,
	pilots repository.PilotRepository,
	agg *Aggregator,
	m *metrics.Metrics,
	logger logger.Logger,
) *ReportService {
	return &ReportService{
		flights: flights,
		pilots:  pilots,
		agg:     agg,
		metrics: m,
		logger:  logger,
	}
}

// BuildReport aggregates [from, to], optionally filtered to one pilot.
func (s *ReportService) BuildReport(ctx context.Context, from, to time.Time, pilotID string) (*entity.Report, error) {
	records, err := s.flights.FindByDateRange(ctx, from, to, repository.FlightRecordFilter{PilotID: pilotID})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("report_fetch").Inc()
		}
		return nil, fmt.Errorf("failed to fetch flight records: %w", err)
	}

	report := s.agg.Aggregate(records, from, to, pilotID)
	s.decorateNames(ctx, report)

	if s.metrics != nil {
		s.metrics.ReportsGenerated.Inc()
	}
	s.logger.Info("Report generated",
		"from", report.From.Format("2006-01-02"),
		"to", report.To.Format("2006-01-02"),
		"pilot", pilotID,
		"flights", report.Totals.Flights)
	return report, nil
}

// decorateNames fills display names on every line, caching lookups per
// report. A failed lookup falls back to the raw id.
func (s *ReportService) decorateNames(ctx context.Context, report *entity.Report) {
	cache := make(map[string]string)
	nameOf := func(id string) string {
		if id == "" {
			return ""
		}
		if name, ok := cache[id]; ok {
			return name
		}
		name := id
		if pilot, err := s.pilots.GetByID(ctx, id); err == nil {
			name = pilot.FullName()
		}
		cache[id] = name
		return name
	}

	for di := range report.Days {
		for li := range report.Days[di].Lines {
			line := &report.Days[di].Lines[li]
			line.PilotName = nameOf(line.PilotID)
			line.InstructorName = nameOf(line.InstructorID)
		}
	}
}
