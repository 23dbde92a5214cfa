package schedule

import (
	"context"
	"strings"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"
	"clublog-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarService syncs the club's shared reservations calendar into
// the roster store. Each calendar event becomes one scheduling-board
// slot; flight records may reference slots via scheduleEntryId.
type CalendarService struct {
	calendarService *calendar.Service
	rosterRepo      repository.RosterRepository
	logger          logger.Logger
	calendarID      string
	pollInterval    time.Duration
	lookaheadDays   int
}

// NewCalendarService creates a new calendar sync service
func NewCalendarService(ctx context.Context, tokenSource oauth2.TokenSource, rosterRepo repository.RosterRepository, logger logger.Logger, calendarID string, pollInterval time.Duration, lookaheadDays int) (*CalendarService, error) {
	service, err := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &CalendarService{
		calendarService: service,
		rosterRepo:      rosterRepo,
		logger:          logger,
		calendarID:      calendarID,
		pollInterval:    pollInterval,
		lookaheadDays:   lookaheadDays,
	}, nil
}

// SyncRoster fetches upcoming events and upserts them as roster slots
func (s *CalendarService) SyncRoster(ctx context.Context) error {
	from := time.Now()
	to := from.AddDate(0, 0, s.lookaheadDays)

	s.logger.Info("Syncing reservations calendar",
		"calendar", s.calendarID,
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"))

	events, err := s.calendarService.Events.List(s.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		s.logger.Error("Failed to list calendar events", "error", err)
		return err
	}

	synced := 0
	for _, event := range events.Items {
		slot, ok := s.toRosterSlot(event)
		if !ok {
			continue
		}
		if err := s.rosterRepo.Upsert(ctx, slot); err != nil {
			s.logger.Error("Failed to upsert roster slot", "event", event.Id, "error", err)
			continue
		}
		synced++
	}

	s.logger.Info("Roster sync complete", "events", len(events.Items), "synced", synced)
	return nil
}

// toRosterSlot maps a calendar event to a roster slot. All-day events
// and events crossing midnight are not bookable slots and are skipped.
func (s *CalendarService) toRosterSlot(event *calendar.Event) (*entity.RosterSlot, bool) {
	if event.Start == nil || event.End == nil || event.Start.DateTime == "" || event.End.DateTime == "" {
		return nil, false
	}

	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		s.logger.Warn("Skipping event with bad start time", "event", event.Id, "value", event.Start.DateTime)
		return nil, false
	}
	end, err := time.Parse(time.RFC3339, event.End.DateTime)
	if err != nil {
		s.logger.Warn("Skipping event with bad end time", "event", event.Id, "value", event.End.DateTime)
		return nil, false
	}
	if !entity.SameDate(start, end) || !end.After(start) {
		return nil, false
	}

	// Convention on the club calendar: summary is "<pilot> - <notes>",
	// location holds the aircraft id.
	pilotName := event.Summary
	if idx := strings.Index(event.Summary, " - "); idx > 0 {
		pilotName = event.Summary[:idx]
	}

	return &entity.RosterSlot{
		ID:         event.Id,
		Date:       entity.DateOnly(start),
		Start:      entity.NewTimeOfDay(start.Hour(), start.Minute()),
		End:        entity.NewTimeOfDay(end.Hour(), end.Minute()),
		AircraftID: strings.TrimSpace(event.Location),
		PilotName:  strings.TrimSpace(pilotName),
		Summary:    event.Summary,
	}, true
}

// StartPolling starts the calendar polling loop
func (s *CalendarService) StartPolling(ctx context.Context) {
	s.logger.Info("Starting calendar polling", "interval", s.pollInterval)

	if err := s.SyncRoster(ctx); err != nil {
		s.logger.Error("Initial roster sync failed", "error", err)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Calendar polling stopped")
			return
		case <-ticker.C:
			if err := s.SyncRoster(ctx); err != nil {
				s.logger.Error("Roster sync failed", "error", err)
			}
		}
	}
}
