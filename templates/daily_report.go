package templates

import (
	"context"
	"fmt"
	"strings"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/domain/repository"
	"clublog-service/internal/usecase"
	"clublog-service/pkg/logger"
)

// DailyReportHandler renders aggregated flight reports as plain text
// and hands them to the chat-bot for delivery.
type DailyReportHandler struct {
	reports  *usecase.ReportService
	notifier repository.NotifierRepository
	logger   logger.Logger
}

// NewDailyReportHandler creates a new daily report handler
func NewDailyReportHandler(reports *usecase.ReportService, notifier repository.NotifierRepository, logger logger.Logger) *DailyReportHandler {
	return &DailyReportHandler{
		reports:  reports,
		notifier: notifier,
		logger:   logger,
	}
}

// CanHandle determines if this handler can produce the given report kind
func (h *DailyReportHandler) CanHandle(kind entity.ReportKind) bool {
	return kind == entity.ReportDaily || kind == entity.ReportDateRange || kind == entity.ReportPilotRange
}

// Process builds the requested report and sends the rendered text
func (h *DailyReportHandler) Process(ctx context.Context, req *entity.ReportRequest) error {
	report, err := h.reports.BuildReport(ctx, req.From, req.To, req.PilotID)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	text := RenderReport(report)
	taskID, err := h.notifier.SendReport(ctx, &entity.ReportMessage{
		ChannelID: req.ChannelID,
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("failed to deliver report: %w", err)
	}

	h.logger.Info("Report delivered", "kind", req.Kind, "taskId", taskID)
	return nil
}

// RenderReport formats an aggregated report as chat text. Matched
// instruction pairs appear as a single combined line.
func RenderReport(report *entity.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Flight report %s to %s\n",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02"))

	if report.Empty {
		b.WriteString("No flights logged in this period.\n")
		return b.String()
	}

	for _, day := range report.Days {
		fmt.Fprintf(&b, "\n%s\n", day.Date.Format("Monday 2006-01-02"))
		for _, line := range day.Lines {
			b.WriteString("  " + renderLine(line) + "\n")
		}
	}

	t := report.Totals
	fmt.Fprintf(&b, "\nTotals: %.1fh glider, %.1fh engine, %d tows, %d flights\n",
		t.GliderHours, t.EngineHours, t.TowEvents, t.Flights)
	return b.String()
}

func renderLine(line entity.ReportLine) string {
	slot := fmt.Sprintf("%s-%s %s", line.Start, line.End, line.AircraftID)

	if line.Pair {
		return fmt.Sprintf("%s Student: %s, Instructor: %s (%.1fh)",
			slot, line.PilotName, line.InstructorName, line.DurationHours)
	}

	if line.Purpose.IsTow() {
		return fmt.Sprintf("%s %s: %d tow(s) (%.1fh)",
			slot, line.PilotName, line.Tows, line.DurationHours)
	}

	who := line.PilotName
	if line.InstructorName != "" {
		who += " / " + line.InstructorName
	}
	return fmt.Sprintf("%s %s (%.1fh)", slot, who, line.DurationHours)
}
