package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"clublog-service/internal/domain/entity"
	"clublog-service/internal/usecase"
	"clublog-service/pkg/logger"
)

// Handler exposes the submission pipeline and report aggregator to the
// form layer as a small JSON API.
type Handler struct {
	submissions *usecase.SubmissionService
	reports     *usecase.ReportService
	logger      logger.Logger
}

// NewHandler creates a new HTTP API handler
func NewHandler(submissions *usecase.SubmissionService, reports *usecase.ReportService, logger logger.Logger) *Handler {
	return &Handler{
		submissions: submissions,
		reports:     reports,
		logger:      logger,
	}
}

// Register attaches the API routes to the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/flights", h.handleFlights)
	mux.HandleFunc("/api/v1/flights/", h.handleFlightByID)
	mux.HandleFunc("/api/v1/reports", h.handleReports)
}

type flightRequest struct {
	ID              string `json:"id,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	PilotID         string `json:"pilotId"`
	InstructorID    string `json:"instructorId,omitempty"`
	AircraftID      string `json:"aircraftId"`
	LogbookType     string `json:"logbookType"`
	Purpose         string `json:"purpose"`
	TowsCount       *int   `json:"towsCount,omitempty"`
	ScheduleEntryID string `json:"scheduleEntryId,omitempty"`
	AdminOverride   bool   `json:"adminOverride,omitempty"`
}

type submitResponse struct {
	RecordID  string           `json:"recordId,omitempty"`
	Committed bool             `json:"committed"`
	Findings  []entity.Finding `json:"findings,omitempty"`
	Conflict  *entity.Conflict `json:"conflict,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// handleFlights accepts new submissions and edits. The engine decides;
// this layer only translates wire shapes.
func (h *Handler) handleFlights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req flightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: "invalid JSON body"})
		return
	}

	record, err := req.toRecord()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: err.Error()})
		return
	}

	result, err := h.submissions.SubmitFlight(r.Context(), record, usecase.SubmitOptions{
		AdminOverride: req.AdminOverride,
		Tows:          req.TowsCount,
	})
	if err != nil {
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, submitResponse{Error: vErr.Error()})
			return
		}
		h.logger.Error("Submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, submitResponse{Error: "internal error"})
		return
	}

	switch {
	case result.Committed:
		writeJSON(w, http.StatusCreated, submitResponse{
			RecordID:  result.RecordID,
			Committed: true,
			Findings:  result.Findings,
		})
	case result.Conflict != nil:
		writeJSON(w, http.StatusConflict, submitResponse{
			Findings: result.Findings,
			Conflict: result.Conflict,
		})
	default:
		writeJSON(w, http.StatusUnprocessableEntity, submitResponse{
			Findings: result.Findings,
		})
	}
}

func (h *Handler) handleFlightByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/flights/")
	if id == "" {
		http.Error(w, "missing record id", http.StatusBadRequest)
		return
	}

	if err := h.submissions.DeleteFlight(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Delete failed", "record", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReports serves aggregated reports: ?from=2026-08-01&to=2026-08-31&pilotId=P1
func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "invalid or missing from date", http.StatusBadRequest)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "invalid or missing to date", http.StatusBadRequest)
		return
	}
	if to.Before(from) {
		http.Error(w, "to must not precede from", http.StatusBadRequest)
		return
	}

	report, err := h.reports.BuildReport(r.Context(), from, to, r.URL.Query().Get("pilotId"))
	if err != nil {
		h.logger.Error("Report failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (req *flightRequest) toRecord() (*entity.FlightRecord, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, &entity.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	start, err := entity.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, &entity.ValidationError{Field: "startTime", Reason: "must be HH:MM"}
	}
	end, err := entity.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, &entity.ValidationError{Field: "endTime", Reason: "must be HH:MM"}
	}

	return &entity.FlightRecord{
		ID:              req.ID,
		Date:            date,
		Start:           start,
		End:             end,
		PilotID:         req.PilotID,
		InstructorID:    req.InstructorID,
		AircraftID:      req.AircraftID,
		Logbook:         entity.LogbookType(req.LogbookType),
		Purpose:         entity.Purpose(req.Purpose),
		ScheduleEntryID: req.ScheduleEntryID,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
