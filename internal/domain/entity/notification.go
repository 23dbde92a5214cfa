package entity

import "time"

// ReportKind selects which report a handler produces.
type ReportKind string

const (
	ReportDaily      ReportKind = "daily"
	ReportDateRange  ReportKind = "range"
	ReportPilotRange ReportKind = "pilot_range"
)

// ReportRequest asks the report router for one rendered report
// delivery.
type ReportRequest struct {
	Kind      ReportKind
	From      time.Time
	To        time.Time
	PilotID   string
	ChannelID string
}

// ReportMessage is the envelope posted to the chat-bot service. The
// bot owns delivery; this service only supplies formatted text.
type ReportMessage struct {
	ChannelID string    `json:"channelId"`
	Text      string    `json:"text"`
	SendAt    time.Time `json:"sendAt"`
}
