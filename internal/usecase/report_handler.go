package usecase

import (
	"context"

	"clublog-service/internal/domain/entity"
)

// ReportHandler defines the interface for report delivery handlers
type ReportHandler interface {
	// CanHandle determines if this handler can produce the given report kind
	CanHandle(kind entity.ReportKind) bool

	// Process builds the report and hands it to the notification layer
	Process(ctx context.Context, req *entity.ReportRequest) error
}

// ReportRouter routes report requests to the appropriate handler
type ReportRouter interface {
	// Register registers a handler for specific report kinds
	Register(handler ReportHandler)

	// GetHandler returns the appropriate handler for a given report kind
	GetHandler(kind entity.ReportKind) ReportHandler
}
