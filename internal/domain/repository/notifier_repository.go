package repository

import (
	"context"

	"clublog-service/internal/domain/entity"
)

// NotifierRepository sends rendered report text to the chat-bot
// service and returns the delivery task id.
type NotifierRepository interface {
	SendReport(ctx context.Context, msg *entity.ReportMessage) (string, error)
}
