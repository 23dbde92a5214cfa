package router

import (
	"clublog-service/internal/domain/entity"
	"clublog-service/internal/usecase"
	"clublog-service/pkg/logger"
)

// KindRouter routes report requests to the appropriate handler based
// on report kind
type KindRouter struct {
	handlers []usecase.ReportHandler
	logger   logger.Logger
}

// NewKindRouter creates a new report kind router
func NewKindRouter(logger logger.Logger) *KindRouter {
	return &KindRouter{
		handlers: make([]usecase.ReportHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific report kinds
func (r *KindRouter) Register(handler usecase.ReportHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered report handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given report kind
func (r *KindRouter) GetHandler(kind entity.ReportKind) usecase.ReportHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(kind) {
			return handler
		}
	}
	return nil
}
