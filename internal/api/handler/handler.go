package handler

import (
	"go.uber.org/zap"

	"github.com/sumeeth742/university/internal/service"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth   *AuthHandler
	Result *ResultHandler
}

// NewHandler builds the handler aggregate from the service layer.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.Auth, logger),
		Result: NewResultHandler(svc.Result, logger),
	}
}
