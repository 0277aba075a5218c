package service

import (
	"go.uber.org/zap"

	"github.com/sumeeth742/university/config"
	"github.com/sumeeth742/university/internal/metrics"
	"github.com/sumeeth742/university/internal/repository"
	"github.com/sumeeth742/university/pkg/jwt"
	"github.com/sumeeth742/university/pkg/redis"
)

// Service aggregates all services.
type Service struct {
	Auth   AuthService
	Result ResultService
}

// NewService builds the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	collector *metrics.Collector,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:   NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Result: NewResultService(cfg, repo, collector, logger),
	}
}
