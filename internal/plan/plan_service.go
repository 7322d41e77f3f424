package plan

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	planerrors "jornada40/internal/plan/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ActivePlansKey = "plans:active"
	activePlansTTL = time.Hour
)

//go:generate mockgen -source=plan_service.go -destination=mock/plan_service_mock.go -package=mock
type Service interface {
	GetActive(ctx context.Context) ([]PlanResponse, error)
	GetActiveByID(ctx context.Context, id string) (*Plan, error)
	SeedDefaults(ctx context.Context) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("plan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("plan.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) GetActive(ctx context.Context) ([]PlanResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ActivePlansKey).Result(); err == nil {
			var resp []PlanResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	plans, err := s.repo.FindActive(ctx)
	if err != nil {
		s.logger.Error("get active plans failed", zap.Error(err))
		return nil, err
	}

	resp := make([]PlanResponse, len(plans))
	for i, p := range plans {
		resp[i] = mapToResponse(p)
	}

	if s.rdb != nil {
		if jsonData, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, ActivePlansKey, jsonData, activePlansTTL).Err(); err != nil {
				s.logger.Warn("cache active plans failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

func (s *service) GetActiveByID(ctx context.Context, id string) (*Plan, error) {
	p, err := s.repo.FindActiveByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, planerrors.ErrPlanNotAvailable
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) SeedDefaults(ctx context.Context) error {
	if err := s.repo.Seed(ctx, DefaultPlans()); err != nil {
		s.logger.Error("seed plans failed", zap.Error(err))
		return err
	}
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, ActivePlansKey).Err()
	}
	s.logger.Info("plans seeded")
	return nil
}

func mapToResponse(p Plan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		PriceCLP:     p.PriceCLP,
		MaxCompanies: p.MaxCompanies,
		MaxEmployees: p.MaxEmployees,
	}
}
