// Package dashboard exposes the read-only aggregate views: dashboard stats,
// MLM overview, top performers and investment stats. Pure pass-throughs over
// the admin API; nothing here is derived locally.
package dashboard

import (
	"context"

	"adminconsole/internal/api"
	"adminconsole/internal/domain"
	"adminconsole/pkg/logger"
)

type Service struct {
	client *api.Client
	log    logger.Logger
}

func NewService(client *api.Client, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{client: client, log: log}
}

func (s *Service) Stats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	env, err := s.client.Get(ctx, "/admin/dashboard/stats", nil)
	if err != nil {
		return stats, err
	}
	if err := env.DecodeData(&stats); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *Service) MlmOverview(ctx context.Context) (domain.MlmOverview, error) {
	var overview domain.MlmOverview
	env, err := s.client.Get(ctx, "/admin/mlm/overview", nil)
	if err != nil {
		return overview, err
	}
	if err := env.DecodeData(&overview); err != nil {
		return overview, err
	}
	return overview, nil
}

func (s *Service) TopPerformers(ctx context.Context) ([]domain.TopPerformer, error) {
	env, err := s.client.Get(ctx, "/admin/mlm/top-performers", nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		TopPerformers []domain.TopPerformer `json:"topPerformers"`
	}
	if err := env.DecodeData(&data); err != nil {
		return nil, err
	}
	return data.TopPerformers, nil
}

func (s *Service) InvestmentStats(ctx context.Context) (domain.InvestmentStats, error) {
	var stats domain.InvestmentStats
	env, err := s.client.Get(ctx, "/admin/investment/stats", nil)
	if err != nil {
		return stats, err
	}
	if err := env.DecodeData(&stats); err != nil {
		return stats, err
	}
	return stats, nil
}
