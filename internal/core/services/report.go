package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
	"github.com/miservicio/auth-service/internal/core/ports"
)

const (
	usersSummaryCacheKey = "report:users_summary"
	usersSummaryCacheTTL = time.Minute
)

// ReportService backs the small operational reporting surface.
type ReportService struct {
	userRepo ports.UserRepository
	logger   ports.LoggerPort
	cache    ports.CachePort
}

func NewReportService(userRepo ports.UserRepository, logger ports.LoggerPort, cache ports.CachePort) *ReportService {
	return &ReportService{
		userRepo: userRepo,
		logger:   logger,
		cache:    cache,
	}
}

func (s *ReportService) UsersSummary(ctx context.Context) (*domain.UsersSummary, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(usersSummaryCacheKey); err == nil {
			var cached domain.UsersSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	summary, err := s.userRepo.Summary(ctx)
	if err != nil {
		s.logger.Error("Failed to build users summary", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(usersSummaryCacheKey, data, usersSummaryCacheTTL); err != nil {
				s.logger.Warn("Failed to cache users summary", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	return summary, nil
}
