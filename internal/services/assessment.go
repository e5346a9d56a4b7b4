package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"assessment-api/internal/cache"
	"assessment-api/internal/models"
	"assessment-api/internal/repository"
	"assessment-api/internal/utils"
)

// AssessmentService fronts the assessment store with an optional Redis cache
// for the list snapshot. With a nil cache every call goes straight through.
type AssessmentService struct {
	assessmentRepo repository.AssessmentStore
	cache          *cache.RedisCache
}

func NewAssessmentService(assessmentRepo repository.AssessmentStore) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		cache:          nil,
	}
}

func NewAssessmentServiceWithCache(assessmentRepo repository.AssessmentStore, cache *cache.RedisCache) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		cache:          cache,
	}
}

func (s *AssessmentService) Create(ctx context.Context, assessment *models.Assessment) error {
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *AssessmentService) List(ctx context.Context) ([]models.Assessment, error) {
	if s.cache != nil {
		var assessments []models.Assessment
		err := s.cache.GetJSON(ctx, cache.AssessmentListKey(), &assessments)
		if err == nil {
			utils.LogSuccess("Cache", fmt.Sprintf("HIT: assessment list served from cache (%d records)", len(assessments)))
			return assessments, nil
		}
		if err != redis.Nil {
			utils.LogWarning("Cache", fmt.Sprintf("Cache read failed: %v", err))
		}
	}

	assessments, err := s.assessmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.AssessmentListKey(), assessments, cache.AssessmentListTTL); err != nil {
			utils.LogWarning("Cache", fmt.Sprintf("Cache write failed: %v", err))
		}
	}

	return assessments, nil
}

func (s *AssessmentService) Update(ctx context.Context, id, ownerID string, req models.AssessmentRequest) error {
	if err := s.assessmentRepo.Update(ctx, id, ownerID, req); err != nil {
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *AssessmentService) Delete(ctx context.Context, id string) error {
	if err := s.assessmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *AssessmentService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.AssessmentListKey()); err != nil {
		utils.LogWarning("Cache", fmt.Sprintf("Cache invalidation failed: %v", err))
	}
}
