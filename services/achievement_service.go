package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

// AchievementService creates achievements; granting them to users lives in
// the relationship engine.
type AchievementService struct {
	achievements store.AchievementStore
}

func NewAchievementService(achievements store.AchievementStore) *AchievementService {
	return &AchievementService{achievements: achievements}
}

func (s *AchievementService) CreateAchievement(ctx context.Context, name, picture string) (*models.Achievement, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: achievement name is required", apperr.ErrInvalidOperation)
	}

	achievement := &models.Achievement{Name: name, Picture: picture}
	id, err := s.achievements.Insert(ctx, achievement)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCreation, err)
	}
	achievement.ID = id.ObjectID()
	return achievement, nil
}
