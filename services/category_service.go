package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
	"github.com/DvizhHSE/Dvizh-backend/models"
	"github.com/DvizhHSE/Dvizh-backend/store"
)

// CategoryService manages the small read-mostly category reference table.
type CategoryService struct {
	categories store.CategoryStore
	log        zerolog.Logger
}

func NewCategoryService(categories store.CategoryStore, log zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, log: log}
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperr.ErrInvalidOperation)
	}

	category := &models.Category{Name: name}
	id, err := s.categories.Insert(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCreation, err)
	}
	category.ID = id.ObjectID()
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	id, err := store.ParseID(categoryID)
	if err != nil {
		return nil, err
	}
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.All(ctx)
}

// Seed inserts the default categories, but only into an empty collection.
func (s *CategoryService) Seed(ctx context.Context, names ...string) error {
	n, err := s.categories.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, name := range names {
		if _, err := s.categories.Insert(ctx, &models.Category{Name: name}); err != nil {
			return err
		}
	}
	s.log.Info().Int("count", len(names)).Msg("seeded initial categories")
	return nil
}
