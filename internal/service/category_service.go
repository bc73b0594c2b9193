package service

import (
	"context"

	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"go.uber.org/zap"
)

type CategoryService struct {
	gw     *gateway.Client
	logger *zap.Logger
}

func NewCategoryService(gw *gateway.Client, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		gw:     gw,
		logger: logger,
	}
}

// List возвращает все категории
func (s *CategoryService) List(ctx context.Context, token string) ([]model.Category, error) {
	return s.gw.ListCategories(ctx, token)
}

// Create создаёт категорию (админ)
func (s *CategoryService) Create(ctx context.Context, token string, data gateway.CategoryData) (*model.Category, error) {
	category, err := s.gw.CreateCategory(ctx, token, data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID),
		zap.String("name", category.Name))
	return category, nil
}

// Update обновляет категорию (админ)
func (s *CategoryService) Update(ctx context.Context, token, id string, data gateway.CategoryData) (*model.Category, error) {
	category, err := s.gw.UpdateCategory(ctx, token, id, data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category updated", zap.String("category_id", id))
	return category, nil
}

// Delete удаляет категорию (админ)
func (s *CategoryService) Delete(ctx context.Context, token, id string) error {
	if err := s.gw.DeleteCategory(ctx, token, id); err != nil {
		return err
	}

	s.logger.Info("Category deleted", zap.String("category_id", id))
	return nil
}
