package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// ListCategories возвращает все категории
func (c *Client) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", token, "", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CategoryData изменяемые поля категории
type CategoryData struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// CreateCategory создаёт категорию (только админ)
func (c *Client) CreateCategory(ctx context.Context, token string, data CategoryData) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPost, "/admin/categories", token, "", data, &category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory обновляет категорию (только админ)
func (c *Client) UpdateCategory(ctx context.Context, token, id string, data CategoryData) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPut, "/admin/categories/"+id, token, "", data, &category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory удаляет категорию (только админ)
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/categories/"+id, token, "", nil, nil); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
