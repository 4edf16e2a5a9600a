package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

// CategoryService merges the fixed default category set with the
// principal's custom categories. Defaults keep their ordering and win on
// case-insensitive collisions; custom names are appended in creation
// order.
type CategoryService struct {
	session    domain.Session
	categories ports.CategoryRepository
}

var _ ports.CategoryService = (*CategoryService)(nil)

func NewCategoryService(session domain.Session, categories ports.CategoryRepository) *CategoryService {
	return &CategoryService{session: session, categories: categories}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]string, error) {
	custom, err := s.categories.ListNames(ctx, s.session.UserID)
	if err != nil {
		return nil, err
	}
	return mergeCategories(custom), nil
}

// AddCategory persists a custom category and returns the updated list
// with the new name appended. A name that collapses into an existing
// entry case-insensitively is absorbed: the current list comes back
// unchanged and nothing is written.
func (s *CategoryService) AddCategory(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}

	current, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range current {
		if strings.EqualFold(existing, name) {
			return current, nil
		}
	}

	if _, err := s.categories.Create(ctx, s.session.UserID, name); err != nil {
		return nil, err
	}
	return append(current, name), nil
}

func mergeCategories(custom []string) []string {
	merged := make([]string, 0, len(domain.DefaultCategories)+len(custom))
	merged = append(merged, domain.DefaultCategories...)

	for _, name := range custom {
		duplicate := false
		for _, existing := range merged {
			if strings.EqualFold(existing, name) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			merged = append(merged, name)
		}
	}
	return merged
}
