package catalog

import (
	"context"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := catalog.NewCategory(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}
