package catalog

import (
	"strings"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Category represents a product category
// Categories are flat and referenced by products via name.
type Category struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
	}

	return category, nil
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
