package catalog

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Supplier represents a goods supplier
// It is the aggregate root for supplier-related operations.
// Suppliers are referenced by products via their display name,
// which therefore must be unique.
type Supplier struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Contact string `gorm:"type:varchar(100)"`
	Email   string `gorm:"type:varchar(200);index"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contact, email string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Contact:           strings.TrimSpace(contact),
		Email:             strings.TrimSpace(email),
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// UpdateContact updates the supplier's contact person and email
func (s *Supplier) UpdateContact(contact, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	s.Contact = strings.TrimSpace(contact)
	s.Email = strings.TrimSpace(email)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

func validateSupplierName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email must contain @")
	}
	return nil
}
