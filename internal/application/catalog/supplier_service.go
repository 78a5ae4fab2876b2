package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo catalog.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo catalog.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this name already exists")
	}

	supplier, err := catalog.NewSupplier(req.Name, req.Contact, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// UpdateContact updates a supplier's contact person and email
func (s *SupplierService) UpdateContact(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierContactRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if err := supplier.UpdateContact(req.Contact, req.Email); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with pagination
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierResponse], error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
