package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
)

// ProductService handles product-related business operations.
// Products reference their category and supplier by name; both must
// exist before a product can be registered.
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	supplierRepo   catalog.SupplierRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	supplierRepo catalog.SupplierRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByName(ctx, req.Category); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}

	if _, err := s.supplierRepo.FindByName(ctx, req.Supplier); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier not found")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(
		req.Name,
		req.Category,
		req.Supplier,
		valueobject.NewMoneyUSD(req.Price),
		valueobject.NewMoneyUSD(req.Cost),
		req.Stock,
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Restock adds stock to a product
func (s *ProductService) Restock(ctx context.Context, productID uuid.UUID, req RestockProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Restock(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// UpdatePrices updates a product's selling price and cost
func (s *ProductService) UpdatePrices(ctx context.Context, productID uuid.UUID, req UpdateProductPricesRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrices(valueobject.NewMoneyUSD(req.Price), valueobject.NewMoneyUSD(req.Cost)); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with pagination and optional category filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		repoFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		repoFilter.OrderDir = filter.OrderDir
	}
	repoFilter.Search = filter.Search

	var (
		products []catalog.Product
		err      error
	)
	if filter.Category != "" {
		products, err = s.productRepo.FindByCategory(ctx, filter.Category, repoFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, repoFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		// Event handling is best effort; the catalog change has already been persisted.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}
