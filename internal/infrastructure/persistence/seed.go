package persistence

import (
	"context"
	"fmt"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
	"github.com/stockroom/backend/internal/domain/trade"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder populates an empty database with demo fixtures. Intended for
// development environments; config validation rejects seeding in
// production.
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

type seedProduct struct {
	name     string
	category string
	supplier string
	price    string
	cost     string
	stock    int64
}

// Run inserts the demo fixtures. It is a no-op when products already
// exist, so restarting the server never duplicates data.
func (s *Seeder) Run(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed precheck failed: %w", err)
	}
	if count > 0 {
		s.logger.Info("Seed skipped, database already populated", zap.Int64("products", count))
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.seedCatalog(tx); err != nil {
			return err
		}
		products, err := s.seedProducts(tx)
		if err != nil {
			return err
		}
		offers, err := s.seedOffers(tx, products)
		if err != nil {
			return err
		}
		if err := s.seedOrders(tx, products, offers); err != nil {
			return err
		}
		s.logger.Info("Seed data inserted",
			zap.Int("products", len(products)),
			zap.Int("offers", len(offers)),
		)
		return nil
	})
}

func (s *Seeder) seedCatalog(tx *gorm.DB) error {
	suppliers := [][3]string{
		{"Electronics Supplier Inc.", "John Doe", "contact@electronics.example.com"},
		{"Fashion Trends Co.", "Jane Smith", "hello@fashiontrends.example.com"},
		{"Ultimate Sports Gear", "Alex Brown", "sales@ultimatesports.example.com"},
	}
	for _, row := range suppliers {
		supplier, err := catalog.NewSupplier(row[0], row[1], row[2])
		if err != nil {
			return err
		}
		supplier.ClearDomainEvents()
		if err := tx.Create(supplier).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"Electronics", "Clothing", "Appliances", "Personal Care", "Sports"} {
		category, err := catalog.NewCategory(name)
		if err != nil {
			return err
		}
		category.ClearDomainEvents()
		if err := tx.Create(category).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedProducts(tx *gorm.DB) (map[string]*catalog.Product, error) {
	rows := []seedProduct{
		{"Laptop", "Electronics", "Electronics Supplier Inc.", "1000", "800", 50},
		{"Smartphone", "Electronics", "Electronics Supplier Inc.", "800", "600", 40},
		{"T-shirt", "Clothing", "Fashion Trends Co.", "20", "10", 100},
		{"Refrigerator", "Appliances", "Electronics Supplier Inc.", "1200", "1000", 30},
		{"Shampoo", "Personal Care", "Fashion Trends Co.", "10", "5", 80},
		{"Soccer Ball", "Sports", "Ultimate Sports Gear", "30", "20", 60},
	}

	products := make(map[string]*catalog.Product, len(rows))
	for _, row := range rows {
		price, err := valueobject.NewMoneyUSDFromString(row.price)
		if err != nil {
			return nil, err
		}
		cost, err := valueobject.NewMoneyUSDFromString(row.cost)
		if err != nil {
			return nil, err
		}
		product, err := catalog.NewProduct(row.name, row.category, row.supplier, price, cost, row.stock)
		if err != nil {
			return nil, err
		}
		product.ClearDomainEvents()
		if err := tx.Create(product).Error; err != nil {
			return nil, err
		}
		products[row.name] = product
	}
	return products, nil
}

func (s *Seeder) seedOffers(tx *gorm.DB, products map[string]*catalog.Product) (map[string]*offer.Offer, error) {
	bundles := []struct {
		name     string
		price    string
		products []string
	}{
		{"Tech Duo", "1700", []string{"Laptop", "Smartphone"}},
		{"Home Comfort", "1150", []string{"Refrigerator", "Shampoo"}},
		{"Active Life", "45", []string{"T-shirt", "Soccer Ball"}},
	}

	offers := make(map[string]*offer.Offer, len(bundles))
	for _, bundle := range bundles {
		price, err := valueobject.NewMoneyUSDFromString(bundle.price)
		if err != nil {
			return nil, err
		}
		constituents := make([]catalog.Product, len(bundle.products))
		for i, name := range bundle.products {
			constituents[i] = *products[name]
		}
		composed, err := offer.NewOffer(bundle.name, constituents, price)
		if err != nil {
			return nil, err
		}
		composed.ClearDomainEvents()
		if err := tx.Omit("Products").Create(composed).Error; err != nil {
			return nil, err
		}
		if err := tx.Create(composed.Products).Error; err != nil {
			return nil, err
		}
		offers[bundle.name] = composed
	}
	return offers, nil
}

func (s *Seeder) seedOrders(tx *gorm.DB, products map[string]*catalog.Product, offers map[string]*offer.Offer) error {
	laptopOrder, err := trade.NewSalesOrder(trade.SingleTarget(products["Laptop"].ID), 5)
	if err != nil {
		return err
	}
	bundleOrder, err := trade.NewSalesOrder(trade.BundleTarget(offers["Active Life"].ID), 10)
	if err != nil {
		return err
	}
	for _, order := range []*trade.SalesOrder{laptopOrder, bundleOrder} {
		order.ClearDomainEvents()
		if err := tx.Create(order).Error; err != nil {
			return err
		}
	}
	return nil
}
