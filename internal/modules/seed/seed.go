// Package seed loads the demo catalogue into an empty database.
package seed

import (
	"context"
	"fmt"

	"github.com/georgemunganga/storefront-backend/internal/modules/category"
	"github.com/georgemunganga/storefront-backend/internal/modules/platform"
	"github.com/georgemunganga/storefront-backend/internal/modules/product"
	"github.com/georgemunganga/storefront-backend/internal/modules/subcategory"
	"github.com/georgemunganga/storefront-backend/internal/modules/vendor"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Services are the module services the fixtures are created through, so
// the same validation applies as for API clients.
type Services struct {
	Platforms     platform.Service
	Categories    category.Service
	Subcategories subcategory.Service
	Vendors       vendor.Service
	Products      product.Service
}

type fixture struct {
	platform      string
	category      string
	subcategories []string
	product       product.CreateRequest
}

func fixtures() []fixture {
	return []fixture{
		{
			platform:      "Facebook",
			category:      "Facebook Accounts",
			subcategories: []string{"Facebook Softregs", "Facebook With Friends"},
			product: product.CreateRequest{
				Name:         "FB Softreg",
				Description:  "High quality Facebook accounts verified by email",
				Price:        dec("0.278"),
				Quantity:     345,
				Rating:       dec("4.6"),
				TotalReviews: 89,
			},
		},
		{
			platform:      "Instagram",
			category:      "Instagram Accounts",
			subcategories: []string{"Instagram Softreg", "Instagram Aged"},
			product: product.CreateRequest{
				Name:         "IG Softreg",
				Description:  "Instagram soft registered accounts from USA",
				Price:        dec("0.183"),
				Quantity:     99,
				Rating:       dec("4.9"),
				TotalReviews: 156,
			},
		},
	}
}

// Run creates the demo catalogue unless a platform already exists. It
// reports whether anything was written.
func Run(ctx context.Context, s Services, log *zap.Logger) (bool, error) {
	n, err := s.Platforms.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: count platforms: %w", err)
	}
	if n > 0 {
		log.Debug("seed skipped, catalogue not empty", zap.Int("platforms", n))
		return false, nil
	}

	contact := "support@acme.example"
	v, err := s.Vendors.CreateVendor(ctx, vendor.CreateRequest{Name: "Acme", ContactInfo: &contact})
	if err != nil {
		return false, fmt.Errorf("seed: vendor: %w", err)
	}

	for _, f := range fixtures() {
		if err := load(ctx, s, f, v.ID); err != nil {
			return false, err
		}
	}
	log.Info("demo catalogue seeded", zap.Int("platforms", len(fixtures())))
	return true, nil
}

func load(ctx context.Context, s Services, f fixture, vendorID uuid.UUID) error {
	p, err := s.Platforms.Create(ctx, platform.CreateRequest{Name: f.platform})
	if err != nil {
		return fmt.Errorf("seed: platform %s: %w", f.platform, err)
	}
	c, err := s.Categories.Create(ctx, category.CreateRequest{Name: f.category, PlatformID: p.ID})
	if err != nil {
		return fmt.Errorf("seed: category %s: %w", f.category, err)
	}
	for _, name := range f.subcategories {
		if _, err := s.Subcategories.Create(ctx, subcategory.CreateRequest{Name: name, CategoryID: &c.ID}); err != nil {
			return fmt.Errorf("seed: subcategory %s: %w", name, err)
		}
	}
	req := f.product
	req.CategoryID = c.ID
	req.VendorID = vendorID
	if _, err := s.Products.CreateProduct(ctx, req); err != nil {
		return fmt.Errorf("seed: product %s: %w", req.Name, err)
	}
	return nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
