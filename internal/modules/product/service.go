package product

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/validation"
	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeaturedLimit caps the featured products listing.
const FeaturedLimit = 10

const (
	priceScale  = 4
	ratingScale = 2
)

var (
	maxPrice  = decimal.New(1, 8)
	maxRating = decimal.NewFromInt(5)
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateRequest) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, f Filter, page web.PageRequest) ([]Product, web.Pagination, error)
	FeaturedProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	BulkUpdate(ctx context.Context, req BulkUpdateRequest) (int64, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateRequest) (*Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, apperr.Required("price")
	}
	if err := checkPrice(*req.Price); err != nil {
		return nil, err
	}
	rating := decimal.Zero
	if req.Rating != nil {
		rating = *req.Rating
	}
	if err := checkRating(rating); err != nil {
		return nil, err
	}
	if err := checkAttributes(req.Attributes); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, req.CategoryID, req.VendorID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := &Product{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		Price:        *req.Price,
		Quantity:     req.Quantity,
		CategoryID:   req.CategoryID,
		VendorID:     req.VendorID,
		Attributes:   normalizeAttributes(req.Attributes),
		IsActive:     active,
		IsFeatured:   req.IsFeatured,
		Rating:       rating,
		TotalReviews: req.TotalReviews,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts runs the catalog query. page.PerPage is not capped here.
func (s *service) ListProducts(ctx context.Context, f Filter, page web.PageRequest) ([]Product, web.Pagination, error) {
	if err := page.Validate(); err != nil {
		return nil, web.Pagination{}, err
	}
	products, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, web.Pagination{}, err
	}
	return products, web.NewPagination(page, total), nil
}

func (s *service) FeaturedProducts(ctx context.Context) ([]Product, error) {
	return s.repo.Featured(ctx, FeaturedLimit)
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rejectNulls(req); err != nil {
		return nil, err
	}
	if req.Name.Set {
		if strings.TrimSpace(req.Name.Value) == "" {
			return nil, apperr.Required("product_name")
		}
		if err := validation.Var("product_name", strings.TrimSpace(req.Name.Value), validation.MaxName); err != nil {
			return nil, err
		}
	}
	if req.Price.Set {
		if err := checkPrice(req.Price.Value); err != nil {
			return nil, err
		}
	}
	if req.Quantity.Set {
		if err := validation.Var("quantity", req.Quantity.Value, "min=0,"+validation.MaxInt32); err != nil {
			return nil, err
		}
	}
	if req.Rating.Set {
		if err := checkRating(req.Rating.Value); err != nil {
			return nil, err
		}
	}
	if req.TotalReviews.Set {
		if err := validation.Var("total_reviews", req.TotalReviews.Value, "min=0,"+validation.MaxInt32); err != nil {
			return nil, err
		}
	}
	if req.Attributes.Set && !req.Attributes.Null {
		if err := checkAttributes(req.Attributes.Value); err != nil {
			return nil, err
		}
	}

	categoryID, vendorID := p.CategoryID, p.VendorID
	req.CategoryID.Apply(&categoryID)
	req.VendorID.Apply(&vendorID)
	if categoryID != p.CategoryID || vendorID != p.VendorID {
		if err := s.checkRefs(ctx, categoryID, vendorID); err != nil {
			return nil, err
		}
	}

	req.Name.Apply(&p.Name)
	p.Name = strings.TrimSpace(p.Name)
	if req.Description.Set {
		p.Description = req.Description.Value
	}
	req.Price.Apply(&p.Price)
	req.Quantity.Apply(&p.Quantity)
	p.CategoryID, p.VendorID = categoryID, vendorID
	if req.Attributes.Set {
		p.Attributes = nil
		if !req.Attributes.Null {
			p.Attributes = normalizeAttributes(req.Attributes.Value)
		}
	}
	req.IsActive.Apply(&p.IsActive)
	req.IsFeatured.Apply(&p.IsFeatured)
	req.Rating.Apply(&p.Rating)
	req.TotalReviews.Apply(&p.TotalReviews)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	has, err := s.repo.HasOrderItems(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return apperr.Conflict(msgHasOrders)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) BulkUpdate(ctx context.Context, req BulkUpdateRequest) (int64, error) {
	if len(req.ProductIDs) == 0 {
		return 0, apperr.Required("product_ids")
	}
	if req.Updates.empty() {
		return 0, apperr.Validation("updates must set at least one of is_active, is_featured, price, quantity")
	}
	if req.Updates.Price != nil {
		if err := checkPrice(*req.Updates.Price); err != nil {
			return 0, err
		}
	}
	if req.Updates.Quantity != nil {
		if err := validation.Var("quantity", *req.Updates.Quantity, "min=0,"+validation.MaxInt32); err != nil {
			return 0, err
		}
	}
	return s.repo.BulkUpdate(ctx, req.ProductIDs, req.Updates)
}

func (s *service) checkRefs(ctx context.Context, categoryID, vendorID uuid.UUID) error {
	ok, err := s.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Reference("category %s not found", categoryID)
	}
	if ok, err = s.repo.VendorExists(ctx, vendorID); err != nil {
		return err
	}
	if !ok {
		return apperr.Reference("vendor %s not found", vendorID)
	}
	return nil
}

// rejectNulls reports the first required field sent as JSON null.
func rejectNulls(req UpdateRequest) error {
	nulls := []struct {
		name string
		null bool
	}{
		{"product_name", req.Name.Null},
		{"price", req.Price.Null},
		{"quantity", req.Quantity.Null},
		{"category_id", req.CategoryID.Null},
		{"vendor_id", req.VendorID.Null},
		{"is_active", req.IsActive.Null},
		{"is_featured", req.IsFeatured.Null},
		{"rating", req.Rating.Null},
		{"total_reviews", req.TotalReviews.Null},
	}
	for _, f := range nulls {
		if f.null {
			return apperr.Validation("%s cannot be null", f.name)
		}
	}
	return nil
}

func checkPrice(p decimal.Decimal) error {
	switch {
	case p.IsNegative():
		return apperr.Validation("price must be at least 0")
	case p.GreaterThanOrEqual(maxPrice):
		return apperr.Validation("price must be less than %s", maxPrice)
	case !p.Equal(p.Truncate(priceScale)):
		return apperr.Validation("price must have at most %d decimal places", priceScale)
	}
	return nil
}

func checkRating(r decimal.Decimal) error {
	if r.IsNegative() || r.GreaterThan(maxRating) {
		return apperr.Validation("rating must be between 0 and 5")
	}
	if !r.Equal(r.Truncate(ratingScale)) {
		return apperr.Validation("rating must have at most %d decimal places", ratingScale)
	}
	return nil
}

func checkAttributes(raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return apperr.Validation("attributes must be a JSON object")
	}
	return nil
}

func normalizeAttributes(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return json.RawMessage(trimmed)
}
