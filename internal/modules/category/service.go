package category

import (
	"context"
	"strings"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/validation"
	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Category, error)
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, f Filter) ([]Category, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, req CreateRequest) (*Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.checkPlatform(ctx, req.PlatformID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	c := &Category{ID: id, Name: req.Name, PlatformID: req.PlatformID}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter) ([]Category, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name.Set && (req.Name.Null || strings.TrimSpace(req.Name.Value) == "") {
		return nil, apperr.Required("category_name")
	}
	if req.Name.Set {
		if err := validation.Var("category_name", strings.TrimSpace(req.Name.Value), validation.MaxName); err != nil {
			return nil, err
		}
	}
	if req.PlatformID.Set && (req.PlatformID.Null || req.PlatformID.Value == uuid.Nil) {
		return nil, apperr.Required("platform_id")
	}
	if req.PlatformID.Set && req.PlatformID.Value != c.PlatformID {
		if err := s.checkPlatform(ctx, req.PlatformID.Value); err != nil {
			return nil, err
		}
	}
	req.Name.Apply(&c.Name)
	c.Name = strings.TrimSpace(c.Name)
	req.PlatformID.Apply(&c.PlatformID)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	has, err := s.repo.HasSubcategories(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return apperr.Conflict("Cannot delete category with subcategories")
	}
	if has, err = s.repo.HasProducts(ctx, id); err != nil {
		return err
	}
	if has {
		return apperr.Conflict("Cannot delete category with products")
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) checkPlatform(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.PlatformExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Reference("platform %s not found", id)
	}
	return nil
}
