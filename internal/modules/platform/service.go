package platform

import (
	"context"
	"strings"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/validation"
	"github.com/google/uuid"
)

const msgHasCategories = "Cannot delete platform with categories"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Platform, error)
	Get(ctx context.Context, id uuid.UUID) (*Platform, error)
	List(ctx context.Context) ([]Platform, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Platform, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, req CreateRequest) (*Platform, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	p := &Platform{ID: id, Name: req.Name}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Platform, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Platform, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Platform, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name.Set && (req.Name.Null || strings.TrimSpace(req.Name.Value) == "") {
		return nil, apperr.Required("platform_name")
	}
	if req.Name.Set {
		if err := validation.Var("platform_name", strings.TrimSpace(req.Name.Value), validation.MaxName); err != nil {
			return nil, err
		}
	}
	req.Name.Apply(&p.Name)
	p.Name = strings.TrimSpace(p.Name)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	has, err := s.repo.HasCategories(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return apperr.Conflict(msgHasCategories)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
