package subcategory

import (
	"context"
	"strings"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/validation"
	"github.com/google/uuid"
)

const msgDuplicateName = "Subcategory with this name already exists in this category"

const maxIconLen = 10

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Subcategory, error)
	Get(ctx context.Context, id uuid.UUID) (*Subcategory, error)
	List(ctx context.Context, f Filter) ([]Subcategory, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Subcategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, req CreateRequest) (*Subcategory, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	sc := &Subcategory{ID: id, Name: req.Name, Icon: req.Icon, CategoryID: req.CategoryID}
	if err := s.repo.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Subcategory, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter) ([]Subcategory, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Subcategory, error) {
	sc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name.Set && (req.Name.Null || strings.TrimSpace(req.Name.Value) == "") {
		return nil, apperr.Required("name")
	}
	if req.Name.Set {
		if err := validation.Var("name", strings.TrimSpace(req.Name.Value), validation.MaxName); err != nil {
			return nil, err
		}
	}
	if req.Icon.Set && !req.Icon.Null && len([]rune(req.Icon.Value)) > maxIconLen {
		return nil, apperr.Validation("icon must be at most %d", maxIconLen)
	}
	if req.CategoryID.Set && !req.CategoryID.Null {
		if sc.CategoryID == nil || *sc.CategoryID != req.CategoryID.Value {
			if err := s.checkCategory(ctx, req.CategoryID.Value); err != nil {
				return nil, err
			}
		}
	}
	req.Name.Apply(&sc.Name)
	sc.Name = strings.TrimSpace(sc.Name)
	req.Icon.ApplyNullable(&sc.Icon)
	req.CategoryID.ApplyNullable(&sc.CategoryID)

	if err := s.repo.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) checkCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.CategoryExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Reference("category %s not found", id)
	}
	return nil
}
