package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/validation"
	"github.com/google/uuid"
)

const msgSectionComponent = "Section and component are required"

var emptyContent = json.RawMessage(`{}`)

// Service defines the storefront administration logic.
type Service interface {
	// Settings returns every setting keyed by its key.
	Settings(ctx context.Context) (map[string]Setting, error)
	SaveSetting(ctx context.Context, req SaveSettingRequest) (*Setting, error)

	// Layout returns the layout items grouped by section, each group in
	// sort_order.
	Layout(ctx context.Context) (map[string][]LayoutItem, error)
	CreateLayout(ctx context.Context, req CreateLayoutRequest) (*LayoutItem, error)
	UpdateLayout(ctx context.Context, id uuid.UUID, req UpdateLayoutRequest) (*LayoutItem, error)
	DeleteLayout(ctx context.Context, id uuid.UUID) error

	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Settings(ctx context.Context) (map[string]Setting, error) {
	settings, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Setting, len(settings))
	for _, st := range settings {
		out[st.Key] = st
	}
	return out, nil
}

func (s *service) SaveSetting(ctx context.Context, req SaveSettingRequest) (*Setting, error) {
	req.Key = strings.TrimSpace(req.Key)
	if req.Key == "" {
		return nil, apperr.Validation("Key is required")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	st := &Setting{Key: req.Key, Value: req.Value, Description: req.Description}
	if err := s.repo.UpsertSetting(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Layout(ctx context.Context) (map[string][]LayoutItem, error) {
	items, err := s.repo.ListLayout(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]LayoutItem)
	for _, it := range items {
		out[it.Section] = append(out[it.Section], it)
	}
	return out, nil
}

func (s *service) CreateLayout(ctx context.Context, req CreateLayoutRequest) (*LayoutItem, error) {
	req.Section = strings.TrimSpace(req.Section)
	req.Component = strings.TrimSpace(req.Component)
	if req.Section == "" || req.Component == "" {
		return nil, apperr.Validation(msgSectionComponent)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	content, err := layoutContent(req.Content)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	item := &LayoutItem{
		ID:        id,
		Section:   req.Section,
		Component: req.Component,
		Content:   content,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if err := s.repo.CreateLayout(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) UpdateLayout(ctx context.Context, id uuid.UUID, req UpdateLayoutRequest) (*LayoutItem, error) {
	item, err := s.repo.GetLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case req.Section.Set && (req.Section.Null || strings.TrimSpace(req.Section.Value) == ""),
		req.Component.Set && (req.Component.Null || strings.TrimSpace(req.Component.Value) == ""):
		return nil, apperr.Validation(msgSectionComponent)
	case req.IsActive.Null:
		return nil, apperr.Validation("is_active cannot be null")
	case req.SortOrder.Null:
		return nil, apperr.Validation("sort_order cannot be null")
	}
	if req.Content.Set {
		if req.Content.Null {
			req.Content.Value = nil
		}
		content, err := layoutContent(req.Content.Value)
		if err != nil {
			return nil, err
		}
		item.Content = content
	}

	req.Section.Apply(&item.Section)
	req.Component.Apply(&item.Component)
	item.Section = strings.TrimSpace(item.Section)
	item.Component = strings.TrimSpace(item.Component)
	req.IsActive.Apply(&item.IsActive)
	req.SortOrder.Apply(&item.SortOrder)
	if len(item.Section) > 100 || len(item.Component) > 100 {
		return nil, apperr.Validation("section and component must be at most 100 characters")
	}

	if err := s.repo.UpdateLayout(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) DeleteLayout(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteLayout(ctx, id)
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	return s.repo.DashboardStats(ctx)
}

// layoutContent defaults missing or null content to an empty object and
// rejects anything that is not a JSON object.
func layoutContent(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return emptyContent, nil
	}
	if raw[0] != '{' || !json.Valid(raw) {
		return nil, apperr.Validation("content must be a JSON object")
	}
	return raw, nil
}
