package subcategory

import (
	"context"
	"strings"
	"testing"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/patch"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	categories map[uuid.UUID]bool
	items      map[uuid.UUID]Subcategory
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{categories: map[uuid.UUID]bool{}, items: map[uuid.UUID]Subcategory{}}
}

func (f *fakeRepo) Create(_ context.Context, s *Subcategory) error {
	for _, it := range f.items {
		if it.Name == s.Name && sameCategory(it.CategoryID, s.CategoryID) {
			return apperr.Conflict(msgDuplicateName)
		}
	}
	f.items[s.ID] = *s
	return nil
}

func sameCategory(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Subcategory, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, apperr.NotFound("subcategory", id)
	}
	return &s, nil
}

func (f *fakeRepo) List(context.Context, Filter) ([]Subcategory, error) { return nil, nil }

func (f *fakeRepo) Update(_ context.Context, s *Subcategory) error {
	f.items[s.ID] = *s
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return apperr.NotFound("subcategory", id)
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) CategoryExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.categories[id], nil
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	repo := newFakeRepo()
	cid := uuid.New()
	repo.categories[cid] = true
	svc := NewService(repo)

	sc, err := svc.Create(context.Background(), CreateRequest{Name: "Aged", Icon: strPtr("⭐"), CategoryID: &cid})
	require.NoError(t, err)
	assert.Equal(t, "Aged", repo.items[sc.ID].Name)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "Aged", CategoryID: &cid})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "Fresh", Icon: strPtr("way-too-long-icon")})
	assert.EqualError(t, err, "icon must be at most 10")

	missing := uuid.New()
	_, err = svc.Create(context.Background(), CreateRequest{Name: "Fresh", CategoryID: &missing})
	assert.ErrorIs(t, err, apperr.ErrReference)
}

func TestUpdateClearsNullableFields(t *testing.T) {
	repo := newFakeRepo()
	cid := uuid.New()
	repo.categories[cid] = true
	svc := NewService(repo)
	sc, err := svc.Create(context.Background(), CreateRequest{Name: "Aged", Icon: strPtr("A"), CategoryID: &cid})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), sc.ID, UpdateRequest{
		Icon:       patch.Clear[string](),
		CategoryID: patch.Clear[uuid.UUID](),
	})
	require.NoError(t, err)
	assert.Nil(t, got.Icon)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, "Aged", got.Name)

	_, err = svc.Update(context.Background(), sc.ID, UpdateRequest{Name: patch.Clear[string]()})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNameLength(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	long := strings.Repeat("x", 256)

	_, err := svc.Create(context.Background(), CreateRequest{Name: long})
	assert.EqualError(t, err, "name must be at most 255")
	assert.Empty(t, repo.items)

	sc, err := svc.Create(context.Background(), CreateRequest{Name: "Aged"})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), sc.ID, UpdateRequest{Name: patch.Value(long)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Aged", repo.items[sc.ID].Name)
}
