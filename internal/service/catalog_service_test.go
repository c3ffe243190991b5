package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/validation"
)

func validServiceCreate() model.ServiceCreate {
	return model.ServiceCreate{
		Title:       "Büroreinigung",
		Description: "Professionelle Reinigung für Büros und Geschäftsräume",
		Pricing:     strPtr("Ab 15€ pro Stunde"),
		Features:    []string{"Tägliche Reinigung", "Müllentsorgung"},
		Category:    model.ServiceCategoryCommercial,
	}
}

func newCatalog(t *testing.T) (CatalogService, *repository.Store) {
	t.Helper()
	store := repository.NewMemoryStore()
	svc := NewCatalogService(store.Services)
	svc.SetClock(fixedClock())
	return svc, store
}

func TestCatalogService_Create_DefaultsActive(t *testing.T) {
	svc, _ := newCatalog(t)

	got, err := svc.Create(context.Background(), validServiceCreate())
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	in := validServiceCreate()
	in.Active = boolPtr(false)
	got, err = svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestCatalogService_Create_EmptyFeaturesNotPersisted(t *testing.T) {
	svc, store := newCatalog(t)
	in := validServiceCreate()
	in.Features = []string{}

	_, err := svc.Create(context.Background(), in)
	var ve *validation.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "features", ve.Field)

	n, err := store.Services.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogService_List_ActiveOnly(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	active, err := svc.Create(ctx, validServiceCreate())
	require.NoError(t, err)
	in := validServiceCreate()
	in.Active = boolPtr(false)
	inactive, err := svc.Create(ctx, in)
	require.NoError(t, err)

	list, err := svc.List(ctx, model.ServiceListOptions{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	all, err := svc.List(ctx, model.ServiceListOptions{ActiveOnly: false})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, active.ID, all[0].ID)
	assert.Equal(t, inactive.ID, all[1].ID)
}

func TestCatalogService_Get_NotFound(t *testing.T) {
	svc, _ := newCatalog(t)
	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCatalogService_Update_NoFieldsTouchesNothing(t *testing.T) {
	repo := &mockCollection[model.Service]{}
	svc := NewCatalogService(repo)

	_, err := svc.Update(context.Background(), "id-1", model.ServicePatch{})
	assert.True(t, errors.Is(err, ErrNoFieldsProvided))
	assert.Zero(t, repo.calls)
}

func TestCatalogService_Update_AppliesPresentFalsyFields(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validServiceCreate())
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, model.ServicePatch{
		Active:  model.Some(false),
		Pricing: model.Some(""),
	})
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, "", got.Pricing)
	assert.Equal(t, created.Title, got.Title, "absent fields unchanged")
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt))
}

func TestCatalogService_Update_ValidatesPresentFields(t *testing.T) {
	repo := &mockCollection[model.Service]{}
	svc := NewCatalogService(repo)

	_, err := svc.Update(context.Background(), "id-1", model.ServicePatch{Features: model.Some([]string{})})
	var ve *validation.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "features", ve.Field)
	assert.Zero(t, repo.calls)
}

func TestCatalogService_Update_MissingIDCreatesNothing(t *testing.T) {
	svc, store := newCatalog(t)

	_, err := svc.Update(context.Background(), "missing", model.ServicePatch{Title: model.Some("Neu")})
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	n, err := store.Services.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogService_Delete(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validServiceCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, created.ID), repository.ErrNotFound))
}

func TestCatalogService_List_StoreUnavailable(t *testing.T) {
	repo := &mockCollection[model.Service]{
		findManyFunc: func(context.Context, repository.Query) ([]model.Service, error) {
			return nil, unavailable
		},
	}
	svc := NewCatalogService(repo)

	_, err := svc.List(context.Background(), model.ServiceListOptions{ActiveOnly: true})
	assert.True(t, errors.Is(err, repository.ErrStoreUnavailable))
}

func TestCatalogService_List_QueryShape(t *testing.T) {
	var got repository.Query
	repo := &mockCollection[model.Service]{
		findManyFunc: func(_ context.Context, q repository.Query) ([]model.Service, error) {
			got = q
			return []model.Service{}, nil
		},
	}
	svc := NewCatalogService(repo)

	_, err := svc.List(context.Background(), model.ServiceListOptions{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, repository.Filter{"active": true}, got.Filter)
	assert.Equal(t, repository.Sort{Field: "created_at"}, got.Sort)
}
