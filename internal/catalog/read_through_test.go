package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memcache "github.com/Gunvolt24/telecom_cart/internal/cache/memory"
	"github.com/Gunvolt24/telecom_cart/internal/catalog"
	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports/mocks"
	"github.com/Gunvolt24/telecom_cart/internal/testutil"
	"github.com/Gunvolt24/telecom_cart/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var phone = domain.Product{ID: "phone_x", Name: "X Phone", Category: domain.CategoryPhone, Price: 500}

func TestReadThrough_Get_CacheMissThenHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockProductStore(ctrl)
	store.EXPECT().GetProduct(gomock.Any(), "phone_x").Return(phone, true, nil).Times(1)

	c := catalog.NewReadThrough(store, memcache.NewProductCache(8, time.Minute), nil, testutil.NoopLogger{})

	for i := 0; i < 3; i++ {
		p, ok, err := c.Get(context.Background(), "phone_x")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, phone, p)
	}
}

func TestReadThrough_Get_NotFoundNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockProductStore(ctrl)
	cache := mocks.NewMockProductCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "nope").Return(domain.Product{}, false)
	store.EXPECT().GetProduct(gomock.Any(), "nope").Return(domain.Product{}, false, nil)

	c := catalog.NewReadThrough(store, cache, nil, testutil.NoopLogger{})
	_, ok, err := c.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadThrough_Get_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockProductStore(ctrl)
	boom := errors.New("db down")
	store.EXPECT().GetProduct(gomock.Any(), "phone_x").Return(domain.Product{}, false, boom)

	c := catalog.NewReadThrough(store, memcache.NewProductCache(8, 0), nil, testutil.NoopLogger{})
	_, _, err := c.Get(context.Background(), "phone_x")
	require.ErrorIs(t, err, boom)
}

func TestReadThrough_Get_InvalidProductRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockProductStore(ctrl)
	bad := domain.Product{ID: "bad", Name: "Bad", Category: "TABLET", Price: 1}
	store.EXPECT().GetProduct(gomock.Any(), "bad").Return(bad, true, nil)

	cache := memcache.NewProductCache(8, 0)
	c := catalog.NewReadThrough(store, cache, validate.NewProductValidator(), testutil.NoopLogger{})
	_, _, err := c.Get(context.Background(), "bad")
	require.ErrorIs(t, err, validate.ErrInvalidProduct)
	require.Zero(t, cache.Len())
}

func TestReadThrough_ListSkipsInvalidAndWarmUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockProductStore(ctrl)
	plan := domain.Product{ID: "plan_x", Name: "X Plan", Category: domain.CategoryPlan, Price: 20, RequiresPhone: true}
	bad := domain.Product{ID: "bad", Name: "", Category: domain.CategoryAddon, Price: 1}
	store.EXPECT().LoadProducts(gomock.Any()).
		DoAndReturn(func(context.Context) ([]domain.Product, error) {
			return []domain.Product{phone, bad, plan}, nil
		}).Times(2)

	cache := memcache.NewProductCache(8, 0)
	c := catalog.NewReadThrough(store, cache, validate.NewProductValidator(), testutil.NoopLogger{})

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Product{phone, plan}, list)

	n, err := c.WarmUp(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	_, ok := cache.Get(context.Background(), "phone_x")
	require.True(t, ok)
	_, ok = cache.Get(context.Background(), "plan_x")
	require.False(t, ok)
}
