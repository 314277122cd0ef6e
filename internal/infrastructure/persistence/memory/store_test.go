package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, id string, categoryID *string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(id, "Product "+id, "", decimal.RequireFromString("3.50"), categoryID, true, 5)
	require.NoError(t, err)
	require.NoError(t, s.Products().Create(context.Background(), p))
	return p
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", nil)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		require.NoError(t, tx.Products().SetAvailability(ctx, []string{"p1"}, false))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Products().FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.IsAvailable)
}

func TestWithinTx_Commits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", nil)

	err := s.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		return tx.WithinTx(ctx, func(ctx context.Context, inner repository.Store) error {
			return inner.Products().SetAvailability(ctx, []string{"p1"}, false)
		})
	})
	require.NoError(t, err)

	p, err := s.Products().FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, p.IsAvailable)
}

func TestCategoryDelete_ClearsProductCategory(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c, err := catalog.NewCategory("c1", "Beverages", "", true)
	require.NoError(t, err)
	require.NoError(t, s.Categories().Create(ctx, c))
	seedProduct(t, s, "p1", &c.ID)

	require.NoError(t, s.Categories().Delete(ctx, "c1"))

	p, err := s.Products().FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, p.CategoryID)
	_, err = s.Categories().FindByID(ctx, "c1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProductDelete_ReferencedIsRejected(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", nil)
	o, err := order.NewOrder("o1", "Table 4", order.StatusPending, "")
	require.NoError(t, err)
	require.NoError(t, s.Orders().Create(ctx, o))
	require.NoError(t, s.Orders().AddItem(ctx, &order.Item{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 1}))

	err = s.Products().Delete(ctx, "p1")
	assert.ErrorIs(t, err, apperr.ErrReferentialIntegrity)

	require.NoError(t, s.Orders().Delete(ctx, "o1"))
	assert.NoError(t, s.Products().Delete(ctx, "p1"))
}

func TestOrderUpdate_VersionCheck(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	o, err := order.NewOrder("o1", "Table 4", order.StatusPending, "")
	require.NoError(t, err)
	require.NoError(t, s.Orders().Create(ctx, o))

	first, err := s.Orders().FindByID(ctx, "o1")
	require.NoError(t, err)
	second, err := s.Orders().FindByID(ctx, "o1")
	require.NoError(t, err)

	first.Notes = "no onions"
	require.NoError(t, s.Orders().Update(ctx, first))
	assert.Equal(t, 1, first.Version)

	second.Notes = "extra cheese"
	assert.ErrorIs(t, s.Orders().Update(ctx, second), order.ErrStaleOrder)
}

func TestOrderLoad_UsesLivePrice(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedProduct(t, s, "p1", nil)
	o, err := order.NewOrder("o1", "Table 4", order.StatusPending, "")
	require.NoError(t, err)
	require.NoError(t, s.Orders().Create(ctx, o))
	require.NoError(t, s.Orders().AddItem(ctx, &order.Item{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 2}))

	p.Price = decimal.RequireFromString("4.00")
	require.NoError(t, s.Products().Update(ctx, p))

	loaded, err := s.Orders().FindByID(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "8.00", loaded.Items[0].LineTotal().StringFixed(2))
}

func TestWithinTx_ConcurrentOrderUpdatesSerialize(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", nil)
	o, err := order.NewOrder("o1", "Table 5", order.StatusPending, "")
	require.NoError(t, err)
	require.NoError(t, s.Orders().Create(ctx, o))
	item, err := order.NewItem("i1", "o1", "p1", 1)
	require.NoError(t, err)
	require.NoError(t, s.Orders().AddItem(ctx, item))

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
				locked, err := tx.Orders().LockByID(ctx, "o1")
				if err != nil {
					return err
				}
				status := order.StatusCompleted
				if i%2 == 0 {
					status = order.StatusCanceled
				}
				locked.Status = status
				if err := tx.Products().SetAvailability(ctx, locked.ProductIDs(), status.ProductAvailability()); err != nil {
					return err
				}
				return tx.Orders().Update(ctx, locked)
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	final, err := s.Orders().FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, workers, final.Version)
	p, err := s.Products().FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, final.Status.ProductAvailability(), p.IsAvailable)
}
