package sqlstore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/catalog/internal/models"
	"github.com/mmynk/catalog/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createCategory(t *testing.T, store *Store, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	require.NoError(t, store.CreateCategory(context.Background(), category))
	require.NotZero(t, category.ID)
	return category
}

func newPlan(categoryID int64, name string) *models.Plan {
	return &models.Plan{
		CategoryID: categoryID,
		Name:       name,
		Tier1:      models.Tier{Term: "12 months", Cost: 99.5, SKU: "SKU-1"},
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	applied, err := store.Migrate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create assigns increasing ids", func(t *testing.T) {
		a := createCategory(t, store, "Phones")
		b := createCategory(t, store, "Tablets")
		assert.Greater(t, b.ID, a.ID)

		got, err := store.GetCategory(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Phones", got.Name)
		assert.False(t, got.SurchargeEnabled)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		before, err := store.ListCategories(ctx)
		require.NoError(t, err)

		err = store.CreateCategory(ctx, &models.Category{Name: "Phones"})
		require.ErrorIs(t, err, storage.ErrDuplicate)

		after, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := store.GetCategory(ctx, 9999)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("name-only update leaves surcharge alone", func(t *testing.T) {
		c := &models.Category{Name: "Watches", SurchargeEnabled: true, SurchargePercent: 7.5}
		require.NoError(t, store.CreateCategory(ctx, c))

		n, err := store.UpdateCategory(ctx, c.ID, storage.Changes{models.FieldCategoryName: "Wearables"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		got, err := store.GetCategory(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Wearables", got.Name)
		assert.True(t, got.SurchargeEnabled)
		assert.InDelta(t, 7.5, got.SurchargePercent, 1e-9)
	})

	t.Run("update of unknown id affects nothing", func(t *testing.T) {
		n, err := store.UpdateCategory(ctx, 9999, storage.Changes{models.FieldCategoryName: "Ghost"})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		c := createCategory(t, store, "Laptops")
		_, err := store.UpdateCategory(ctx, c.ID, storage.Changes{models.FieldCategoryName: "Phones"})
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	})

	t.Run("name exists excludes self", func(t *testing.T) {
		c := createCategory(t, store, "Cameras")

		taken, err := store.CategoryNameExists(ctx, "Cameras", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = store.CategoryNameExists(ctx, "Cameras", c.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestPlanLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	category := createCategory(t, store, "Phones")

	first := newPlan(category.ID, "Basic")
	require.NoError(t, store.CreatePlan(ctx, first))
	second := newPlan(category.ID, "Premium")
	require.NoError(t, store.CreatePlan(ctx, second))
	assert.EqualValues(t, 1, first.ID)
	assert.EqualValues(t, 2, second.ID)

	n, err := store.DeletePlan(ctx, category.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	plans, err := store.ListPlans(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.EqualValues(t, 2, plans[0].ID)
	assert.Equal(t, "Premium", plans[0].Name)

	// Deleted IDs are not handed out again.
	third := newPlan(category.ID, "Family")
	require.NoError(t, store.CreatePlan(ctx, third))
	assert.EqualValues(t, 3, third.ID)

	n, err = store.DeletePlan(ctx, category.ID, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPlanIDsArePerCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	phones := createCategory(t, store, "Phones")
	tablets := createCategory(t, store, "Tablets")

	a := newPlan(phones.ID, "A")
	require.NoError(t, store.CreatePlan(ctx, a))
	b := newPlan(tablets.ID, "B")
	require.NoError(t, store.CreatePlan(ctx, b))
	addon := &models.Addon{CategoryID: phones.ID, Title: "Case", Cost: 10, SKU: "CASE"}
	require.NoError(t, store.CreateAddon(ctx, addon))

	assert.EqualValues(t, 1, a.ID)
	assert.EqualValues(t, 1, b.ID)
	assert.EqualValues(t, 1, addon.ID)
}

func TestCreatePlanRequiresCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.CreatePlan(ctx, newPlan(42, "Orphan"))
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = store.CreateAddon(ctx, &models.Addon{CategoryID: 42, Title: "Orphan", Cost: 1, SKU: "X"})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestConcurrentPlanCreates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	category := createCategory(t, store, "Phones")

	const workers = 20
	var (
		mu  sync.Mutex
		ids = make(map[int64]bool)
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			plan := newPlan(category.ID, "Concurrent")
			if err := store.CreatePlan(gctx, plan); err != nil {
				return err
			}
			mu.Lock()
			ids[plan.ID] = true
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, ids, workers)
	for id := int64(1); id <= workers; id++ {
		assert.True(t, ids[id], "missing id %d", id)
	}
}

type fixedAllocator struct{ id int64 }

func (a fixedAllocator) Next(context.Context, *sqlx.Tx, int64, Kind) (int64, error) {
	return a.id, nil
}

func TestAllocatorCollisionIsReported(t *testing.T) {
	store := newTestStore(t)
	store.alloc = fixedAllocator{id: 1}
	ctx := context.Background()
	category := createCategory(t, store, "Phones")

	require.NoError(t, store.CreatePlan(ctx, newPlan(category.ID, "One")))

	err := store.CreatePlan(ctx, newPlan(category.ID, "Two"))
	require.ErrorIs(t, err, storage.ErrDuplicate)

	plans, err := store.ListPlans(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "One", plans[0].Name)
}

func TestUpdatePlan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	category := createCategory(t, store, "Phones")

	minCost := 10.0
	plan := newPlan(category.ID, "Basic")
	plan.MinCost = &minCost
	plan.Tier2 = &models.Tier{Term: "24 months", Cost: 180, SKU: "SKU-2"}
	require.NoError(t, store.CreatePlan(ctx, plan))

	t.Run("empty changes", func(t *testing.T) {
		n, err := store.UpdatePlan(ctx, category.ID, plan.ID, storage.Changes{})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("name only", func(t *testing.T) {
		n, err := store.UpdatePlan(ctx, category.ID, plan.ID, storage.Changes{models.FieldPlanName: "Starter"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		got, err := store.GetPlan(ctx, category.ID, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, "Starter", got.Name)
		require.NotNil(t, got.MinCost)
		assert.InDelta(t, 10.0, *got.MinCost, 1e-9)
		assert.Equal(t, plan.Tier1, got.Tier1)
		require.NotNil(t, got.Tier2)
		assert.Equal(t, "SKU-2", got.Tier2.SKU)
	})

	t.Run("clear nullable fields", func(t *testing.T) {
		n, err := store.UpdatePlan(ctx, category.ID, plan.ID, storage.Changes{
			models.FieldMinCost:   nil,
			models.FieldTier2Term: nil,
			models.FieldTier2Cost: nil,
			models.FieldTier2SKU:  nil,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		got, err := store.GetPlan(ctx, category.ID, plan.ID)
		require.NoError(t, err)
		assert.Nil(t, got.MinCost)
		assert.Nil(t, got.Tier2)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := store.UpdatePlan(ctx, category.ID, plan.ID, storage.Changes{"category_id": 2})
		assert.Error(t, err)
	})

	t.Run("missing plan", func(t *testing.T) {
		n, err := store.UpdatePlan(ctx, category.ID, 99, storage.Changes{models.FieldPlanName: "X"})
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestAddonLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	category := createCategory(t, store, "Phones")

	addon := &models.Addon{CategoryID: category.ID, Title: "Insurance", Cost: 4.99, SKU: "INS"}
	require.NoError(t, store.CreateAddon(ctx, addon))
	assert.EqualValues(t, 1, addon.ID)

	n, err := store.UpdateAddon(ctx, category.ID, addon.ID, storage.Changes{models.FieldAddonCost: 5.49})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := store.GetAddon(ctx, category.ID, addon.ID)
	require.NoError(t, err)
	assert.Equal(t, "Insurance", got.Title)
	assert.InDelta(t, 5.49, got.Cost, 1e-9)

	n, err = store.DeleteAddon(ctx, category.ID, addon.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = store.GetAddon(ctx, category.ID, addon.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	addons, err := store.ListAddons(ctx, category.ID)
	require.NoError(t, err)
	assert.Empty(t, addons)
}

func TestCreateCredential(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := models.NewCredential("Reporting", "reports", "hash", "0123456789abcdef0123456789abcdef")
	require.NoError(t, store.CreateCredential(ctx, c))

	dup := models.NewCredential("Other", "other", "hash", c.APIKey)
	err := store.CreateCredential(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}

func TestBuildUpdate(t *testing.T) {
	query, args, err := buildUpdate(planTable, storage.Changes{
		models.FieldTier1SKU: "S",
		models.FieldPlanName: "N",
	}, "category_id = ? AND id = ?", int64(1), int64(2))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE plans SET name = ?, tier1_sku = ? WHERE category_id = ? AND id = ?", query)
	assert.Equal(t, []any{"N", "S", int64(1), int64(2)}, args)

	query, args, err = buildUpdate(planTable, nil, "id = ?", int64(1))
	require.NoError(t, err)
	assert.Empty(t, query)
	assert.Nil(t, args)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t,
		"a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate",
		SQLiteDSN("a.db"))
	assert.Equal(t,
		"file:a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate",
		SQLiteDSN("file:a.db?mode=rwc"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mysql"})
	assert.Error(t, err)
}
