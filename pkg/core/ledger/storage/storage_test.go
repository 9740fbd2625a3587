package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger/storage"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func newSQLiteStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "utxo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// exercises every Storage implementation through the same scenario
func stores(t *testing.T) map[string]ledger.Storage {
	return map[string]ledger.Storage{
		"memory": storage.NewMemoryStorage(),
		"sqlite": newSQLiteStorage(t),
	}
}

func TestStorage_ApplyInsertAndRemove(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := ledger.OutputRecord{
				ID:     ledger.Hash{0x01},
				Output: ledger.TransactionOutput{Value: uint128.From64(42), Owner: ledger.PubKey{0xAA}},
			}

			require.NoError(t, store.Apply(ctx, &ledger.ChangeSet{Insert: []ledger.OutputRecord{rec}}))

			exists, err := store.HasOutput(ctx, rec.ID)
			require.NoError(t, err)
			require.True(t, exists)
			out, err := store.FindOutput(ctx, rec.ID)
			require.NoError(t, err)
			require.Equal(t, rec.Output, *out)

			require.NoError(t, store.Apply(ctx, &ledger.ChangeSet{Remove: []ledger.Hash{rec.ID}}))

			exists, err = store.HasOutput(ctx, rec.ID)
			require.NoError(t, err)
			require.False(t, exists)
			_, err = store.FindOutput(ctx, rec.ID)
			require.ErrorIs(t, err, ledger.ErrNotFound)
		})
	}
}

func TestStorage_MissingOutputIsNotFound(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.FindOutput(context.Background(), ledger.Hash{0xFF})
			require.ErrorIs(t, err, ledger.ErrNotFound)
		})
	}
}

func TestStorage_RewardPoolStartsEmptyAndPersists(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			pool, err := store.RewardPool(ctx)
			require.NoError(t, err)
			require.True(t, pool.IsZero())

			total := uint128.Max
			require.NoError(t, store.Apply(ctx, &ledger.ChangeSet{RewardPool: &total}))

			pool, err = store.RewardPool(ctx)
			require.NoError(t, err)
			require.Equal(t, total, pool)
		})
	}
}

func TestStorage_ApplyWholeBatch(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			spent := ledger.OutputRecord{
				ID:     ledger.Hash{0x01},
				Output: ledger.TransactionOutput{Value: uint128.From64(10)},
			}
			require.NoError(t, store.Apply(ctx, &ledger.ChangeSet{Insert: []ledger.OutputRecord{spent}}))

			created := ledger.OutputRecord{
				ID:     ledger.Hash{0x02},
				Output: ledger.TransactionOutput{Value: uint128.From64(7)},
			}
			fee := uint128.From64(3)
			require.NoError(t, store.Apply(ctx, &ledger.ChangeSet{
				Remove:     []ledger.Hash{spent.ID},
				Insert:     []ledger.OutputRecord{created},
				RewardPool: &fee,
			}))

			_, err := store.FindOutput(ctx, spent.ID)
			require.ErrorIs(t, err, ledger.ErrNotFound)
			out, err := store.FindOutput(ctx, created.ID)
			require.NoError(t, err)
			require.True(t, out.Value.Equals64(7))
			pool, err := store.RewardPool(ctx)
			require.NoError(t, err)
			require.True(t, pool.Equals64(3))
		})
	}
}

func TestSQLiteStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "utxo.db")
	store, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)

	rec := ledger.OutputRecord{
		ID:     ledger.Hash{0x01},
		Output: ledger.TransactionOutput{Value: uint128.From64(42), Owner: ledger.PubKey{0xAA}},
	}
	total := uint128.From64(9)
	require.NoError(t, store.Apply(ctx, &ledger.ChangeSet{Insert: []ledger.OutputRecord{rec}, RewardPool: &total}))
	require.NoError(t, store.Close())

	reopened, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	defer reopened.Close()

	out, err := reopened.FindOutput(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Output, *out)
	pool, err := reopened.RewardPool(ctx)
	require.NoError(t, err)
	require.True(t, pool.Equals64(9))
}
