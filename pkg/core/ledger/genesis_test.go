package ledger_test

import (
	"context"
	"testing"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger/storage"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestInitGenesis_SeedsConfiguredOutputs(t *testing.T) {
	store := storage.NewMemoryStorage()
	_, pubA := testKey(t, 1)
	_, pubB := testKey(t, 2)
	outputs := []ledger.TransactionOutput{
		{Value: uint128.From64(100), Owner: pubA},
		{Value: uint128.From64(50), Owner: pubB},
	}

	ids, err := ledger.InitGenesis(context.Background(), store, outputs)

	require.NoError(t, err)
	require.Len(t, ids, 2)
	require.Equal(t, ledger.GenesisOutputID(&outputs[0]), ids[0])
	require.Equal(t, ledger.GenesisOutputID(&outputs[1]), ids[1])
	for i, id := range ids {
		out, err := store.FindOutput(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, outputs[i], *out)
	}
}

func TestInitGenesis_IsIdempotent(t *testing.T) {
	store := storage.NewMemoryStorage()
	_, pubA := testKey(t, 1)
	outputs := []ledger.TransactionOutput{{Value: uint128.From64(100), Owner: pubA}}

	first, err := ledger.InitGenesis(context.Background(), store, outputs)
	require.NoError(t, err)
	second, err := ledger.InitGenesis(context.Background(), store, outputs)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, store.Len())
}

func TestInitGenesis_RejectsZeroValue(t *testing.T) {
	store := storage.NewMemoryStorage()
	_, pubA := testKey(t, 1)

	_, err := ledger.InitGenesis(context.Background(), store, []ledger.TransactionOutput{
		{Value: ledger.Value{}, Owner: pubA},
	})

	require.ErrorIs(t, err, ledger.ErrZeroValueOutput)
	require.Equal(t, 0, store.Len())
}
