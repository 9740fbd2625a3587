package ledger_test

import (
	"context"
	"testing"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger/storage"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/pool"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestSubmit_DrainsParkedDependents(t *testing.T) {
	// given: an engine with a mempool and a genesis output owned by A
	store := storage.NewMemoryStorage()
	mempool := pool.New(16)
	eng := ledger.NewEngine(ledger.Engine{Storage: store, Mempool: mempool})
	privA, pubA := testKey(t, 1)
	privB, pubB := testKey(t, 2)
	_, pubC := testKey(t, 3)
	outPoint := seedOutput(t, store, uint128.From64(100), pubA)

	// parent pays A's coin to B; child pays it on to C
	parent := signedTransfer(t, privA, outPoint, []ledger.TransactionOutput{
		{Value: uint128.From64(100), Owner: pubB},
	})
	parentOut := ledger.OutputID(parent.Bytes(), 0)
	child := signedTransfer(t, privB, parentOut, []ledger.TransactionOutput{
		{Value: uint128.From64(100), Owner: pubC},
	})

	// when: the child arrives before the parent
	v, err := eng.Submit(context.Background(), child)
	require.NoError(t, err)
	require.Equal(t, ledger.Pending, v.Verdict)
	require.Equal(t, 1, mempool.Len())

	v, err = eng.Submit(context.Background(), parent)

	// then: committing the parent releases and commits the child
	require.NoError(t, err)
	require.Equal(t, ledger.FullyValid, v.Verdict)
	require.Equal(t, 0, mempool.Len())

	_, err = store.FindOutput(context.Background(), parentOut)
	require.ErrorIs(t, err, ledger.ErrNotFound)
	out, err := store.FindOutput(context.Background(), ledger.OutputID(child.Bytes(), 0))
	require.NoError(t, err)
	require.Equal(t, pubC, out.Owner)
}

func TestSubmit_ChainOfDependentsCommitsInOrder(t *testing.T) {
	store := storage.NewMemoryStorage()
	mempool := pool.New(16)
	eng := ledger.NewEngine(ledger.Engine{Storage: store, Mempool: mempool})
	privA, pubA := testKey(t, 1)
	outPoint := seedOutput(t, store, uint128.From64(100), pubA)

	// three self-transfers, each spending the previous one's output
	txs := make([]*ledger.Transaction, 3)
	prev := outPoint
	for i := range txs {
		txs[i] = signedTransfer(t, privA, prev, []ledger.TransactionOutput{
			{Value: uint128.From64(uint64(100 - i)), Owner: pubA},
		})
		prev = ledger.OutputID(txs[i].Bytes(), 0)
	}

	// arrive fully reversed
	for i := len(txs) - 1; i > 0; i-- {
		v, err := eng.Submit(context.Background(), txs[i])
		require.NoError(t, err)
		require.Equal(t, ledger.Pending, v.Verdict)
	}
	require.Equal(t, 2, mempool.Len())

	v, err := eng.Submit(context.Background(), txs[0])
	require.NoError(t, err)
	require.Equal(t, ledger.FullyValid, v.Verdict)

	// the whole chain drained: only the final output remains, fees pooled
	require.Equal(t, 0, mempool.Len())
	require.Equal(t, 1, store.Len())
	out, err := store.FindOutput(context.Background(), prev)
	require.NoError(t, err)
	require.True(t, out.Value.Equals64(98))
	pooled, err := store.RewardPool(context.Background())
	require.NoError(t, err)
	require.True(t, pooled.Equals64(2))
}
