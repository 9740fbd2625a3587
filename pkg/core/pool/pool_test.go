package pool_test

import (
	"testing"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/pool"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func testTx(n byte) *ledger.Transaction {
	return &ledger.Transaction{
		Inputs:  []ledger.TransactionInput{{OutPoint: ledger.Hash{0xF0, n}}},
		Outputs: []ledger.TransactionOutput{{Value: uint128.From64(uint64(n) + 1)}},
	}
}

func TestPool_ResolveReleasesSatisfiedTransactions(t *testing.T) {
	// given: a parked transaction missing two outpoints
	p := pool.New(8)
	tx := testTx(1)
	a, b := ledger.Hash{0x0A}, ledger.Hash{0x0B}
	require.NoError(t, p.Add(tx, []ledger.Hash{a, b}))

	// when: the outpoints arrive one at a time
	require.Empty(t, p.Resolve([]ledger.Hash{a}))
	require.Equal(t, 1, p.Len())

	ready := p.Resolve([]ledger.Hash{b})

	// then: only the last arrival releases it, and it leaves the pool
	require.Len(t, ready, 1)
	require.Equal(t, tx.ID(), ready[0].ID())
	require.Equal(t, 0, p.Len())
}

func TestPool_ResolveKeepsAdmissionOrder(t *testing.T) {
	p := pool.New(8)
	shared := ledger.Hash{0x0A}
	first, second := testTx(1), testTx(2)
	require.NoError(t, p.Add(first, []ledger.Hash{shared}))
	require.NoError(t, p.Add(second, []ledger.Hash{shared}))

	ready := p.Resolve([]ledger.Hash{shared})

	require.Len(t, ready, 2)
	require.Equal(t, first.ID(), ready[0].ID())
	require.Equal(t, second.ID(), ready[1].ID())
}

func TestPool_ResolveUnknownIDIsNoOp(t *testing.T) {
	p := pool.New(8)
	require.NoError(t, p.Add(testTx(1), []ledger.Hash{{0x0A}}))

	require.Empty(t, p.Resolve([]ledger.Hash{{0x0B}}))
	require.Equal(t, 1, p.Len())
}

func TestPool_AddRejectsDuplicate(t *testing.T) {
	p := pool.New(8)
	tx := testTx(1)
	require.NoError(t, p.Add(tx, []ledger.Hash{{0x0A}}))

	require.ErrorIs(t, p.Add(tx, []ledger.Hash{{0x0A}}), pool.ErrAlreadyParked)
	require.Equal(t, 1, p.Len())
}

func TestPool_EvictsOldestWhenFull(t *testing.T) {
	// given: a pool at capacity two
	p := pool.New(2)
	shared := ledger.Hash{0x0A}
	oldest := testTx(1)
	require.NoError(t, p.Add(oldest, []ledger.Hash{shared}))
	require.NoError(t, p.Add(testTx(2), []ledger.Hash{shared}))

	// when: a third transaction arrives
	require.NoError(t, p.Add(testTx(3), []ledger.Hash{shared}))

	// then: the oldest was evicted and never resolves
	require.Equal(t, 2, p.Len())
	ready := p.Resolve([]ledger.Hash{shared})
	require.Len(t, ready, 2)
	for _, tx := range ready {
		require.NotEqual(t, oldest.ID(), tx.ID())
	}
}

func TestPool_ZeroCapacityFallsBackToDefault(t *testing.T) {
	p := pool.New(0)
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Add(testTx(byte(i)), []ledger.Hash{{0x0A}}))
	}
	require.Equal(t, 3, p.Len())
}
