package ledger

import (
	"context"
	"log/slog"
)

// Mempool parks transactions whose inputs are not resolvable yet and
// releases them once their missing outpoints appear in the ledger.
type Mempool interface {
	// Add parks a pending transaction with its missing outpoints.
	Add(tx *Transaction, requires []Hash) error

	// Resolve marks ids as newly available and returns the parked
	// transactions that have no missing outpoint left, in admission order.
	Resolve(ids []Hash) []*Transaction
}

// OnTransactionSuccess is called for every committed transaction, after the
// atomic write completed. Delivery is best-effort.
type OnTransactionSuccess func(tx *Transaction)

// Engine is the per-block ledger state transition core. It validates
// candidate transactions against the unspent output set, commits the fully
// valid ones, and distributes pooled fees at block finalization.
//
// Execution is strictly sequential: the block producer drives Submit and
// FinalizeBlock one call at a time, each seeing the cumulative effect of
// prior commits.
type Engine struct {
	Storage Storage
	// Mempool, when set, holds Pending transactions for out-of-order
	// admission. Parked transactions are re-submitted automatically once a
	// commit provides their missing outpoints.
	Mempool Mempool
	// OnTransactionSuccess, when set, receives every committed transaction.
	OnTransactionSuccess OnTransactionSuccess
}

// NewEngine creates and returns a new Engine instance.
func NewEngine(cfg Engine) *Engine {
	return &cfg
}

// Submit runs the full admission flow for one transaction: validate, then
// commit when fully valid, then re-admit any parked transactions the newly
// created outputs unblock. A Pending result parks the transaction (when a
// mempool is configured) and leaves the ledger untouched.
func (e *Engine) Submit(ctx context.Context, tx *Transaction) (*Validity, error) {
	v, err := e.Validate(ctx, tx)
	if err != nil {
		slog.Debug("transaction rejected", "txid", tx.ID(), "error", err)
		return nil, err
	}
	if v.Verdict == Pending {
		if e.Mempool != nil {
			if err := e.Mempool.Add(tx, v.Requires); err != nil {
				slog.Warn("mempool refused pending transaction", "txid", tx.ID(), "error", err)
			}
		}
		return v, nil
	}
	if err := e.Commit(ctx, tx, v); err != nil {
		return nil, err
	}
	if e.Mempool != nil {
		for _, parked := range e.Mempool.Resolve(v.Provides) {
			if _, err := e.Submit(ctx, parked); err != nil {
				slog.Warn("parked transaction rejected on re-admission", "txid", parked.ID(), "error", err)
			}
		}
	}
	return v, nil
}

// FindOutput exposes the unspent output lookup for callers outside the
// admission flow.
func (e *Engine) FindOutput(ctx context.Context, id Hash) (*TransactionOutput, error) {
	return e.Storage.FindOutput(ctx, id)
}

// RewardPool exposes the undistributed fee total.
func (e *Engine) RewardPool(ctx context.Context) (Value, error) {
	return e.Storage.RewardPool(ctx)
}
