package ledger

import (
	"context"
	"fmt"
	"log/slog"
)

// Commit applies a fully valid transaction to the ledger: the pooled reward
// grows by the fee, every consumed outpoint leaves the unspent set, and
// every created output enters it at its precomputed id. All writes go
// through one atomic Apply; any failure leaves the ledger untouched.
//
// The validity must come from Validate against the current snapshot.
// Pending or absent results are refused.
func (e *Engine) Commit(ctx context.Context, tx *Transaction, v *Validity) error {
	if v == nil || v.Verdict != FullyValid {
		return ErrNotCommittable
	}

	pool, err := e.Storage.RewardPool(ctx)
	if err != nil {
		return fmt.Errorf("read reward pool: %w", err)
	}
	newPool, ok := checkedAdd(pool, v.Reward)
	if !ok {
		return ErrRewardOverflow
	}

	changes := &ChangeSet{
		Remove:     make([]Hash, 0, len(tx.Inputs)),
		Insert:     make([]OutputRecord, 0, len(tx.Outputs)),
		RewardPool: &newPool,
	}
	for i := range tx.Inputs {
		changes.Remove = append(changes.Remove, tx.Inputs[i].OutPoint)
	}
	for i := range tx.Outputs {
		changes.Insert = append(changes.Insert, OutputRecord{
			ID:     v.Provides[i],
			Output: tx.Outputs[i],
		})
	}
	if err := e.Storage.Apply(ctx, changes); err != nil {
		return fmt.Errorf("apply commit: %w", err)
	}
	slog.Debug("transaction committed",
		"txid", tx.ID(),
		"inputs", len(tx.Inputs),
		"outputs", len(tx.Outputs),
		"reward", v.Reward.String())

	// Notification happens outside the atomic boundary.
	if e.OnTransactionSuccess != nil {
		e.OnTransactionSuccess(tx)
	}
	return nil
}
