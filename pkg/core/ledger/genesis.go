package ledger

import (
	"context"
	"fmt"
)

// InitGenesis seeds the ledger with the configured initial outputs, each
// keyed by the hash of its own content. It returns the ids in configuration
// order. Outputs already present are left as they are, so re-running against
// a seeded store is a no-op.
func InitGenesis(ctx context.Context, store Storage, outputs []TransactionOutput) ([]Hash, error) {
	ids := make([]Hash, 0, len(outputs))
	changes := &ChangeSet{Insert: make([]OutputRecord, 0, len(outputs))}
	for i := range outputs {
		if outputs[i].Value.IsZero() {
			return nil, fmt.Errorf("genesis output %d: %w", i, ErrZeroValueOutput)
		}
		id := GenesisOutputID(&outputs[i])
		ids = append(ids, id)
		if exists, err := store.HasOutput(ctx, id); err != nil {
			return nil, fmt.Errorf("check genesis id %s: %w", id, err)
		} else if exists {
			continue
		}
		changes.Insert = append(changes.Insert, OutputRecord{ID: id, Output: outputs[i]})
	}
	if len(changes.Insert) > 0 {
		if err := store.Apply(ctx, changes); err != nil {
			return nil, fmt.Errorf("apply genesis: %w", err)
		}
	}
	return ids, nil
}
