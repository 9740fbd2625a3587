package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"lukechampine.com/uint128"
)

// Distribution reports the outcome of one reward round.
type Distribution struct {
	// Share is the amount minted per authority. Zero when the pool was too
	// small to split and the whole amount carried over.
	Share Value
	// Remainder is the amount left in the pool for the next round.
	Remainder Value
	// Minted lists the ids of the outputs created this round, in authority
	// order. An authority whose mint id collided is absent.
	Minted []Hash
}

// FinalizeBlock drains the pooled reward and mints one output per authority,
// keyed by the output content and the block height. The division remainder
// stays in the pool for the next round.
//
// An empty authority set returns ErrDistributionSkipped with the pool
// untouched. A pool too small to give every authority a nonzero share is
// carried forward in full rather than discarded. A mint whose id already
// exists is skipped; that share is wasted, logged, and non-fatal.
func (e *Engine) FinalizeBlock(ctx context.Context, authorities []PubKey, height uint64) (*Distribution, error) {
	if len(authorities) == 0 {
		return nil, ErrDistributionSkipped
	}

	pool, err := e.Storage.RewardPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reward pool: %w", err)
	}
	share, rem := pool.QuoRem64(uint64(len(authorities)))
	if share.IsZero() {
		slog.Info("reward distribution deferred",
			"pool", pool.String(), "authorities", len(authorities), "height", height)
		return &Distribution{Remainder: pool}, nil
	}
	remainder := uint128.From64(rem)

	changes := &ChangeSet{
		Insert:     make([]OutputRecord, 0, len(authorities)),
		RewardPool: &remainder,
	}
	minted := make([]Hash, 0, len(authorities))
	for _, authority := range authorities {
		out := TransactionOutput{Value: share, Owner: authority}
		id := RewardOutputID(&out, height)
		if exists, err := e.Storage.HasOutput(ctx, id); err != nil {
			return nil, fmt.Errorf("check reward id %s: %w", id, err)
		} else if exists {
			slog.Warn("reward wasted due to id collision",
				"id", id, "authority", authority, "height", height)
			continue
		}
		changes.Insert = append(changes.Insert, OutputRecord{ID: id, Output: out})
		minted = append(minted, id)
	}
	if err := e.Storage.Apply(ctx, changes); err != nil {
		return nil, fmt.Errorf("apply distribution: %w", err)
	}
	slog.Debug("reward distributed",
		"share", share.String(),
		"remainder", remainder.String(),
		"minted", len(minted),
		"height", height)
	return &Distribution{Share: share, Remainder: remainder, Minted: minted}, nil
}
