package ledger

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindOutput when no unspent output has the id.
var ErrNotFound = errors.New("not-found")

// OutputRecord pairs an output with its ledger id.
type OutputRecord struct {
	ID     Hash
	Output TransactionOutput
}

// ChangeSet is one atomic batch of ledger writes: removals first, then
// ordered inserts, then the reward pool overwrite when RewardPool is
// non-nil. Either every change persists or none do.
type ChangeSet struct {
	Remove     []Hash
	Insert     []OutputRecord
	RewardPool *Value
}

// Storage holds the unspent output set and the pooled reward scalar. The
// core reads through it during validation and writes through Apply during
// commit and distribution; it never retains outputs between calls.
type Storage interface {
	// FindOutput returns the unspent output with the given id, or
	// ErrNotFound when the id is absent or already spent.
	FindOutput(ctx context.Context, id Hash) (*TransactionOutput, error)

	// HasOutput reports whether an output with the given id exists.
	HasOutput(ctx context.Context, id Hash) (bool, error)

	// RewardPool returns the accumulated, undistributed fee total.
	RewardPool(ctx context.Context) (Value, error)

	// Apply persists the change set atomically.
	Apply(ctx context.Context, changes *ChangeSet) error
}
