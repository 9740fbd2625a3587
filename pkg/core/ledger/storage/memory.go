package storage

import (
	"context"
	"sync"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
)

// MemoryStorage keeps the unspent output set and the reward pool in process
// memory. It backs tests and single-node development runs.
type MemoryStorage struct {
	mu      sync.RWMutex
	outputs map[ledger.Hash]ledger.TransactionOutput
	pool    ledger.Value
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		outputs: make(map[ledger.Hash]ledger.TransactionOutput),
	}
}

func (s *MemoryStorage) FindOutput(_ context.Context, id ledger.Hash) (*ledger.TransactionOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, ok := s.outputs[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return &out, nil
}

func (s *MemoryStorage) HasOutput(_ context.Context, id ledger.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.outputs[id]
	return ok, nil
}

func (s *MemoryStorage) RewardPool(_ context.Context) (ledger.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pool, nil
}

// Apply mutates the maps under one lock; map operations cannot fail half
// way, so the batch is trivially all-or-nothing.
func (s *MemoryStorage) Apply(_ context.Context, changes *ledger.ChangeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range changes.Remove {
		delete(s.outputs, id)
	}
	for _, rec := range changes.Insert {
		s.outputs[rec.ID] = rec.Output
	}
	if changes.RewardPool != nil {
		s.pool = *changes.RewardPool
	}
	return nil
}

// Len reports the number of unspent outputs held.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outputs)
}
