// Package pool holds structurally sound transactions whose inputs are not
// in the ledger yet and releases them for re-admission once every missing
// outpoint has been provided by a later commit.
package pool

import (
	"errors"
	"sync"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
)

// DefaultCapacity bounds the pool when no explicit capacity is configured.
const DefaultCapacity = 1024

// ErrAlreadyParked is returned when the same transaction is added twice.
var ErrAlreadyParked = errors.New("transaction already parked")

type entry struct {
	tx      *ledger.Transaction
	missing map[ledger.Hash]struct{}
}

// Pool is a bounded dependency tracker. When full, the oldest parked
// transaction is evicted; re-submission is the owner's problem.
type Pool struct {
	mu       sync.Mutex
	capacity int
	entries  map[ledger.Hash]*entry        // keyed by transaction id
	order    []ledger.Hash                 // admission order, for eviction
	waiting  map[ledger.Hash][]ledger.Hash // missing outpoint -> waiting tx ids
}

// New returns a pool bounded to the given capacity. A non-positive capacity
// falls back to DefaultCapacity.
func New(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{
		capacity: capacity,
		entries:  make(map[ledger.Hash]*entry),
		waiting:  make(map[ledger.Hash][]ledger.Hash),
	}
}

// Add parks a pending transaction with its missing outpoints.
func (p *Pool) Add(tx *ledger.Transaction, requires []ledger.Hash) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	txid := tx.ID()
	if _, ok := p.entries[txid]; ok {
		return ErrAlreadyParked
	}
	if len(p.order) >= p.capacity {
		p.evictOldestLocked()
	}

	e := &entry{tx: tx, missing: make(map[ledger.Hash]struct{}, len(requires))}
	for _, id := range requires {
		e.missing[id] = struct{}{}
		p.waiting[id] = append(p.waiting[id], txid)
	}
	p.entries[txid] = e
	p.order = append(p.order, txid)
	return nil
}

// Resolve marks ids as newly available in the ledger and returns the parked
// transactions with no missing outpoint left, in admission order. Returned
// transactions leave the pool; the caller re-validates them on submission.
func (p *Pool) Resolve(ids []ledger.Hash) []*ledger.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	satisfied := make(map[ledger.Hash]struct{})
	for _, id := range ids {
		for _, txid := range p.waiting[id] {
			e, ok := p.entries[txid]
			if !ok {
				continue
			}
			delete(e.missing, id)
			if len(e.missing) == 0 {
				satisfied[txid] = struct{}{}
			}
		}
		delete(p.waiting, id)
	}
	if len(satisfied) == 0 {
		return nil
	}

	ready := make([]*ledger.Transaction, 0, len(satisfied))
	remaining := p.order[:0]
	for _, txid := range p.order {
		if _, ok := satisfied[txid]; ok {
			ready = append(ready, p.entries[txid].tx)
			delete(p.entries, txid)
			continue
		}
		remaining = append(remaining, txid)
	}
	p.order = remaining
	return ready
}

// Len reports the number of parked transactions.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

func (p *Pool) evictOldestLocked() {
	if len(p.order) == 0 {
		return
	}
	oldest := p.order[0]
	p.order = p.order[1:]
	e, ok := p.entries[oldest]
	if !ok {
		return
	}
	delete(p.entries, oldest)
	for id := range e.missing {
		waiters := p.waiting[id]
		for i, txid := range waiters {
			if txid == oldest {
				p.waiting[id] = append(waiters[:i], waiters[i+1:]...)
				break
			}
		}
		if len(p.waiting[id]) == 0 {
			delete(p.waiting, id)
		}
	}
}
