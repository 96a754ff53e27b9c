package repository

import (
	"context"

	"github.com/fracshare/rwaledger/internal/domain"
)

// arena is an insertion-ordered collection of records keyed by a monotonic
// uint64 id. Ids start at 1 and are never reused; records are stored by value
// so callers always receive private copies.
type arena[V any] struct {
	records map[uint64]V
	order   []uint64
	nextID  uint64
}

func newArena[V any]() *arena[V] {
	return &arena[V]{
		records: make(map[uint64]V),
		nextID:  1,
	}
}

// allocID reserves the next id. The caller stores the record with put.
func (a *arena[V]) allocID() uint64 {
	id := a.nextID
	a.nextID++
	return id
}

// put stores v under id, appending to the insertion order if id is new.
func (a *arena[V]) put(id uint64, v V) {
	if _, ok := a.records[id]; !ok {
		a.order = append(a.order, id)
	}
	a.records[id] = v
}

func (a *arena[V]) get(id uint64) (V, bool) {
	v, ok := a.records[id]
	return v, ok
}

// replace overwrites an existing record. Returns false if id is unknown.
func (a *arena[V]) replace(id uint64, v V) bool {
	if _, ok := a.records[id]; !ok {
		return false
	}
	a.records[id] = v
	return true
}

func (a *arena[V]) remove(id uint64) bool {
	if _, ok := a.records[id]; !ok {
		return false
	}
	delete(a.records, id)
	for i, oid := range a.order {
		if oid == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// all returns records in insertion order.
func (a *arena[V]) all() []V {
	out := make([]V, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.records[id])
	}
	return out
}

// MemoryStore is the in-process implementation of Repository. State lives for
// the lifetime of the hosting process; durability is the runtime's concern,
// not the ledger's.
type MemoryStore struct {
	assets        *arena[domain.Asset]
	tokens        *arena[domain.Token]
	trades        *arena[domain.Trade]
	notifications *arena[domain.Notification]

	// Users are keyed by identity, not by assigned id, so they get their
	// own insertion-ordered map.
	users     map[domain.Identity]domain.User
	userOrder []domain.Identity
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assets:        newArena[domain.Asset](),
		tokens:        newArena[domain.Token](),
		trades:        newArena[domain.Trade](),
		notifications: newArena[domain.Notification](),
		users:         make(map[domain.Identity]domain.User),
	}
}

// Ping reports store health. The in-memory store is always reachable.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
