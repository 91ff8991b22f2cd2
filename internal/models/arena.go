package models

import "sync"

// Arena is the key-value record store behind every persisted record.
// Records live at deterministically derived addresses; existence is
// "does a record live at that key". Update runs one transaction at a
// time and applies its write set only when the whole transaction
// succeeds, which is the sole concurrency primitive the controller
// relies on: two claims racing for the last unit are resolved by
// transaction order.
type Arena struct {
	mu      sync.RWMutex
	records map[StorageKey][]byte
}

func NewArena() *Arena {
	return &Arena{
		records: make(map[StorageKey][]byte),
	}
}

// Txn is a staged view over the arena. Reads see the staged writes;
// nothing touches the arena until the transaction function returns nil.
type Txn struct {
	arena   *Arena
	writes  map[StorageKey][]byte
	deletes map[StorageKey]struct{}
}

// Update runs fn as one atomic transaction. If fn returns an error the
// write set is discarded and the arena is untouched.
func (a *Arena) Update(fn func(tx *Txn) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx := &Txn{
		arena:   a,
		writes:  make(map[StorageKey][]byte),
		deletes: make(map[StorageKey]struct{}),
	}
	if err := fn(tx); err != nil {
		return err
	}

	for key := range tx.deletes {
		delete(a.records, key)
	}
	for key, val := range tx.writes {
		a.records[key] = val
	}
	return nil
}

// View runs fn against a read-only transaction. Writes staged by fn are
// discarded regardless of outcome.
func (a *Arena) View(fn func(tx *Txn) error) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	tx := &Txn{
		arena:   a,
		writes:  make(map[StorageKey][]byte),
		deletes: make(map[StorageKey]struct{}),
	}
	return fn(tx)
}

// Get returns a copy of the record at key, honoring staged writes and
// deletes first.
func (tx *Txn) Get(key StorageKey) ([]byte, bool) {
	if _, gone := tx.deletes[key]; gone {
		return nil, false
	}
	if val, ok := tx.writes[key]; ok {
		return append([]byte(nil), val...), true
	}
	val, ok := tx.arena.records[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), val...), true
}

func (tx *Txn) Has(key StorageKey) bool {
	_, ok := tx.Get(key)
	return ok
}

func (tx *Txn) Put(key StorageKey, val []byte) {
	delete(tx.deletes, key)
	tx.writes[key] = append([]byte(nil), val...)
}

func (tx *Txn) Delete(key StorageKey) {
	delete(tx.writes, key)
	tx.deletes[key] = struct{}{}
}

func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.records)
}

// Snapshot copies every record for persistence.
func (a *Arena) Snapshot() map[StorageKey][]byte {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[StorageKey][]byte, len(a.records))
	for key, val := range a.records {
		out[key] = append([]byte(nil), val...)
	}
	return out
}

// Restore replaces the arena contents, used at boot.
func (a *Arena) Restore(records map[StorageKey][]byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = make(map[StorageKey][]byte, len(records))
	for key, val := range records {
		a.records[key] = append([]byte(nil), val...)
	}
}
