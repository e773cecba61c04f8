package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes the get-mutate-put span per account id so two
// concurrent writes against the same account cannot lose an update. Entries
// are never evicted; the map grows with the number of distinct accounts.
type keyedMutex struct {
	locks sync.Map
}

func (k *keyedMutex) lock(key uuid.UUID) (unlock func()) {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
