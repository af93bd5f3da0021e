package keyonlylocks

import (
	"errors"
	"sort"
	"sync"
)

// ErrBusy means another holder has one of the keys. Key-only locks never wait.
var ErrBusy = errors.New("keyonlylocks: key is busy")

// AcquireLocks takes all keys or none
func AcquireLocks(lockStore *sync.Map, keys []string) ([]string, bool) {
	keys = append([]string(nil), keys...)
	sort.Strings(keys)
	var acquired []string
	for _, key := range keys {
		_, loaded := lockStore.LoadOrStore(key, struct{}{})
		if loaded {
			// rollback previously acquired locks
			for _, k := range acquired {
				lockStore.Delete(k)
			}
			return nil, false
		}
		acquired = append(acquired, key)
	}
	return acquired, true
}

// ReleaseLocks delete locks from the lockStore *sync.Map
// Wrap this in deferred calls to guarantee to be called even if panic occurs.
func ReleaseLocks(lockStore *sync.Map, keys []string) {
	for _, key := range keys {
		lockStore.Delete(key)
	}
}

// Do runs action while holding keys, or returns ErrBusy without running it
func Do(lockStore *sync.Map, keys []string, action func() error) error {
	acquired, ok := AcquireLocks(lockStore, keys)
	if !ok {
		return ErrBusy
	}
	defer ReleaseLocks(lockStore, acquired)
	return action()
}
