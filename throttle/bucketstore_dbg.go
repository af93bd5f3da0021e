//go:build debug

package throttle

import (
	"log"
	"time"
)

func (s *BucketStore[K]) Cleanup(now time.Time) {
	log.Printf("[DEBUG][Throttle] cleaning buckets older than %v at %v", s.cleanupOlderThan, now)
	cleanCnt := 0
	for gid, g := range s.snapshotGroups() {
		g.buckets.Range(func(id, value any) bool {
			b := value.(*Bucket[K])
			// lock per bucket while checking/removing
			b.mu.Lock()
			last := b.lastCheck
			b.mu.Unlock()
			if now.Sub(last) > s.cleanupOlderThan {
				g.buckets.Delete(id)
				cleanCnt++
				log.Printf("[DEBUG][Throttle] expired bucket %v removed from group %q", id, gid)
			}
			return true // continue iteration
		})
	}
	log.Printf("[DEBUG][Throttle] %d buckets cleaned up", cleanCnt)
}
