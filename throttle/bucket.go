package throttle

import (
	"sync"
	"time"
)

// Bucket is a token bucket. lastCheck advances in whole periods so partial periods are not lost.
type Bucket[K comparable] struct {
	mu          sync.Mutex // protects tokens and lastCheck
	tokens      int
	lastCheck   time.Time
	parentGroup *BucketGroup[K]
}

// refill must run under mu
func (b *Bucket[K]) refill(now time.Time) {
	conf := b.parentGroup.conf
	if conf.Period <= 0 {
		b.tokens = conf.Burst
		b.lastCheck = now
		return
	}
	elapsed := now.Sub(b.lastCheck)
	if elapsed < conf.Period {
		return
	}
	periods := int(elapsed / conf.Period)
	b.tokens = min(b.tokens+periods*conf.Increment, conf.Burst)
	b.lastCheck = b.lastCheck.Add(time.Duration(periods) * conf.Period)
}

func (b *Bucket[K]) Allow(now time.Time) bool {
	ok, _ := b.Take(now)
	return ok
}

// Take spends one token. When the bucket is empty it reports how long until the next refill.
func (b *Bucket[K]) Take(now time.Time) (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill(now)
	if b.tokens > 0 {
		b.tokens--
		return true, 0
	}
	return false, b.lastCheck.Add(b.parentGroup.conf.Period).Sub(now)
}
