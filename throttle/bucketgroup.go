package throttle

import (
	"sync"
	"time"
)

type BucketGroup[K comparable] struct {
	conf    *BucketConf
	buckets *sync.Map // K -> *Bucket[K]
}

func (g *BucketGroup[K]) GetBucket(id K) (*Bucket[K], bool) {
	bAny, ok := g.buckets.Load(id)
	if !ok {
		return nil, false
	}
	return bAny.(*Bucket[K]), true
}

// LoadOrNewBucket returns the bucket for id, creating a full one stamped at now
func (g *BucketGroup[K]) LoadOrNewBucket(id K, now time.Time) *Bucket[K] {
	if b, ok := g.GetBucket(id); ok {
		return b
	}
	bAny, _ := g.buckets.LoadOrStore(id, &Bucket[K]{
		tokens:      g.conf.Burst,
		lastCheck:   now,
		parentGroup: g,
	})
	return bAny.(*Bucket[K])
}
