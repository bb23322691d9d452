package memory

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

// DefaultShards — число шардов по умолчанию.
const DefaultShards = 16

type entry struct {
	fp   domain.Fingerprint
	val  domain.CacheEntry
	tick uint64
}

// shard — список в порядке обращений и индекс под одной блокировкой.
type shard struct {
	mu    sync.Mutex
	ll    *list.List
	index map[domain.Fingerprint]*list.Element
}

// EntryCache — локальный кэш записей Swarm: шардированный LRU с общей ёмкостью.
// Ключи из разных шардов не конкурируют за одну блокировку.
// Вытесняется запись с наименьшим tick среди хвостов всех шардов.
// Срок жизни задаётся ExpiresAt записи; истёкшие записи не возвращаются.
type EntryCache struct {
	shards   []*shard
	capacity int64
	size     atomic.Int64
	clock    atomic.Uint64
	evictMu  sync.Mutex
	now      func() time.Time
}

// NewEntryCache — shards не больше capacity.
func NewEntryCache(capacity, shards int) *EntryCache {
	if capacity <= 0 {
		capacity = 1
	}
	if shards <= 0 {
		shards = DefaultShards
	}
	if shards > capacity {
		shards = capacity
	}
	c := &EntryCache{shards: make([]*shard, shards), capacity: int64(capacity), now: time.Now}
	for i := range c.shards {
		c.shards[i] = &shard{
			ll:    list.New(),
			index: make(map[domain.Fingerprint]*list.Element),
		}
	}
	return c
}

func (c *EntryCache) Get(_ context.Context, fp domain.Fingerprint) (domain.CacheEntry, bool) {
	now := c.now()
	s := c.shardFor(fp)

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.index[fp]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss", "local").Inc()
		return domain.CacheEntry{}, false
	}
	ent := elem.Value.(*entry)
	if ent.val.Expired(now) {
		metrics.CacheOps.WithLabelValues("expired", string(ent.val.Source)).Inc()
		c.removeElement(s, elem)
		return domain.CacheEntry{}, false
	}
	ent.tick = c.clock.Add(1)
	s.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit", string(ent.val.Source)).Inc()
	return cloneEntry(ent.val), true
}

// Insert — вставка или замена по правилу CacheEntry.Supersedes.
// Истёкшая запись заменяется всегда; уже истёкшая новая запись не вставляется.
func (c *EntryCache) Insert(_ context.Context, e domain.CacheEntry) bool {
	if e.Fingerprint == "" {
		return false
	}
	now := c.now()
	if e.Expired(now) {
		return false
	}
	added, ok := c.insertShard(c.shardFor(e.Fingerprint), e, now)
	if added {
		c.evictOverflow()
	}
	return ok
}

// insertShard — вставка под блокировкой шарда; added — появился новый ключ.
func (c *EntryCache) insertShard(s *shard, e domain.CacheEntry, now time.Time) (added, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, found := s.index[e.Fingerprint]; found {
		ent := elem.Value.(*entry)
		if !ent.val.Expired(now) && !e.Supersedes(&ent.val) {
			metrics.CacheOps.WithLabelValues("stale", string(e.Source)).Inc()
			return false, false
		}
		ent.val = cloneEntry(e)
		ent.tick = c.clock.Add(1)
		s.ll.MoveToFront(elem)
		metrics.CacheOps.WithLabelValues("insert", string(e.Source)).Inc()
		return false, true
	}

	c.pruneExpiredFromBack(s, now)

	elem := s.ll.PushFront(&entry{fp: e.Fingerprint, val: cloneEntry(e), tick: c.clock.Add(1)})
	s.index[e.Fingerprint] = elem
	c.size.Add(1)
	metrics.CacheSize.Set(float64(c.size.Load()))
	metrics.CacheOps.WithLabelValues("insert", string(e.Source)).Inc()
	return true, true
}

// SweepExpired — удалить истёкшие записи во всех шардах; шарды блокируются по одному.
func (c *EntryCache) SweepExpired(_ context.Context, now time.Time) int {
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for elem := s.ll.Back(); elem != nil; {
			prev := elem.Prev()
			if ent := elem.Value.(*entry); ent.val.Expired(now) {
				metrics.CacheOps.WithLabelValues("expired", string(ent.val.Source)).Inc()
				c.removeElement(s, elem)
				removed++
			}
			elem = prev
		}
		s.mu.Unlock()
	}
	return removed
}

// Len — текущее число записей (включая ещё не вычищенные истёкшие).
func (c *EntryCache) Len() int { return int(c.size.Load()) }
