package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

// shardFor — FNV-1a по fingerprint.
func (c *EntryCache) shardFor(fp domain.Fingerprint) *shard {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(fp); i++ {
		h ^= uint32(fp[i])
		h *= prime32
	}
	return c.shards[h%uint32(len(c.shards))]
}

// evictOverflow — вытесняет записи, пока size больше capacity.
// Вытесняющий всегда один: evictMu.
func (c *EntryCache) evictOverflow() {
	if c.size.Load() <= c.capacity {
		return
	}
	c.evictMu.Lock()
	defer c.evictMu.Unlock()

	for c.size.Load() > c.capacity {
		s := c.oldestShard()
		if s == nil {
			return
		}
		c.evictLRU(s)
	}
}

// oldestShard — шард, чей хвост обращался раньше всех.
func (c *EntryCache) oldestShard() *shard {
	var (
		oldest     *shard
		oldestTick uint64
	)
	for _, s := range c.shards {
		s.mu.Lock()
		if back := s.ll.Back(); back != nil {
			if t := back.Value.(*entry).tick; oldest == nil || t < oldestTick {
				oldest, oldestTick = s, t
			}
		}
		s.mu.Unlock()
	}
	return oldest
}

// evictLRU — удаляет наименее используемый элемент шарда.
func (c *EntryCache) evictLRU(s *shard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if back := s.ll.Back(); back != nil {
		ent := back.Value.(*entry)
		metrics.CacheOps.WithLabelValues("evicted", string(ent.val.Source)).Inc()
		c.removeElement(s, back)
	}
}

// removeElement — удаляет элемент из списка и индекса шарда.
func (c *EntryCache) removeElement(s *shard, elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(s.index, ent.fp)
	}
	s.ll.Remove(elem)
	c.size.Add(-1)
	metrics.CacheSize.Set(float64(c.size.Load()))
}

// pruneExpiredFromBack — удаляет истёкшие элементы из хвоста до первого актуального.
func (c *EntryCache) pruneExpiredFromBack(s *shard, now time.Time) {
	for {
		back := s.ll.Back()
		if back == nil {
			return
		}
		if ent := back.Value.(*entry); ent.val.Expired(now) {
			metrics.CacheOps.WithLabelValues("expired", string(ent.val.Source)).Inc()
			c.removeElement(s, back)
			continue
		}
		return
	}
}

// cloneEntry — копия с собственным payload, чтобы вызывающие не меняли данные кэша.
func cloneEntry(e domain.CacheEntry) domain.CacheEntry {
	e.Envelope = e.Envelope.Clone()
	return e
}
