package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
)

// SwarmCache — хранилище конвертов по fingerprint с обменом между пирами.
// Содержимое конверта не разбирается.
type SwarmCache interface {
	// Get — (entry, true) только для неистёкшей записи: локально, затем в постоянном хранилище, затем у пиров.
	Get(ctx context.Context, fp domain.Fingerprint, qt domain.QueryType) (domain.CacheEntry, bool)

	// Put — локальная вставка, запись в постоянное хранилище и (для local) рассылка пирам.
	Put(ctx context.Context, fp domain.Fingerprint, env domain.Envelope, source domain.SourceTag) error

	// QueryPeers — первый ответивший пир или промах по таймауту.
	QueryPeers(ctx context.Context, fp domain.Fingerprint, qt domain.QueryType) (domain.CacheEntry, bool)
}

// EntryCache — локальное хранилище записей (в памяти).
// Требования: потокобезопасность, конкурентный доступ к разным ключам без общей блокировки.
type EntryCache interface {
	Get(ctx context.Context, fp domain.Fingerprint) (domain.CacheEntry, bool)
	// Insert — false, если существующая запись новее (правило CacheEntry.Supersedes).
	Insert(ctx context.Context, entry domain.CacheEntry) bool
	SweepExpired(ctx context.Context, now time.Time) int
	Len() int
}

// EntryStore — граница постоянного хранения (Redis/Postgres): get/put по fingerprint и очистка истёкших.
type EntryStore interface {
	Get(ctx context.Context, fp domain.Fingerprint) (domain.CacheEntry, bool, error)
	Put(ctx context.Context, entry domain.CacheEntry) error
	Sweep(ctx context.Context, now time.Time) (int, error)
	Close() error
}

// PeerClient — запрос к одному пиру.
type PeerClient interface {
	Addr() string
	Query(ctx context.Context, req domain.PeerRequest) (domain.PeerResponse, error)
}

// PeerPublisher — рассылка записи пирам (best-effort).
type PeerPublisher interface {
	Publish(ctx context.Context, entry domain.CacheEntry) error
}
