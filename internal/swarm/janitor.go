package swarm

import (
	"context"
	"time"

	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

// Janitor — периодическая очистка истёкших записей локального кэша и хранилища.
type Janitor struct {
	local    ports.EntryCache
	store    ports.EntryStore
	log      ports.Logger
	interval time.Duration
	now      func() time.Time
}

func NewJanitor(local ports.EntryCache, store ports.EntryStore, log ports.Logger, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Janitor{local: local, store: store, log: log, interval: interval, now: time.Now}
}

// Run — до отмены контекста.
func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep — один проход очистки.
func (j *Janitor) Sweep(ctx context.Context) {
	now := j.now()
	removed := j.local.SweepExpired(ctx, now)
	if j.store == nil {
		if removed > 0 {
			j.log.Infof(ctx, "janitor: swept local=%d", removed)
		}
		return
	}
	stored, err := j.store.Sweep(ctx, now)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("sweep").Inc()
		j.log.Warnf(ctx, "janitor: store sweep failed err=%v", err)
	}
	if removed > 0 || stored > 0 {
		j.log.Infof(ctx, "janitor: swept local=%d store=%d", removed, stored)
	}
}
